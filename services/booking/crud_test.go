// File: services/booking/crud_test.go
package booking

import (
	"testing"
	"time"

	"pristine/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCrudFixture() (*DefaultCrudService, *stubBookingRepo) {
	repo := &stubBookingRepo{bookings: map[string]*models.Booking{
		"b1": {ID: "b1", CustomerID: "u1", Status: models.BookingStatusPending,
			Phone: "0781234567", ScheduledAt: time.Now().AddDate(0, 0, 3)},
		"b2": {ID: "b2", CustomerID: "u1", Status: models.BookingStatusCompleted},
		"b3": {ID: "b3", CustomerID: "u2", Status: models.BookingStatusPending},
	}}
	return &DefaultCrudService{Repo: repo, Logger: zap.NewNop()}, repo
}

func TestGetBookingEnforcesOwnership(t *testing.T) {
	svc, _ := newCrudFixture()

	b, err := svc.GetBooking("u1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)

	_, err = svc.GetBooking("u1", "b3")
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestUpdateDetailsOnlyWhilePending(t *testing.T) {
	svc, repo := newCrudFixture()

	b, err := svc.UpdateDetails("u1", "b1", "ring twice", "0799876543")
	require.NoError(t, err)
	assert.Equal(t, "ring twice", b.SpecialInstructions)
	assert.Equal(t, "0799876543", b.Phone)

	stored, _ := repo.GetByID("b1")
	assert.Equal(t, "ring twice", stored.SpecialInstructions)

	_, err = svc.UpdateDetails("u1", "b2", "ring twice", "")
	assert.ErrorIs(t, err, ErrBookingNotEditable)
}

func TestUpdateDetailsRejectsBadPhone(t *testing.T) {
	svc, repo := newCrudFixture()

	_, err := svc.UpdateDetails("u1", "b1", "", "123")
	require.Error(t, err)

	stored, _ := repo.GetByID("b1")
	assert.Equal(t, "0781234567", stored.Phone)
}

func TestCustomerCancelBooking(t *testing.T) {
	svc, _ := newCrudFixture()

	b, err := svc.CancelBooking("u1", "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCanceled, b.Status)

	// Terminal bookings cannot be canceled again.
	_, err = svc.CancelBooking("u1", "b1")
	require.Error(t, err)

	_, err = svc.CancelBooking("u1", "b3")
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestSubmitReviewOnlyOnCompletedBookings(t *testing.T) {
	svc, repo := newCrudFixture()

	b, err := svc.SubmitReview("u1", "b2", 5, "spotless")
	require.NoError(t, err)
	require.NotNil(t, b.Review)
	assert.Equal(t, 5, b.Review.Rating)
	assert.Equal(t, "spotless", b.Review.Comment)

	stored, _ := repo.GetByID("b2")
	require.NotNil(t, stored.Review)

	_, err = svc.SubmitReview("u1", "b1", 5, "spotless")
	assert.ErrorIs(t, err, ErrReviewNotAllowed)
}

func TestSubmitReviewRatingRange(t *testing.T) {
	svc, _ := newCrudFixture()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.SubmitReview("u1", "b2", rating, "")
		require.Error(t, err, "rating %d must be rejected", rating)
	}
}
