// File: services/admin/bookings_test.go
package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pristine/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBookingRepo struct {
	bookings map[string]*models.Booking
}

func (r *stubBookingRepo) GetByID(id string) (*models.Booking, error) {
	if b, ok := r.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, fmt.Errorf("booking %s not found", id)
}

func (r *stubBookingRepo) GetByCustomer(customerID string) ([]models.Booking, error) {
	return nil, nil
}

func (r *stubBookingRepo) List(filter models.BookingFilter) ([]models.Booking, int64, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *stubBookingRepo) ListUpcoming(from, to time.Time) ([]models.Booking, error) {
	return nil, nil
}

func (r *stubBookingRepo) Create(b *models.Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *stubBookingRepo) Update(b *models.Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *stubBookingRepo) SetStatus(id string, status models.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s not found", id)
	}
	b.Status = status
	return nil
}

type stubCleanerRepo struct {
	cleaners map[string]*models.Cleaner
}

func (r *stubCleanerRepo) GetByID(id string) (*models.Cleaner, error) {
	if c, ok := r.cleaners[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("cleaner %s not found", id)
}

func (r *stubCleanerRepo) GetAllActive() ([]models.Cleaner, error) {
	var out []models.Cleaner
	for _, c := range r.cleaners {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCleanerRepo) Create(c *models.Cleaner) error { r.cleaners[c.ID] = c; return nil }
func (r *stubCleanerRepo) Update(c *models.Cleaner) error { r.cleaners[c.ID] = c; return nil }
func (r *stubCleanerRepo) Deactivate(id string) error {
	if c, ok := r.cleaners[id]; ok {
		c.Active = false
	}
	return nil
}

type recordedNotification struct {
	userID, title string
}

type stubNotifier struct {
	sent []recordedNotification
}

func (n *stubNotifier) NotifyUser(ctx context.Context, userID, title, body string, data map[string]string) error {
	n.sent = append(n.sent, recordedNotification{userID: userID, title: title})
	return nil
}

func (n *stubNotifier) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return nil, nil
}

func (n *stubNotifier) MarkRead(ctx context.Context, id string) error { return nil }

type adminFixture struct {
	svc      *DefaultAdminBookingService
	bookings *stubBookingRepo
	cleaners *stubCleanerRepo
	notifier *stubNotifier
	view     *DashboardView
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	view := &DashboardView{Cache: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	bookings := &stubBookingRepo{bookings: map[string]*models.Booking{
		"b1": {ID: "b1", CustomerID: "u1", Status: models.BookingStatusPending,
			Service: models.Service{ID: "s1", Name: "Deep Cleaning"}},
		"b2": {ID: "b2", CustomerID: "u2", Status: models.BookingStatusCompleted,
			Service: models.Service{ID: "s1", Name: "Deep Cleaning"}},
	}}
	cleaners := &stubCleanerRepo{cleaners: map[string]*models.Cleaner{
		"c1": {ID: "c1", Name: "Sam Wu", Active: true},
		"c2": {ID: "c2", Name: "Jo Lund", Active: false},
	}}
	notifier := &stubNotifier{}

	return &adminFixture{
		svc: &DefaultAdminBookingService{
			BookingRepo: bookings,
			CleanerRepo: cleaners,
			View:        view,
			Notifier:    notifier,
			Logger:      zap.NewNop(),
		},
		bookings: bookings,
		cleaners: cleaners,
		notifier: notifier,
		view:     view,
	}
}

func TestAssignCleanerConfirmsPendingBooking(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	b, msg, err := f.svc.AssignCleaner(ctx, "b1", "c1", "use back door")
	require.NoError(t, err)
	require.NotNil(t, b.AssignedCleaner)
	assert.Equal(t, "c1", b.AssignedCleaner.ID)
	assert.Equal(t, "Sam Wu", b.AssignedCleaner.Name)
	assert.Equal(t, "use back door", b.CleanerNotes)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.Equal(t, "Cleaner Sam Wu assigned to booking", msg)

	stored, err := f.bookings.GetByID("b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "u1", f.notifier.sent[0].userID)
}

func TestAssignCleanerReassignmentKeepsConfirmed(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.AssignCleaner(ctx, "b1", "c1", "")
	require.NoError(t, err)

	f.cleaners.cleaners["c3"] = &models.Cleaner{ID: "c3", Name: "Ana Diaz", Active: true}
	b, _, err := f.svc.AssignCleaner(ctx, "b1", "c3", "")
	require.NoError(t, err)
	assert.Equal(t, "c3", b.AssignedCleaner.ID)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
}

func TestAssignCleanerGuards(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	// Completed bookings cannot be assigned.
	_, _, err := f.svc.AssignCleaner(ctx, "b2", "c1", "")
	require.ErrorIs(t, err, ErrAssignmentNotAllowed)

	// A cleaner must be selected.
	_, _, err = f.svc.AssignCleaner(ctx, "b1", "", "")
	require.Error(t, err)

	// Inactive cleaners are off the roster.
	_, _, err = f.svc.AssignCleaner(ctx, "b1", "c2", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not active")

	// Nothing was mutated by the failed attempts.
	stored, err := f.bookings.GetByID("b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, stored.Status)
	assert.Nil(t, stored.AssignedCleaner)
	assert.Empty(t, f.notifier.sent)
}

func TestAdminCancelBooking(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	b, msg, err := f.svc.CancelBooking(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCanceled, b.Status)
	assert.Equal(t, "Booking canceled successfully", msg)

	// Terminal bookings cannot be canceled again.
	_, _, err = f.svc.CancelBooking(ctx, "b1")
	require.ErrorIs(t, err, ErrAssignmentNotAllowed)
}

func TestListBookingsWarmsDashboardView(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	page, err := f.svc.ListBookings(ctx, models.BookingFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	cached, err := f.view.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 2)
}

func TestListBookingsFilteredDoesNotWarmView(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	page, err := f.svc.ListBookings(ctx, models.BookingFilter{Status: models.BookingStatusPending, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	cached, err := f.view.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestAssignCleanerUpdatesWarmView(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListBookings(ctx, models.BookingFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)

	_, _, err = f.svc.AssignCleaner(ctx, "b1", "c1", "")
	require.NoError(t, err)

	cached, err := f.view.Load(ctx)
	require.NoError(t, err)
	for _, b := range cached {
		if b.ID == "b1" {
			assert.Equal(t, models.BookingStatusConfirmed, b.Status)
			require.NotNil(t, b.AssignedCleaner)
			assert.Equal(t, "c1", b.AssignedCleaner.ID)
			return
		}
	}
	t.Fatal("b1 missing from cached view")
}
