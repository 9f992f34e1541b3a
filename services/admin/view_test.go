// File: services/admin/view_test.go
package admin

import (
	"context"
	"testing"

	"pristine/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingList() []models.Booking {
	return []models.Booking{
		{ID: "b1", Status: models.BookingStatusPending},
		{ID: "b2", Status: models.BookingStatusConfirmed},
		{ID: "b3", Status: models.BookingStatusPending},
	}
}

func TestReplaceByIDSwapsMatchingEntry(t *testing.T) {
	list := bookingList()
	updated := models.Booking{ID: "b2", Status: models.BookingStatusCanceled}

	out := ReplaceByID(list, updated)

	require.Len(t, out, 3)
	assert.Equal(t, "b1", out[0].ID)
	assert.Equal(t, "b2", out[1].ID)
	assert.Equal(t, models.BookingStatusCanceled, out[1].Status)
	assert.Equal(t, "b3", out[2].ID)
}

func TestReplaceByIDAbsentIDLeavesListUnchanged(t *testing.T) {
	list := bookingList()
	out := ReplaceByID(list, models.Booking{ID: "b9", Status: models.BookingStatusCanceled})

	require.Len(t, out, 3)
	for i, b := range bookingList() {
		assert.Equal(t, b.ID, out[i].ID)
		assert.Equal(t, b.Status, out[i].Status)
	}
}

func TestReplaceByIDReplacesOnlyFirstMatch(t *testing.T) {
	list := []models.Booking{
		{ID: "b1", Status: models.BookingStatusPending},
		{ID: "b1", Status: models.BookingStatusPending},
	}
	out := ReplaceByID(list, models.Booking{ID: "b1", Status: models.BookingStatusConfirmed})

	assert.Equal(t, models.BookingStatusConfirmed, out[0].Status)
	assert.Equal(t, models.BookingStatusPending, out[1].Status)
}

func newTestView(t *testing.T) *DashboardView {
	t.Helper()
	mr := miniredis.RunT(t)
	return &DashboardView{Cache: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
}

func TestDashboardViewColdLoadReturnsNil(t *testing.T) {
	v := newTestView(t)
	list, err := v.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, list)
}

func TestDashboardViewApplySwapsInPlace(t *testing.T) {
	v := newTestView(t)
	ctx := context.Background()
	require.NoError(t, v.Store(ctx, bookingList()))

	updated := models.Booking{ID: "b1", Status: models.BookingStatusConfirmed,
		AssignedCleaner: &models.CleanerRef{ID: "c1", Name: "Sam"}}
	require.NoError(t, v.Apply(ctx, updated))

	list, err := v.Load(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, models.BookingStatusConfirmed, list[0].Status)
	require.NotNil(t, list[0].AssignedCleaner)
	assert.Equal(t, "c1", list[0].AssignedCleaner.ID)
	// Untouched entries keep their order and state.
	assert.Equal(t, "b2", list[1].ID)
	assert.Equal(t, "b3", list[2].ID)
}

func TestDashboardViewApplyOnColdCacheIsNoop(t *testing.T) {
	v := newTestView(t)
	ctx := context.Background()

	require.NoError(t, v.Apply(ctx, models.Booking{ID: "b1"}))
	list, err := v.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, list)
}
