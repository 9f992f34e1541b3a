// File: services/admin/view.go
package admin

import (
	"context"
	"encoding/json"
	"time"

	"pristine/models"

	"github.com/go-redis/redis/v8"
)

const (
	recentViewKey = "admin:recentBookings"
	recentViewTTL = 10 * time.Minute
	recentViewMax = 50
)

// ReplaceByID swaps the entry with the updated record's ID in an ordered
// booking list. Order is preserved; an absent ID leaves the list unchanged.
func ReplaceByID(list []models.Booking, updated models.Booking) []models.Booking {
	for i := range list {
		if list[i].ID == updated.ID {
			list[i] = updated
			break
		}
	}
	return list
}

// DashboardView caches the admin dashboard's recent-bookings list so a
// mutation swaps the single affected record in place instead of re-reading
// the whole list.
type DashboardView struct {
	Cache *redis.Client
}

// Load returns the cached view, or nil when cold.
func (v *DashboardView) Load(ctx context.Context) ([]models.Booking, error) {
	data, err := v.Cache.Get(ctx, recentViewKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []models.Booking
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Store replaces the cached view.
func (v *DashboardView) Store(ctx context.Context, list []models.Booking) error {
	if len(list) > recentViewMax {
		list = list[:recentViewMax]
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return v.Cache.Set(ctx, recentViewKey, data, recentViewTTL).Err()
}

// Apply swaps the updated record into the cached view if one is warm.
func (v *DashboardView) Apply(ctx context.Context, updated models.Booking) error {
	list, err := v.Load(ctx)
	if err != nil || list == nil {
		return err
	}
	return v.Store(ctx, ReplaceByID(list, updated))
}
