package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shearbook/models"
	"shearbook/realtime"
	"shearbook/utils"
)

const blockedCacheTTL = 30 * time.Second

// IsSlotAvailable is the pure availability predicate: the time must be
// on the shop's slot grid for that weekday, must not appear in the
// blocked set, must not start within the past buffer, and — when an
// employee schedule is given — the hour must be in that employee's
// declared hours for the weekday.
func IsSlotAvailable(
	shop *models.Shop,
	schedule models.WeeklySchedule,
	date, clock string,
	blocked []string,
	now time.Time,
	buffer time.Duration,
) bool {
	start, err := slotStart(date, clock)
	if err != nil {
		return false
	}
	grid := SlotGrid(shop, start.Weekday())
	if !containsTime(grid, clock) {
		return false
	}
	if start.Before(now.Add(buffer)) {
		return false
	}
	if containsTime(blocked, clock) {
		return false
	}
	if schedule != nil && !schedule.HasHour(start.Weekday(), start.Hour()) {
		return false
	}
	return true
}

// AvailableSlots returns the open times for a shop/date, optionally
// narrowed to a single employee's schedule and holds.
func (s *DefaultReservationService) AvailableSlots(ctx context.Context, shopID, date, employeeID string) ([]string, error) {
	shop, err := s.Shops.GetShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("%w: shop %s", ErrNotFound, shopID)
	}

	var schedule models.WeeklySchedule
	if employeeID != "" {
		emp, err := s.Shops.GetEmployee(ctx, shopID, employeeID)
		if err != nil {
			return nil, fmt.Errorf("%w: employee %s", ErrNotFound, employeeID)
		}
		schedule = emp.Schedule
	}

	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable date %q", ErrScheduleViolation, date)
	}

	blocked, err := s.BlockedTimes(ctx, shopID, date, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	grid := SlotGrid(shop, day.Weekday())
	open := make([]string, 0, len(grid))
	for _, clock := range grid {
		if IsSlotAvailable(shop, schedule, date, clock, blocked, now, s.PastBuffer) {
			open = append(open, clock)
		}
	}
	return open, nil
}

// BlockedTimes returns the times claimed by active holds for the
// shop/date/employee feed, served from the cache when warm.
func (s *DefaultReservationService) BlockedTimes(ctx context.Context, shopID, date, employeeID string) ([]string, error) {
	key := blockedCacheKey(shopID, date, employeeID)

	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var cached []string
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	blocked, err := s.Holds.ActiveTimes(ctx, shopID, date, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocked times: %w", err)
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(blocked); err == nil {
			if err := s.Cache.Set(ctx, key, raw, blockedCacheTTL).Err(); err != nil {
				utils.GetLogger().Debug("blocked-slot cache write failed", zap.Error(err))
			}
		}
	}
	return blocked, nil
}

func blockedCacheKey(shopID, date, employeeKey string) string {
	return "blocked:" + realtime.FeedKey(shopID, date, employeeKey)
}

// invalidateBlocked drops the cached blocked set after a hold mutation.
func (s *DefaultReservationService) invalidateBlocked(ctx context.Context, shopID, date, employeeKey string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, blockedCacheKey(shopID, date, employeeKey)).Err(); err != nil {
		utils.GetLogger().Debug("blocked-slot cache invalidation failed", zap.Error(err))
	}
}
