package shop

import (
	"context"
	"fmt"

	"shearbook/models"
)

// CreateShop validates and stores a new shop listing.
func (svc *DefaultShopService) CreateShop(ctx context.Context, s *models.Shop) (*models.Shop, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("shop name is required")
	}
	if s.SlotMinutes <= 0 {
		s.SlotMinutes = 30
	}
	if s.Hours == nil {
		s.Hours = map[string]models.DayHours{}
	}
	if err := svc.Repo.CreateShop(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}
	return s, nil
}

func (svc *DefaultShopService) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	return svc.Repo.GetShop(ctx, shopID)
}

// SetHours replaces a shop's weekly opening hours and slot duration.
func (svc *DefaultShopService) SetHours(ctx context.Context, shopID string, slotMinutes int, hours map[string]models.DayHours) error {
	if slotMinutes <= 0 {
		return fmt.Errorf("slotMinutes must be positive")
	}
	return svc.Repo.UpdateHours(ctx, shopID, slotMinutes, hours)
}

func (svc *DefaultShopService) ListEmployees(ctx context.Context, shopID string) ([]models.Employee, error) {
	return svc.Repo.ListEmployees(ctx, shopID)
}

func (svc *DefaultShopService) SetEmployeeSchedule(ctx context.Context, shopID, employeeID string, schedule models.WeeklySchedule) error {
	return svc.Repo.UpdateEmployeeSchedule(ctx, shopID, employeeID, schedule)
}

// DailyStats backs the shop dashboard: bookings and revenue per day.
func (svc *DefaultShopService) DailyStats(ctx context.Context, shopID, fromDate, toDate string) ([]models.DailyStat, error) {
	return svc.Bookings.DailyStats(ctx, shopID, fromDate, toDate)
}
