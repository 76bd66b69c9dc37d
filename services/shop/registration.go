package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shearbook/models"
)

func (svc *DefaultShopService) tokenExpiry() time.Duration {
	if svc.TokenExpiry > 0 {
		return svc.TokenExpiry
	}
	return 72 * time.Hour
}

// CreateRegistrationToken mints a one-time invite for a barber to join
// the shop.
func (svc *DefaultShopService) CreateRegistrationToken(ctx context.Context, shopID string) (*models.RegistrationToken, error) {
	if _, err := svc.Repo.GetShop(ctx, shopID); err != nil {
		return nil, fmt.Errorf("unknown shop %s: %w", shopID, err)
	}

	token := &models.RegistrationToken{
		ShopID:    shopID,
		ExpiresAt: time.Now().Add(svc.tokenExpiry()),
	}
	if err := svc.Repo.CreateToken(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to create registration token: %w", err)
	}
	return token, nil
}

// RedeemRegistrationToken consumes a token and registers the employee.
// The token transitions pending -> completed exactly once: consumption
// is conditional on used=false, so a concurrent second redemption loses
// and the employee is never created twice for one invite.
func (svc *DefaultShopService) RedeemRegistrationToken(ctx context.Context, token string, emp models.Employee) (*models.Employee, error) {
	if emp.Name == "" {
		return nil, fmt.Errorf("employee name is required")
	}
	if emp.Schedule == nil {
		emp.Schedule = models.WeeklySchedule{}
	}
	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}

	consumed, err := svc.Repo.ConsumeToken(ctx, token, emp.ID)
	if err != nil {
		return nil, err
	}

	emp.ShopID = consumed.ShopID
	if err := svc.Repo.CreateEmployee(ctx, &emp); err != nil {
		return nil, fmt.Errorf("failed to register employee: %w", err)
	}
	return &emp, nil
}
