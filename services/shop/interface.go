package shop

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	bookingRepo "shearbook/database/repository/booking"
	shopRepo "shearbook/database/repository/shop"
	"shearbook/models"
)

// ShopService manages shops, owner accounts, employees and their
// self-registration tokens.
type ShopService interface {
	RegisterOwner(ctx context.Context, name, email, password string) (*models.Owner, string, error)
	AuthenticateOwner(ctx context.Context, email, password string) (*models.Owner, string, error)

	CreateShop(ctx context.Context, shop *models.Shop) (*models.Shop, error)
	GetShop(ctx context.Context, shopID string) (*models.Shop, error)
	SetHours(ctx context.Context, shopID string, slotMinutes int, hours map[string]models.DayHours) error

	ListEmployees(ctx context.Context, shopID string) ([]models.Employee, error)
	SetEmployeeSchedule(ctx context.Context, shopID, employeeID string, schedule models.WeeklySchedule) error

	CreateRegistrationToken(ctx context.Context, shopID string) (*models.RegistrationToken, error)
	RedeemRegistrationToken(ctx context.Context, token string, emp models.Employee) (*models.Employee, error)

	DailyStats(ctx context.Context, shopID, fromDate, toDate string) ([]models.DailyStat, error)
}

// DefaultShopService implements ShopService.
type DefaultShopService struct {
	Repo     shopRepo.ShopRepository
	Bookings bookingRepo.BookingRepository

	// AuthCache stores hashes of currently valid owner tokens so a
	// sign-out can revoke them before expiry.
	AuthCache *redis.Client

	TokenExpiry     time.Duration // registration token lifetime
	AuthTokenExpiry time.Duration // owner JWT lifetime
}
