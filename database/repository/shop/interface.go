// File: database/repository/shop/interface.go
package shopRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"shearbook/database"
	"shearbook/models"
)

// ErrTokenConsumed is returned by ConsumeToken when the token was
// already used (or never existed). The conditional update on used=false
// is the re-check that makes a concurrent second use lose.
var ErrTokenConsumed = errors.New("registration token already used or unknown")

type ShopRepository interface {
	CreateShop(ctx context.Context, shop *models.Shop) error
	GetShop(ctx context.Context, shopID string) (*models.Shop, error)
	UpdateHours(ctx context.Context, shopID string, slotMinutes int, hours map[string]models.DayHours) error

	CreateOwner(ctx context.Context, owner *models.Owner) error
	GetOwnerByEmail(ctx context.Context, email string) (*models.Owner, error)

	CreateEmployee(ctx context.Context, emp *models.Employee) error
	GetEmployee(ctx context.Context, shopID, employeeID string) (*models.Employee, error)
	ListEmployees(ctx context.Context, shopID string) ([]models.Employee, error)
	UpdateEmployeeSchedule(ctx context.Context, shopID, employeeID string, schedule models.WeeklySchedule) error

	CreateToken(ctx context.Context, token *models.RegistrationToken) error
	ConsumeToken(ctx context.Context, token, employeeID string) (*models.RegistrationToken, error)

	EnsureIndexes() error
}

type mongoShopRepo struct {
	shopColl     *mongo.Collection
	ownerColl    *mongo.Collection
	employeeColl *mongo.Collection
	tokenColl    *mongo.Collection
}

// NewMongoShopRepo constructs a new MongoDB ShopRepository.
func NewMongoShopRepo() ShopRepository {
	db := database.DB()
	return &mongoShopRepo{
		shopColl:     db.Collection("shops"),
		ownerColl:    db.Collection("owners"),
		employeeColl: db.Collection("employees"),
		tokenColl:    db.Collection("registration_tokens"),
	}
}
