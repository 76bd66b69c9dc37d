// File: database/repository/shop/tokens.go
package shopRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shearbook/models"
)

func (r *mongoShopRepo) CreateToken(ctx context.Context, token *models.RegistrationToken) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.Token == "" {
		token.Token = uuid.New().String()
	}
	token.Status = models.TokenPending
	token.Used = false
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	_, err := r.tokenColl.InsertOne(ctx, token)
	return err
}

// ConsumeToken marks a registration token used, exactly once. The
// filter re-checks used=false and expiry at the moment of the update,
// so of two concurrent consumers at most one sees a matched document.
func (r *mongoShopRepo) ConsumeToken(ctx context.Context, token, employeeID string) (*models.RegistrationToken, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{
		"token":     token,
		"used":      false,
		"expiresAt": bson.M{"$gt": now},
	}
	update := bson.M{"$set": bson.M{
		"used":       true,
		"status":     models.TokenCompleted,
		"employeeId": employeeID,
		"usedAt":     now,
	}}

	var consumed models.RegistrationToken
	err := r.tokenColl.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&consumed)
	if err != nil {
		return nil, ErrTokenConsumed
	}
	return &consumed, nil
}
