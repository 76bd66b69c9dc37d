// File: database/repository/shop/shop_mongo.go
package shopRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shearbook/models"
)

func (r *mongoShopRepo) CreateShop(ctx context.Context, shop *models.Shop) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if shop.ID == "" {
		shop.ID = uuid.New().String()
	}
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = time.Now()
	}
	_, err := r.shopColl.InsertOne(ctx, shop)
	return err
}

func (r *mongoShopRepo) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var shop models.Shop
	if err := r.shopColl.FindOne(ctx, bson.M{"id": shopID}).Decode(&shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *mongoShopRepo) UpdateHours(ctx context.Context, shopID string, slotMinutes int, hours map[string]models.DayHours) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"slotMinutes": slotMinutes,
		"hours":       hours,
	}}
	res, err := r.shopColl.UpdateOne(ctx, bson.M{"id": shopID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoShopRepo) CreateOwner(ctx context.Context, owner *models.Owner) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	if owner.CreatedAt.IsZero() {
		owner.CreatedAt = time.Now()
	}
	_, err := r.ownerColl.InsertOne(ctx, owner)
	return err
}

func (r *mongoShopRepo) GetOwnerByEmail(ctx context.Context, email string) (*models.Owner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var owner models.Owner
	if err := r.ownerColl.FindOne(ctx, bson.M{"email": email}).Decode(&owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// EnsureIndexes creates the necessary indexes across the shop-owned
// collections.
func (r *mongoShopRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.shopColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	}); err != nil {
		return fmt.Errorf("failed to create shop indexes: %w", err)
	}

	if _, err := r.ownerColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_email"),
	}); err != nil {
		return fmt.Errorf("failed to create owner indexes: %w", err)
	}

	if _, err := r.employeeColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("shop_employee_idx"),
	}); err != nil {
		return fmt.Errorf("failed to create employee indexes: %w", err)
	}

	if _, err := r.tokenColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_token"),
	}); err != nil {
		return fmt.Errorf("failed to create token indexes: %w", err)
	}
	return nil
}
