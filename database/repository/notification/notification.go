// File: database/repository/notification/notification.go
package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shearbook/database"
	"shearbook/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByShop(ctx context.Context, shopID string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo constructs a new MongoDB NotificationRepository.
func NewMongoNotificationRepo() NotificationRepository {
	return &mongoNotificationRepo{
		coll: database.DB().Collection("notifications"),
	}
}

func (r *mongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, n)
	return err
}

func (r *mongoNotificationRepo) ListByShop(ctx context.Context, shopID string, limit int64) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"shopId": shopID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("error decoding notifications: %w", err)
	}
	return notifications, nil
}

func (r *mongoNotificationRepo) MarkRead(ctx context.Context, notificationID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": notificationID},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}
