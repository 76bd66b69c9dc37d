// File: database/repository/shop/employees.go
package shopRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shearbook/models"
)

func (r *mongoShopRepo) CreateEmployee(ctx context.Context, emp *models.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = time.Now()
	}
	emp.Active = true
	_, err := r.employeeColl.InsertOne(ctx, emp)
	return err
}

func (r *mongoShopRepo) GetEmployee(ctx context.Context, shopID, employeeID string) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var emp models.Employee
	filter := bson.M{"shopId": shopID, "id": employeeID}
	if err := r.employeeColl.FindOne(ctx, filter).Decode(&emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *mongoShopRepo) ListEmployees(ctx context.Context, shopID string) ([]models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.employeeColl.Find(ctx, bson.M{"shopId": shopID, "active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("error decoding employees: %w", err)
	}
	return employees, nil
}

func (r *mongoShopRepo) UpdateEmployeeSchedule(ctx context.Context, shopID, employeeID string, schedule models.WeeklySchedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"shopId": shopID, "id": employeeID}
	res, err := r.employeeColl.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"schedule": schedule}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
