package businessRepo

import (
	"context"
	"fmt"
	"time"

	"bookline/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new business document.
func (r *MongoBusinessRepo) Create(ctx context.Context, biz *models.Business) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, biz); err != nil {
		return fmt.Errorf("error creating business: %w", err)
	}
	return nil
}

// GetByID retrieves a business by its unique ID.
func (r *MongoBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var biz models.Business
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&biz); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch business with id %s: %w", id, err)
	}
	return &biz, nil
}

// GetBySubdomain retrieves a business by its public subdomain.
func (r *MongoBusinessRepo) GetBySubdomain(ctx context.Context, subdomain string) (*models.Business, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var biz models.Business
	if err := r.coll.FindOne(ctx, bson.M{"subdomain": subdomain}).Decode(&biz); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch business with subdomain %s: %w", subdomain, err)
	}
	return &biz, nil
}

// UpdateAvailability replaces the weekly availability template.
func (r *MongoBusinessRepo) UpdateAvailability(ctx context.Context, id string, days []models.DayAvailability) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"weeklyAvailability": days}})
	if err != nil {
		return fmt.Errorf("error updating availability for business %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("business %s not found", id)
	}
	return nil
}

// UpdateServices replaces the service catalog.
func (r *MongoBusinessRepo) UpdateServices(ctx context.Context, id string, services []models.Service) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"services": services}})
	if err != nil {
		return fmt.Errorf("error updating services for business %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("business %s not found", id)
	}
	return nil
}

// UpdateCalendarSettings replaces the external calendar linkage.
func (r *MongoBusinessRepo) UpdateCalendarSettings(ctx context.Context, id string, settings models.CalendarSettings) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"calendar": settings}})
	if err != nil {
		return fmt.Errorf("error updating calendar settings for business %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("business %s not found", id)
	}
	return nil
}
