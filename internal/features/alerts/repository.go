package alerts

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for SOS alerts
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("sosalerts")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "updatedAt", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})

	return &Repository{collection: collection}
}

// Create inserts a new alert in pending state
func (r *Repository) Create(ctx context.Context, alert *SOSAlert) error {
	now := time.Now()
	alert.CreatedAt = now
	alert.UpdatedAt = now
	alert.Status = StatusPending
	if alert.ContactsNotified == nil {
		alert.ContactsNotified = []string{}
	}

	result, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		alert.ID = oid
	}
	return nil
}

// UpdateDelivery persists the delivery outcome of a dispatch attempt
func (r *Repository) UpdateDelivery(ctx context.Context, alert *SOSAlert) error {
	alert.UpdatedAt = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": alert.ID},
		bson.M{"$set": bson.M{
			"status":           alert.Status,
			"contactsNotified": alert.ContactsNotified,
			"policeNotified":   alert.PoliceNotified,
			"updatedAt":        alert.UpdatedAt,
		}},
	)
	return err
}

// FindFailed returns failed alerts, oldest update first, up to limit
func (r *Repository) FindFailed(ctx context.Context, limit int64) ([]SOSAlert, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"status": StatusFailed}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []SOSAlert
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByUser returns a user's alerts, newest first
func (r *Repository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]SOSAlert, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []SOSAlert
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}
