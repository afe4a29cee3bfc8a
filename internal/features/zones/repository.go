package zones

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xyz-asif/safezone/internal/geo"
	apperrors "github.com/xyz-asif/safezone/pkg/errors"
)

// Repository handles database interactions for danger zones
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("dangerzones")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "center", Value: "2dsphere"}},
		},
		{
			Keys:    bson.D{{Key: "bucket", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	return &Repository{collection: collection}
}

// Create inserts a new danger zone. Returns apperrors.ErrDuplicate when a
// zone already occupies the same spatial bucket (lost creation race).
func (r *Repository) Create(ctx context.Context, zone *DangerZone) error {
	zone.CreatedAt = time.Now()
	zone.UpdatedAt = zone.CreatedAt

	result, err := r.collection.InsertOne(ctx, zone)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		zone.ID = oid
	}
	return nil
}

// FindOverlapping returns a zone whose center lies within radiusMeters of
// the given center, or nil when none exists. When several zones qualify the
// one with the smallest id wins, so repeated lookups are deterministic.
func (r *Repository) FindOverlapping(ctx context.Context, center geo.Point, radiusMeters float64) (*DangerZone, error) {
	filter := bson.M{
		"center": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{
					bson.A{center.Lng(), center.Lat()},
					geo.MetersToRadians(radiusMeters),
				},
			},
		},
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var zone DangerZone
	err := r.collection.FindOne(ctx, filter, opts).Decode(&zone)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &zone, nil
}

// Reinforce atomically raises a zone's report count to at least reportCount
// and reactivates it. $max keeps the count monotonic even when two report
// submissions race on the same zone.
func (r *Repository) Reinforce(ctx context.Context, id primitive.ObjectID, reportCount int64) (*DangerZone, error) {
	update := bson.M{
		"$max": bson.M{"reportCount": reportCount},
		"$set": bson.M{"active": true, "updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var zone DangerZone
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&zone)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// FindActiveNear returns active zones within maxDistanceMeters of the point,
// nearest first ($nearSphere sorts by distance).
func (r *Repository) FindActiveNear(ctx context.Context, p geo.Point, maxDistanceMeters float64) ([]DangerZone, error) {
	filter := bson.M{
		"active": true,
		"center": bson.M{
			"$nearSphere": bson.M{
				"$geometry":    p,
				"$maxDistance": maxDistanceMeters,
			},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []DangerZone
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// List returns every danger zone, newest first.
func (r *Repository) List(ctx context.Context) ([]DangerZone, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []DangerZone
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Deactivate marks a zone inactive. Zones are never deleted.
func (r *Repository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
