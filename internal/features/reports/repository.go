package reports

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

// Repository handles database interactions for incident reports
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates the 2dsphere index
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("reports")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})

	return &Repository{collection: collection}
}

// Create inserts a new report
func (r *Repository) Create(ctx context.Context, report *Report) error {
	report.CreatedAt = time.Now()
	report.Verified = false

	result, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return nil
}

// CountWithinRadius counts reports whose location lies within radiusMeters
// of center, boundary inclusive. $centerSphere takes the radius in radians.
func (r *Repository) CountWithinRadius(ctx context.Context, center geo.Point, radiusMeters float64) (int64, error) {
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{
					bson.A{center.Lng(), center.Lat()},
					geo.MetersToRadians(radiusMeters),
				},
			},
		},
	}
	return r.collection.CountDocuments(ctx, filter)
}

// GetByID retrieves a report by id
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Report, error) {
	var report Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// List returns reports newest first, with the total count for pagination
func (r *Repository) List(ctx context.Context, offset, limit int) ([]Report, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var result []Report
	if err := cursor.All(ctx, &result); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// SetVerified marks a report as verified by moderation
func (r *Repository) SetVerified(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"verified": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetPhotoURL attaches an evidence photo to a report
func (r *Repository) SetPhotoURL(ctx context.Context, id primitive.ObjectID, url string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"photoUrl": url}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
