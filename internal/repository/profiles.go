// Package repository provides data access for constraint profiles.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConstraintProfile represents a per-product constraint profile document:
// the min/max/step bounds and optional case-pack configuration selectors
// read as their live source of truth.
type ConstraintProfile struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	ProductID string                 `bson:"product_id" json:"product_id"`
	Min       int                    `bson:"min" json:"min"`
	Max       int                    `bson:"max" json:"max"`
	Step      int                    `bson:"step" json:"step"`
	PackSize  int                    `bson:"pack_size" json:"pack_size"`
	MaxCases  int                    `bson:"max_cases" json:"max_cases"`
	Version   int                    `bson:"version" json:"version"`
	CreatedAt time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time              `bson:"updated_at" json:"updated_at"`
	UpdatedBy string                 `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// ProfilesRepository provides methods for constraint profile operations.
type ProfilesRepository struct {
	collection *mongo.Collection
}

// NewProfilesRepository creates a new constraint profiles repository.
func NewProfilesRepository(db *MongoDB) *ProfilesRepository {
	return &ProfilesRepository{
		collection: db.Profiles,
	}
}

// Get returns the profile for the given product, or nil when none exists.
func (r *ProfilesRepository) Get(ctx context.Context, productID string) (*ConstraintProfile, error) {
	var profile ConstraintProfile
	err := r.collection.FindOne(ctx, bson.M{"product_id": productID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil // No profile for this product
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert stores the profile for a product, creating it when absent and
// bumping the version when it already exists.
func (r *ProfilesRepository) Upsert(ctx context.Context, profile ConstraintProfile) (*ConstraintProfile, error) {
	now := time.Now()

	update := bson.M{
		"$set": bson.M{
			"min":        profile.Min,
			"max":        profile.Max,
			"step":       profile.Step,
			"pack_size":  profile.PackSize,
			"max_cases":  profile.MaxCases,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"product_id": profile.ProductID,
			"created_at": now,
		},
		"$inc": bson.M{"version": 1},
	}
	if profile.UpdatedBy != "" {
		if setDoc, ok := update["$set"].(bson.M); ok {
			setDoc["updated_by"] = profile.UpdatedBy
		}
	}

	var stored ConstraintProfile
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"product_id": profile.ProductID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// List returns stored profiles, newest first.
func (r *ProfilesRepository) List(ctx context.Context, limit int) ([]ConstraintProfile, error) {
	opts := options.Find().SetSort(bson.M{"updated_at": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var profiles []ConstraintProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Delete removes the profile for a product. Missing profiles are not an
// error.
func (r *ProfilesRepository) Delete(ctx context.Context, productID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"product_id": productID})
	return err
}
