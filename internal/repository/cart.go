// Package repository provides data access for committed cart quantities.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartQuantity represents the quantity of a product already committed in
// the cart subsystem. The contract is last write wins: the cart owns this
// value and selectors only read it.
type CartQuantity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID string             `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// CartRepository provides methods for committed-quantity operations.
type CartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository creates a new cart quantities repository.
func NewCartRepository(db *MongoDB) *CartRepository {
	return &CartRepository{
		collection: db.Cart,
	}
}

// Get returns the committed quantity for a product, 0 when none is stored.
func (r *CartRepository) Get(ctx context.Context, productID string) (int, error) {
	var doc CartQuantity
	err := r.collection.FindOne(ctx, bson.M{"product_id": productID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Quantity, nil
}

// Set stores the committed quantity for a product (upsert, last write wins).
func (r *CartRepository) Set(ctx context.Context, productID string, quantity int) error {
	if quantity < 0 {
		quantity = 0
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"product_id": productID},
		bson.M{
			"$set": bson.M{
				"quantity":   quantity,
				"updated_at": time.Now(),
			},
			"$setOnInsert": bson.M{"product_id": productID},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// Clear removes the committed quantity for a product.
func (r *CartRepository) Clear(ctx context.Context, productID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"product_id": productID})
	if err == mongo.ErrNoDocuments {
		return nil
	}
	return err
}
