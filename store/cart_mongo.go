package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"nambikkai-store/models"
)

type mongoCartStore struct {
	coll *mongo.Collection
}

func (s *mongoCartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	return &cart, nil
}

func (s *mongoCartStore) Insert(ctx context.Context, c *models.Cart) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := s.coll.InsertOne(ctx, c)
	return err
}

// Update writes the cart's items and total guarded by its version. A
// concurrent writer makes the filter miss, which surfaces as
// ErrVersionConflict so the caller can reload and retry.
func (s *mongoCartStore) Update(ctx context.Context, c *models.Cart) error {
	c.UpdatedAt = time.Now().UTC()
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": c.ID, "version": c.Version},
		bson.M{
			"$set": bson.M{
				"items":       c.Items,
				"total_price": c.TotalPrice,
				"updated_at":  c.UpdatedAt,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}
	c.Version++
	return nil
}
