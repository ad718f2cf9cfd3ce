package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nambikkai-store/models"
)

type mongoOrderStore struct {
	coll *mongo.Collection
}

var orderSort = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

func (s *mongoOrderStore) Insert(ctx context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, o)
	return err
}

func (s *mongoOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	return &order, nil
}

func (s *mongoOrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"user_id": userID}, orderSort)
}

func (s *mongoOrderStore) FindAll(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{}, orderSort)
}

func (s *mongoOrderStore) FindRecent(ctx context.Context, limit int64) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	return s.find(ctx, bson.M{}, opts)
}

func (s *mongoOrderStore) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Order, error) {
	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, cursor.Err()
}

func (s *mongoOrderStore) Update(ctx context.Context, o *models.Order) error {
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": o.ID}, bson.M{
		"$set": bson.M{
			"status":         o.Status,
			"payment_status": o.PaymentStatus,
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoOrderStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
