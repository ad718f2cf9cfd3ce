package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nambikkai-store/models"
)

type mongoAdminMemberStore struct {
	coll *mongo.Collection
}

func (s *mongoAdminMemberStore) Insert(ctx context.Context, m *models.AdminMember) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := s.coll.InsertOne(ctx, m)
	return err
}

func (s *mongoAdminMemberStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminMember, error) {
	var member models.AdminMember
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	return &member, nil
}

func (s *mongoAdminMemberStore) FindByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.AdminMember, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"admin_id": adminID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	members := []models.AdminMember{}
	for cursor.Next(ctx) {
		var member models.AdminMember
		if err := cursor.Decode(&member); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, cursor.Err()
}

func (s *mongoAdminMemberStore) Update(ctx context.Context, m *models.AdminMember) error {
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": m.ID}, bson.M{
		"$set": bson.M{
			"role":        m.Role,
			"permissions": m.Permissions,
			"is_active":   m.IsActive,
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

func (s *mongoAdminMemberStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
