package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// NewMongoStores wires every store to collections of the named database.
func NewMongoStores(client *mongo.Client, database string) *Stores {
	db := client.Database(database)
	return &Stores{
		Products: &mongoProductStore{coll: db.Collection("products")},
		Carts:    &mongoCartStore{coll: db.Collection("carts")},
		Orders:   &mongoOrderStore{coll: db.Collection("orders")},
		Users:    &mongoUserStore{coll: db.Collection("users")},
		Members:  &mongoAdminMemberStore{coll: db.Collection("admin_members")},
		Txn:      &mongoTxnRunner{client: client},
	}
}

// mongoTxnRunner runs fn inside a session transaction. The session
// context is handed to fn so collection operations inside join it.
type mongoTxnRunner struct {
	client *mongo.Client
}

func (r *mongoTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func mapMongoErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
