package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/geocoder89/birthdays/internal/apperror"
	"github.com/geocoder89/birthdays/internal/domain/user"
	"github.com/geocoder89/birthdays/internal/observability"
)

const CollectionName = "users"

// userDocument is user.Document keyed by name; the name doubles as _id.
type userDocument struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	DateOfBirth string `bson:"dateOfBirth"`
}

type UsersRepo struct {
	client     *mongo.Client
	collection *mongo.Collection
	prom       *observability.Prom
}

func NewUsersRepo(db *mongo.Database, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		client:     db.Client(),
		collection: db.Collection(CollectionName),
		prom:       prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn, mongo.ErrNoDocuments)
	}
	return fn()
}

// Store replaces the whole document for u.Name(), creating it if needed.
func (r *UsersRepo) Store(ctx context.Context, u user.User) error {
	doc := user.ToDocument(u)

	err := r.observe("users.store", func() error {
		_, err := r.collection.ReplaceOne(ctx,
			bson.M{"_id": doc.Name},
			userDocument{ID: doc.Name, Name: doc.Name, DateOfBirth: doc.DateOfBirth},
			options.Replace().SetUpsert(true),
		)
		return err
	})

	if err != nil {
		return apperror.Other(fmt.Errorf("storing user %q: %w", doc.Name, err))
	}
	return nil
}

func (r *UsersRepo) Retrieve(ctx context.Context, name string) (user.User, error) {
	var doc userDocument

	err := r.observe("users.retrieve", func() error {
		return r.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, apperror.NotFound()
		}
		return user.User{}, apperror.Other(fmt.Errorf("retrieving user %q: %w", name, err))
	}

	u, err := user.FromDocument(user.Document{Name: doc.Name, DateOfBirth: doc.DateOfBirth})
	if err != nil {
		return user.User{}, apperror.Other(err)
	}
	return u, nil
}

func (r *UsersRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}
