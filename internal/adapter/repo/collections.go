// Package repo implements the domain repository contracts on top of the
// MongoDB document store. All filter shapes and update operators live
// here; business logic above this package only sees typed entities.
package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	usersCollection        = "users"
	waitlistCollection     = "beta_signups"
	transactionsCollection = "payment_transactions"
)

// EnsureIndexes creates the unique indexes the invariants rely on:
// one user and one waitlist entry per email, one transaction per
// provider session. Safe to call on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	if _, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, unique("email")); err != nil {
		return err
	}
	if _, err := db.Collection(waitlistCollection).Indexes().CreateOne(ctx, unique("email")); err != nil {
		return err
	}
	if _, err := db.Collection(transactionsCollection).Indexes().CreateOne(ctx, unique("session_id")); err != nil {
		return err
	}
	return nil
}
