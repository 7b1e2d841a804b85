package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/domain"
)

// PaymentRepositoryMongo implements domain.PaymentRepository backed by MongoDB.
type PaymentRepositoryMongo struct {
	coll *mongo.Collection
}

// NewPaymentRepository creates a new PaymentRepositoryMongo.
func NewPaymentRepository(db *mongo.Database) *PaymentRepositoryMongo {
	return &PaymentRepositoryMongo{coll: db.Collection(transactionsCollection)}
}

// Create inserts a pending transaction for a freshly created session.
func (r *PaymentRepositoryMongo) Create(ctx context.Context, txn *domain.PaymentTransaction) error {
	_, err := r.coll.InsertOne(ctx, txn)
	return err
}

// GetBySessionID fetches the transaction for a provider session id.
func (r *PaymentRepositoryMongo) GetBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error) {
	var txn domain.PaymentTransaction
	if err := r.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&txn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// UpdateStatus records the provider-reported status and bumps updated_at.
func (r *PaymentRepositoryMongo) UpdateStatus(ctx context.Context, sessionID string, status domain.PaymentStatus) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{
			"payment_status": status,
			"updated_at":     time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
