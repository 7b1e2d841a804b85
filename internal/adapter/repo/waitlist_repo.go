package repo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/domain"
)

// WaitlistRepositoryMongo implements domain.WaitlistRepository backed by MongoDB.
type WaitlistRepositoryMongo struct {
	coll *mongo.Collection
}

// NewWaitlistRepository creates a new WaitlistRepositoryMongo.
func NewWaitlistRepository(db *mongo.Database) *WaitlistRepositoryMongo {
	return &WaitlistRepositoryMongo{coll: db.Collection(waitlistCollection)}
}

// Create inserts a new signup. Duplicate emails surface as
// domain.ErrDuplicateEmail; the caller treats that as "already joined".
func (r *WaitlistRepositoryMongo) Create(ctx context.Context, entry *domain.WaitlistEntry) error {
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByEmail fetches a signup by email.
func (r *WaitlistRepositoryMongo) GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	var entry domain.WaitlistEntry
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// List returns an unordered snapshot of signups, capped at limit.
func (r *WaitlistRepositoryMongo) List(ctx context.Context, limit int) ([]domain.WaitlistEntry, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.WaitlistEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
