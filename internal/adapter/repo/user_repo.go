package repo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/domain"
)

// UserRepositoryMongo implements domain.UserRepository backed by MongoDB.
type UserRepositoryMongo struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepositoryMongo.
func NewUserRepository(db *mongo.Database) *UserRepositoryMongo {
	return &UserRepositoryMongo{coll: db.Collection(usersCollection)}
}

// Create inserts a new user document. A duplicate email surfaces as
// domain.ErrDuplicateEmail via the unique index.
func (r *UserRepositoryMongo) Create(ctx context.Context, user *domain.User) error {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByEmail fetches a user by email.
func (r *UserRepositoryMongo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepositoryMongo) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// MarkPaid flips has_paid true iff it is still false. The filter makes
// the check-then-set a single conditional update, so concurrent webhook
// and poll deliveries cannot both win: the loser matches zero documents.
func (r *UserRepositoryMongo) MarkPaid(ctx context.Context, userID string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID, "has_paid": false},
		bson.M{"$set": bson.M{"has_paid": true}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// IncrementFreeUsage atomically bumps the free-use counter by one.
func (r *UserRepositoryMongo) IncrementFreeUsage(ctx context.Context, userID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"free_reflections_used": 1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
