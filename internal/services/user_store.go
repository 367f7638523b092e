package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Shubham-7300/Portfolio-Backend/internal/apperr"
	"github.com/Shubham-7300/Portfolio-Backend/internal/models"
)

// UserStore is the credential store: user records live in a single Mongo
// collection and the unique email index is the consistency boundary.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection("users")}
}

// Create inserts a new user record. The password must already be hashed by
// the caller; this layer never hashes.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Wrap(apperr.KindDuplicateKey, "Email is already registered!", err)
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// FindByID returns the user with the given hex id, or (nil, nil) when no such
// user exists. A malformed id is a validation error. The password digest is
// excluded unless withPassword is set, mirroring FindByEmail.
func (s *UserStore) FindByID(ctx context.Context, id string, withPassword bool) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Invalid id", err)
	}

	opts := excludePassword()
	if withPassword {
		opts = options.FindOne()
	}

	var user models.User
	err = s.col.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the user with the given email, or (nil, nil) when none
// exists. The password digest is excluded unless withPassword is set; only
// login and password-change opt in.
func (s *UserStore) FindByEmail(ctx context.Context, email string, withPassword bool) (*models.User, error) {
	opts := excludePassword()
	if withPassword {
		opts = options.FindOne()
	}

	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the given field set and returns the updated record.
func (s *UserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	fields["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})

	var user models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.KindUserNotFound, "User not found!")
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Wrap(apperr.KindDuplicateKey, "Email is already registered!", err)
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword overwrites the stored digest. Hashing happens at the call
// site so a plaintext password can never reach the collection by accident.
func (s *UserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, digest string) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password":   digest,
		"updated_at": time.Now(),
	}})
	return err
}

// SetResetToken stores the hash and expiry of a freshly generated reset
// token. A targeted $set deliberately skips full-document validation: no
// other fields are being resubmitted. Each call overwrites the previous
// token, so at most one is ever active.
func (s *UserStore) SetResetToken(ctx context.Context, id primitive.ObjectID, hash string, expiry time.Time) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"reset_password_token":  hash,
		"reset_password_expire": expiry,
	}})
	return err
}

// ClearResetToken unsets both reset fields together.
func (s *UserStore) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$unset": bson.M{
		"reset_password_token":  "",
		"reset_password_expire": "",
	}})
	return err
}

// FindByResetToken resolves a hashed reset token to its owner, requiring the
// expiry to still be in the future. Expired and non-matching tokens both come
// back as (nil, nil) so the two cases are indistinguishable to a caller.
func (s *UserStore) FindByResetToken(ctx context.Context, hash string) (*models.User, error) {
	filter := bson.M{
		"reset_password_token":  hash,
		"reset_password_expire": bson.M{"$gt": time.Now()},
	}

	var user models.User
	err := s.col.FindOne(ctx, filter, excludePassword()).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func excludePassword() *options.FindOneOptions {
	return options.FindOne().SetProjection(bson.M{"password": 0})
}
