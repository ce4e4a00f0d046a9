// Package store persists profiles remotely in MongoDB, fans out profile changes over Redis and
// mirrors per-device state in a local badger database.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raushankrgupta/glow-studio/models"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

var (
	// ErrEmailTaken is returned when signing up with an email that already has an account
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrNotFound is returned when no profile matches
	ErrNotFound = errors.New("profile not found")
)

// Profiles is the remote profile store. Every successful update is published on the bus
// so other sessions of the same user pick it up.
type Profiles struct {
	users *mongo.Collection
	bus   *ProfileBus
	log   zerolog.Logger
}

// NewProfiles wraps the users collection of db. bus may be nil, in which case updates are not fanned out.
func NewProfiles(db *mongo.Database, bus *ProfileBus, log zerolog.Logger) *Profiles {
	return &Profiles{
		users: db.Collection(usersCollection),
		bus:   bus,
		log:   log,
	}
}

// EnsureIndexes creates the unique email index
func (p *Profiles) EnsureIndexes(ctx context.Context) error {
	_, err := p.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateUser inserts u and fills in its id and timestamps
func (p *Profiles) CreateUser(ctx context.Context, u *models.User) error {
	u.Email = normalizeEmail(u.Email)

	if _, err := p.FindByEmail(ctx, u.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	now := time.Now()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.Normalize()

	if _, err := p.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail returns the user registered under email
func (p *Profiles) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return p.findOne(ctx, bson.M{"email": normalizeEmail(email)})
}

// GetProfile returns the profile of userID
func (p *Profiles) GetProfile(ctx context.Context, userID string) (models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, ErrNotFound
	}
	return p.findOne(ctx, bson.M{"_id": id})
}

// FindOrCreateByEmail returns the user for email, creating a passwordless account when none exists
func (p *Profiles) FindOrCreateByEmail(ctx context.Context, email, name string) (models.User, bool, error) {
	u, err := p.FindByEmail(ctx, email)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.User{}, false, err
	}

	u = models.User{Name: name, Email: email}
	if err := p.CreateUser(ctx, &u); err != nil {
		return models.User{}, false, err
	}
	return u, true, nil
}

// UpdateProfile replaces the fields set in upd and publishes the stored result
func (p *Profiles) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) error {
	if upd.IsEmpty() {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	var updated models.User
	err = p.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": setFields(upd, time.Now())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	if p.bus != nil {
		if err := p.bus.Publish(ctx, updated); err != nil {
			p.log.Warn().Err(err).Str("user_id", userID).Msg("failed to publish profile update")
		}
	}
	return nil
}

// SetResetCode stores the hash of a password reset code for email and returns the account
func (p *Profiles) SetResetCode(ctx context.Context, email, codeHash string, expires time.Time) (models.User, error) {
	var u models.User
	err := p.users.FindOneAndUpdate(ctx,
		bson.M{"email": normalizeEmail(email)},
		bson.M{"$set": bson.M{"reset_code": codeHash, "reset_expires": expires}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("set reset code: %w", err)
	}
	return u, nil
}

// ResetPassword replaces the password hash of userID and clears any pending reset code
func (p *Profiles) ResetPassword(ctx context.Context, userID primitive.ObjectID, passwordHash string) error {
	res, err := p.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$set":   bson.M{"password": passwordHash, "updated_at": time.Now()},
			"$unset": bson.M{"reset_code": "", "reset_expires": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Profiles) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var u models.User
	err := p.users.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	u.Normalize()
	return u, nil
}

// setFields turns the non-nil fields of upd into a $set document
func setFields(upd models.ProfileUpdate, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Favorites != nil {
		set["favorites"] = nonNil(*upd.Favorites)
	}
	if upd.CustomProducts != nil {
		set["custom_products"] = nonNil(*upd.CustomProducts)
	}
	if upd.SavedLooks != nil {
		set["saved_looks"] = nonNil(*upd.SavedLooks)
	}
	return set
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
