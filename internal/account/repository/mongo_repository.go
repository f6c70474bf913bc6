package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	"github.com/AlibekovAA/account-core/internal/common/db"
)

const (
	mongoStore = "mongo"

	mongoUsernameIndexName = "accounts_username_ci"
	mongoEmailIndexName    = "accounts_email_ci"
)

// Strength 2 compares base letters and diacritics but ignores case.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

type MongoRepository struct {
	collection *mongo.Collection
}

type mongoAccount struct {
	ID        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Email     string    `bson:"email"`
	Digest    string    `bson:"digest"`
	IsAdmin   bool      `bson:"is_admin"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func NewMongoRepository(c *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: c}
}

// EnsureIndexes creates the unique case-insensitive indexes that enforce
// account uniqueness.
func (m *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName(mongoUsernameIndexName).SetUnique(true).SetCollation(caseInsensitive),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(mongoEmailIndexName).SetUnique(true).SetCollation(caseInsensitive),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}
	return nil
}

func (m *MongoRepository) FindByID(ctx context.Context, id domain.ID) (domain.Account, error) {
	return m.findOne(ctx, "find account by id", bson.M{"_id": string(id)}, nil)
}

func (m *MongoRepository) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	return m.findOne(ctx, "find account by username", bson.M{"username": username}, nil)
}

func (m *MongoRepository) FindByUsernameCI(ctx context.Context, username string) (domain.Account, error) {
	return m.findOne(ctx, "find account by username ci", bson.M{"username": username}, caseInsensitive)
}

func (m *MongoRepository) FindByEmailCI(ctx context.Context, email string) (domain.Account, error) {
	return m.findOne(ctx, "find account by email ci", bson.M{"email": email}, caseInsensitive)
}

func (m *MongoRepository) findOne(ctx context.Context, operation string, filter bson.M, collation *options.Collation) (domain.Account, error) {
	start := time.Now()

	opts := options.FindOne()
	if collation != nil {
		opts.SetCollation(collation)
	}

	var doc mongoAccount
	err := m.collection.FindOne(ctx, filter, opts).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		err = ErrAccountNotFound
	case err != nil:
		err = fmt.Errorf("failed to %s: %w", operation, err)
	}

	db.ObserveQuery(mongoStore, operation, start, err, ErrAccountNotFound)
	if err != nil {
		return domain.Account{}, err
	}
	return accountFromMongo(doc), nil
}

func (m *MongoRepository) Insert(ctx context.Context, account domain.Account) error {
	start := time.Now()

	_, err := m.collection.InsertOne(ctx, mongoFromAccount(account))
	if err != nil {
		err = mapMongoInsertError(err)
	}

	db.ObserveQuery(mongoStore, "insert account", start, err)
	return err
}

func mapMongoInsertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		msg := err.Error()
		switch {
		case strings.Contains(msg, mongoUsernameIndexName):
			return &DuplicateConstraintViolation{Field: domain.FieldUsername}
		case strings.Contains(msg, mongoEmailIndexName):
			return &DuplicateConstraintViolation{Field: domain.FieldEmail}
		}
	}
	return fmt.Errorf("failed to insert account: %w", err)
}

func (m *MongoRepository) Update(ctx context.Context, account domain.Account) error {
	start := time.Now()

	res, err := m.collection.UpdateOne(
		ctx,
		bson.M{"_id": string(account.ID)},
		bson.M{"$set": bson.M{
			"is_admin":   account.IsAdmin,
			"updated_at": account.UpdatedAt,
		}},
	)
	switch {
	case err != nil:
		err = fmt.Errorf("failed to update account: %w", err)
	case res.MatchedCount == 0:
		err = ErrAccountNotFound
	}

	db.ObserveQuery(mongoStore, "update account", start, err, ErrAccountNotFound)
	return err
}

func mongoFromAccount(a domain.Account) mongoAccount {
	return mongoAccount{
		ID:        string(a.ID),
		Username:  a.Username,
		Email:     a.Email,
		Digest:    a.Digest,
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func accountFromMongo(d mongoAccount) domain.Account {
	return domain.Account{
		ID:        domain.ID(d.ID),
		Username:  d.Username,
		Email:     d.Email,
		Digest:    d.Digest,
		IsAdmin:   d.IsAdmin,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}
