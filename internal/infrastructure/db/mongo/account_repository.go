package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
)

const collectionAccounts = "accounts"

type AccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(collectionAccounts)}
}

type accountDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FullName      string             `bson:"full_name"`
	Email         string             `bson:"email"`
	PasswordHash  string             `bson:"password_hash"`
	PhoneNumber   string             `bson:"phone_number,omitempty"`
	Role          string             `bson:"role"`
	Verified      bool               `bson:"verified"`
	ResetToken    string             `bson:"reset_token,omitempty"`
	Provider      string             `bson:"provider,omitempty"`
	ProviderToken string             `bson:"provider_token,omitempty"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toAccountDoc(account))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateAccountError(err)
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByResetToken(ctx context.Context, token string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"reset_token": token})
}

// LoadBySubject resolves a token subject (the email) to its account,
// satisfying ports.PrincipalLoader.
func (r *AccountRepository) LoadBySubject(ctx context.Context, subject string) (*domain.Account, error) {
	return r.FindByEmail(ctx, subject)
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	doc := toAccountDoc(account)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateAccountError(err)
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) List(ctx context.Context, q ports.ListQuery) ([]*domain.Account, int64, error) {
	return r.page(ctx, bson.M{}, q)
}

func (r *AccountRepository) SearchByName(ctx context.Context, keyword string, q ports.ListQuery) ([]*domain.Account, int64, error) {
	filter := bson.M{"full_name": bson.M{"$regex": keyword, "$options": "i"}}
	return r.page(ctx, filter, q)
}

// EnsureIndexes creates the uniqueness constraints the account invariants
// depend on: one account per email, one per phone number when present.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "reset_token", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return fromAccountDoc(&doc), nil
}

func (r *AccountRepository) page(ctx context.Context, filter bson.M, q ports.ListQuery) ([]*domain.Account, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(q))
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer cur.Close(ctx)

	accounts := make([]*domain.Account, 0, q.Size)
	for cur.Next(ctx) {
		var doc accountDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode account: %w", err)
		}
		accounts = append(accounts, fromAccountDoc(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, total, nil
}

// duplicateAccountError maps a duplicate-key failure to the violated
// constraint by inspecting the offending index name.
func duplicateAccountError(err error) error {
	if strings.Contains(err.Error(), "phone_number") {
		return domain.ErrDuplicatePhone
	}
	return domain.ErrDuplicateEmail
}

func toAccountDoc(a *domain.Account) accountDoc {
	return accountDoc{
		FullName:      a.FullName,
		Email:         a.Email,
		PasswordHash:  a.PasswordHash,
		PhoneNumber:   a.PhoneNumber,
		Role:          a.Role,
		Verified:      a.Verified,
		ResetToken:    a.ResetToken,
		Provider:      a.Provider,
		ProviderToken: a.ProviderToken,
		CreatedAt:     a.CreatedAt.Unix(),
		UpdatedAt:     a.UpdatedAt.Unix(),
	}
}

func fromAccountDoc(d *accountDoc) *domain.Account {
	return &domain.Account{
		ID:            d.ID.Hex(),
		FullName:      d.FullName,
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		PhoneNumber:   d.PhoneNumber,
		Role:          d.Role,
		Verified:      d.Verified,
		ResetToken:    d.ResetToken,
		Provider:      d.Provider,
		ProviderToken: d.ProviderToken,
		CreatedAt:     unixToTime(d.CreatedAt),
		UpdatedAt:     unixToTime(d.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
