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

const collectionParties = "parties"

type PartyRepository struct {
	col *mongo.Collection
}

func NewPartyRepository(db *mongo.Database) *PartyRepository {
	return &PartyRepository{col: db.Collection(collectionParties)}
}

type partyDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PhoneNumber  string             `bson:"phone_number,omitempty"`
	Address      string             `bson:"address"`
	BusinessName string             `bson:"business_name"`
	PartyType    string             `bson:"party_type"`
}

func (r *PartyRepository) Create(ctx context.Context, party *domain.Party) (*domain.Party, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toPartyDoc(party))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicatePartyError(err)
		}
		return nil, fmt.Errorf("insert party: %w", err)
	}

	created := *party
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *PartyRepository) FindByID(ctx context.Context, id string) (*domain.Party, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPartyNotFound
	}

	var doc partyDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPartyNotFound
		}
		return nil, fmt.Errorf("find party: %w", err)
	}
	return fromPartyDoc(&doc), nil
}

func (r *PartyRepository) Update(ctx context.Context, party *domain.Party) (*domain.Party, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(party.ID)
	if err != nil {
		return nil, domain.ErrPartyNotFound
	}

	doc := toPartyDoc(party)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicatePartyError(err)
		}
		return nil, fmt.Errorf("update party: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPartyNotFound
	}
	return party, nil
}

func (r *PartyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPartyNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete party: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPartyNotFound
	}
	return nil
}

func (r *PartyRepository) List(ctx context.Context, q ports.ListQuery) ([]*domain.Party, int64, error) {
	return r.page(ctx, bson.M{}, q)
}

func (r *PartyRepository) SearchByName(ctx context.Context, keyword string, q ports.ListQuery) ([]*domain.Party, int64, error) {
	filter := bson.M{"name": bson.M{"$regex": keyword, "$options": "i"}}
	return r.page(ctx, filter, q)
}

func (r *PartyRepository) EnsureIndexes(ctx context.Context) error {
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
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *PartyRepository) page(ctx context.Context, filter bson.M, q ports.ListQuery) ([]*domain.Party, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count parties: %w", err)
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(q))
	if err != nil {
		return nil, 0, fmt.Errorf("list parties: %w", err)
	}
	defer cur.Close(ctx)

	parties := make([]*domain.Party, 0, q.Size)
	for cur.Next(ctx) {
		var doc partyDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode party: %w", err)
		}
		parties = append(parties, fromPartyDoc(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate parties: %w", err)
	}
	return parties, total, nil
}

func duplicatePartyError(err error) error {
	if strings.Contains(err.Error(), "phone_number") {
		return domain.ErrDuplicatePhone
	}
	return domain.ErrDuplicateEmail
}

func toPartyDoc(p *domain.Party) partyDoc {
	return partyDoc{
		Name:         p.Name,
		Email:        p.Email,
		PhoneNumber:  p.PhoneNumber,
		Address:      p.Address,
		BusinessName: p.BusinessName,
		PartyType:    p.PartyType,
	}
}

func fromPartyDoc(d *partyDoc) *domain.Party {
	return &domain.Party{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PhoneNumber:  d.PhoneNumber,
		Address:      d.Address,
		BusinessName: d.BusinessName,
		PartyType:    d.PartyType,
	}
}
