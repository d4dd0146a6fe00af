package repository

import (
	"context"
	"errors"
	"time"

	"github.com/folioworks/folio-api/internal/database"
	"github.com/folioworks/folio-api/internal/portfolio"
	"github.com/folioworks/folio-api/pkg/apperror"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding the profile document.
const CollectionName = "portfolios"

// MongoRepo implements Repository on a Mongo collection. The profile always
// lives under the fixed _id "portfolio", so an upsert is one atomic
// FindOneAndUpdate and concurrent writers cannot create a second document.
type MongoRepo struct {
	db database.Source
}

func NewMongoRepo(db database.Source) *MongoRepo {
	return &MongoRepo{db: db}
}

func (m *MongoRepo) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := m.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(CollectionName), nil
}

func (m *MongoRepo) Get(ctx context.Context) (*portfolio.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, m.db.Timeout())
	defer cancel()
	col, err := m.collection(ctx)
	if err != nil {
		return nil, err
	}
	var p portfolio.Profile
	if err := col.FindOne(ctx, bson.M{"_id": portfolio.ProfileID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("Portfolio")
		}
		return nil, database.Classify("get portfolio", err)
	}
	p.Normalize()
	return &p, nil
}

func (m *MongoRepo) Upsert(ctx context.Context, p *portfolio.Profile) (*portfolio.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, m.db.Timeout())
	defer cancel()
	col, err := m.collection(ctx)
	if err != nil {
		return nil, err
	}

	in := p.Content()
	in.Experience = append([]portfolio.Experience(nil), p.Experience...)
	in.Normalize()
	now := time.Now().UTC()
	update := bson.M{
		"$set":         replacementFields(&in, now),
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored portfolio.Profile
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": portfolio.ProfileID}, update, opts).Decode(&stored)
	if mongo.IsDuplicateKeyError(err) {
		// lost an insert race on the fixed key; the document exists now
		err = col.FindOneAndUpdate(ctx, bson.M{"_id": portfolio.ProfileID}, update, opts).Decode(&stored)
	}
	if err != nil {
		return nil, database.Classify("upsert portfolio", err)
	}
	stored.Normalize()
	return &stored, nil
}

// replacementFields lists every content field explicitly, including empty
// ones, so a write clears whatever the previous document held.
func replacementFields(p *portfolio.Profile, now time.Time) bson.M {
	return bson.M{
		"name":        p.Name,
		"title":       p.Title,
		"email":       p.Email,
		"about":       p.About,
		"skills":      p.Skills,
		"experience":  p.Experience,
		"projects":    p.Projects,
		"socialLinks": p.SocialLinks,
		"contact":     p.Contact,
		"updatedAt":   now,
	}
}
