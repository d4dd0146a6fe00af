package repository

import (
	"context"
	"time"

	"github.com/folioworks/folio-api/internal/contact"
	"github.com/folioworks/folio-api/internal/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding leads.
const CollectionName = "visitors"

// leadDoc is the stored shape; the id is a native ObjectID.
type leadDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Mobile    string             `bson:"mobile"`
	Message   string             `bson:"message"`
	IPAddress string             `bson:"ipAddress"`
	UserAgent string             `bson:"userAgent"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d leadDoc) lead() *contact.Lead {
	return &contact.Lead{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Mobile:    d.Mobile,
		Message:   d.Message,
		IPAddress: d.IPAddress,
		UserAgent: d.UserAgent,
		CreatedAt: d.CreatedAt,
	}
}

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

func (m *MongoRepo) Insert(ctx context.Context, l *contact.Lead) error {
	ctx, cancel := context.WithTimeout(ctx, m.db.Timeout())
	defer cancel()
	col, err := m.collection(ctx)
	if err != nil {
		return err
	}
	doc := leadDoc{
		ID:        primitive.NewObjectID(),
		Name:      l.Name,
		Email:     l.Email,
		Mobile:    l.Mobile,
		Message:   l.Message,
		IPAddress: l.IPAddress,
		UserAgent: l.UserAgent,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := col.InsertOne(ctx, doc); err != nil {
		return database.Classify("insert lead", err)
	}
	l.ID = doc.ID.Hex()
	l.CreatedAt = doc.CreatedAt
	return nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*contact.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, m.db.Timeout())
	defer cancel()
	col, err := m.collection(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, database.Classify("list leads", err)
	}
	defer cur.Close(ctx)

	out := make([]*contact.Lead, 0)
	for cur.Next(ctx) {
		var d leadDoc
		if err := cur.Decode(&d); err != nil {
			return nil, database.Classify("decode lead", err)
		}
		out = append(out, d.lead())
	}
	if err := cur.Err(); err != nil {
		return nil, database.Classify("list leads", err)
	}
	return out, nil
}
