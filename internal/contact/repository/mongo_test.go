package repository

import (
	"context"
	"testing"
	"time"

	"github.com/folioworks/folio-api/internal/contact"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type mockSource struct{ db *mongo.Database }

func (s mockSource) Database(context.Context) (*mongo.Database, error) { return s.db, nil }
func (s mockSource) Timeout() time.Duration                           { return time.Second }

func TestMongoRepo_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("stores one document with id and timestamp", func(mt *mtest.T) {
		repo := NewMongoRepo(mockSource{db: mt.DB})
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		l := &contact.Lead{Name: "Ada", Email: "ada@b.co", Mobile: "123", IPAddress: "198.51.100.4", UserAgent: "curl"}
		require.NoError(mt, repo.Insert(context.Background(), l))
		require.Len(mt, l.ID, 24)
		require.False(mt, l.CreatedAt.IsZero())

		ev := mt.GetStartedEvent()
		require.Equal(mt, "insert", ev.CommandName)
		require.Equal(mt, CollectionName, ev.Command.Lookup("insert").StringValue())
		doc := ev.Command.Lookup("documents").Array().Index(0).Value().Document()
		require.Equal(mt, l.ID, doc.Lookup("_id").ObjectID().Hex())
		require.Equal(mt, "Ada", doc.Lookup("name").StringValue())
		require.Equal(mt, "", doc.Lookup("message").StringValue())
		require.Equal(mt, "198.51.100.4", doc.Lookup("ipAddress").StringValue())
		_, err := doc.LookupErr("createdAt")
		require.NoError(mt, err)
	})
}

func TestMongoRepo_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sorts newest first with id tiebreak", func(mt *mtest.T) {
		repo := NewMongoRepo(mockSource{db: mt.DB})
		newer, older := primitive.NewObjectID(), primitive.NewObjectID()
		at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db."+CollectionName, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: newer}, {Key: "name", Value: "B"}, {Key: "createdAt", Value: at.Add(time.Minute)}},
			bson.D{{Key: "_id", Value: older}, {Key: "name", Value: "A"}, {Key: "createdAt", Value: at}},
		))

		leads, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, leads, 2)
		require.Equal(mt, newer.Hex(), leads[0].ID)
		require.Equal(mt, "B", leads[0].Name)
		require.Equal(mt, "A", leads[1].Name)

		sort, err := mt.GetStartedEvent().Command.Lookup("sort").Document().Elements()
		require.NoError(mt, err)
		require.Len(mt, sort, 2)
		require.Equal(mt, "createdAt", sort[0].Key())
		require.EqualValues(mt, -1, sort[0].Value().AsInt64())
		require.Equal(mt, "_id", sort[1].Key())
		require.EqualValues(mt, -1, sort[1].Value().AsInt64())
	})

	mt.Run("empty collection is an empty list", func(mt *mtest.T) {
		repo := NewMongoRepo(mockSource{db: mt.DB})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db."+CollectionName, mtest.FirstBatch))

		leads, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.NotNil(mt, leads)
		require.Empty(mt, leads)
	})
}
