package repository

import (
	"context"
	"testing"
	"time"

	"github.com/folioworks/folio-api/internal/portfolio"
	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type mockSource struct{ db *mongo.Database }

func (s mockSource) Database(context.Context) (*mongo.Database, error) { return s.db, nil }
func (s mockSource) Timeout() time.Duration                           { return time.Second }

func storedDoc(name string, at time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: portfolio.ProfileID},
		{Key: "name", Value: name},
		{Key: "createdAt", Value: at},
		{Key: "updatedAt", Value: at},
	}
}

func TestMongoRepo_Upsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("fixed key full replace", func(mt *mtest.T) {
		repo := NewMongoRepo(mockSource{db: mt.DB})
		at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: storedDoc("X", at)}))

		got, err := repo.Upsert(context.Background(), &portfolio.Profile{Name: "X", Title: "Dev"})
		require.NoError(mt, err)
		require.Equal(mt, "X", got.Name)
		require.NotNil(mt, got.Projects)
		require.NotNil(mt, got.Experience)

		ev := mt.GetStartedEvent()
		require.Equal(mt, "findAndModify", ev.CommandName)
		cmd := ev.Command
		require.Equal(mt, CollectionName, cmd.Lookup("findAndModify").StringValue())
		require.Equal(mt, portfolio.ProfileID, cmd.Lookup("query", "_id").StringValue())
		require.True(mt, cmd.Lookup("upsert").Boolean())
		require.True(mt, cmd.Lookup("new").Boolean())

		set := cmd.Lookup("update", "$set").Document()
		for _, k := range []string{"name", "title", "email", "about", "skills", "experience", "projects", "socialLinks", "contact", "updatedAt"} {
			_, err := set.LookupErr(k)
			require.NoError(mt, err, "every content field is written: %s", k)
		}
		require.Equal(mt, "Dev", set.Lookup("title").StringValue())
		require.Equal(mt, "", set.Lookup("email").StringValue())
		require.Equal(mt, bson.TypeArray, set.Lookup("projects").Type)
		require.Equal(mt, bson.TypeArray, set.Lookup("experience").Type)
		_, err = set.LookupErr("createdAt")
		require.Error(mt, err, "createdAt is only set on insert")
		_, err = cmd.Lookup("update", "$setOnInsert").Document().LookupErr("createdAt")
		require.NoError(mt, err)
	})

	mt.Run("retries after losing the insert race", func(mt *mtest.T) {
		repo := NewMongoRepo(mockSource{db: mt.DB})
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11000, Message: "E11000 duplicate key error", Name: "DuplicateKey"}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: storedDoc("X", time.Now().UTC())}),
		)

		got, err := repo.Upsert(context.Background(), &portfolio.Profile{Name: "X"})
		require.NoError(mt, err)
		require.Equal(mt, "X", got.Name)
		require.Len(mt, mt.GetAllStartedEvents(), 2)
	})

	mt.Run("other errors are not store outages", func(mt *mtest.T) {
		repo := NewMongoRepo(mockSource{db: mt.DB})
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 121, Message: "Document failed validation", Name: "DocumentValidationFailure"}))

		_, err := repo.Upsert(context.Background(), &portfolio.Profile{Name: "X"})
		require.Error(mt, err)
		require.NotErrorIs(mt, err, apperror.ErrStoreUnavailable)
	})
}

func TestMongoRepo_Get(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing profile is not found", func(mt *mtest.T) {
		repo := NewMongoRepo(mockSource{db: mt.DB})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db."+CollectionName, mtest.FirstBatch))

		_, err := repo.Get(context.Background())
		require.ErrorIs(mt, err, apperror.ErrNotFound)
	})

	mt.Run("reads the fixed key", func(mt *mtest.T) {
		repo := NewMongoRepo(mockSource{db: mt.DB})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db."+CollectionName, mtest.FirstBatch, storedDoc("X", time.Now().UTC())))

		got, err := repo.Get(context.Background())
		require.NoError(mt, err)
		require.Equal(mt, "X", got.Name)
		require.Equal(mt, portfolio.ProfileID, got.ID)
		require.NotNil(mt, got.Skills)

		cmd := mt.GetStartedEvent().Command
		require.Equal(mt, CollectionName, cmd.Lookup("find").StringValue())
		require.Equal(mt, portfolio.ProfileID, cmd.Lookup("filter", "_id").StringValue())
	})
}
