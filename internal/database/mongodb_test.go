package database

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestClient_NoURIIsUnavailable(t *testing.T) {
	c := NewClient("", "portfolio", time.Second)
	require.False(t, c.Configured())

	_, err := c.Database(context.Background())
	require.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	require.ErrorIs(t, c.Ping(context.Background()), apperror.ErrStoreUnavailable)
	require.NoError(t, c.Close(context.Background()))
}

func TestClient_ConnectIsMemoized(t *testing.T) {
	calls := 0
	c := NewClient("mongodb://example:27017", "portfolio", time.Second)
	c.connect = func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
		calls++
		// NewClient performs no I/O, which is all this test needs
		return mongo.NewClient(options.Client().ApplyURI(uri))
	}

	for i := 0; i < 3; i++ {
		db, err := c.Database(context.Background())
		require.NoError(t, err)
		require.Equal(t, "portfolio", db.Name())
	}
	require.Equal(t, 1, calls)
}

func TestClient_FailedConnectIsRetried(t *testing.T) {
	calls := 0
	c := NewClient("mongodb://example:27017", "portfolio", time.Second)
	c.connect = func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
		calls++
		return nil, errors.New("server selection error")
	}

	require.ErrorIs(t, c.Connect(context.Background()), apperror.ErrStoreUnavailable)
	require.ErrorIs(t, c.Connect(context.Background()), apperror.ErrStoreUnavailable)
	require.Equal(t, 2, calls)
}

var _ Source = (*Client)(nil)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestClassify(t *testing.T) {
	require.NoError(t, Classify("op", nil))
	require.ErrorIs(t, Classify("op", context.DeadlineExceeded), apperror.ErrStoreUnavailable)
	require.ErrorIs(t, Classify("op", timeoutErr{}), apperror.ErrStoreUnavailable)
	require.ErrorIs(t, Classify("op", mongo.ErrClientDisconnected), apperror.ErrStoreUnavailable)

	err := Classify("decode", errors.New("cannot decode"))
	require.NotErrorIs(t, err, apperror.ErrStoreUnavailable)
	require.Contains(t, err.Error(), "decode")
}
