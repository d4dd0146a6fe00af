package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/folioworks/folio-api/pkg/apperror"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout).
		SetSocketTimeout(45 * time.Second)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Source hands repositories a database and the per-operation timeout.
type Source interface {
	Database(ctx context.Context) (*mongo.Database, error)
	Timeout() time.Duration
}

// Client is the shared handle to the document store. It connects on first
// use and keeps the connection for the life of the process; a failed attempt
// is not memoized so the next call tries again.
type Client struct {
	uri     string
	dbName  string
	timeout time.Duration
	connect func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error)

	mu     sync.Mutex
	client *mongo.Client
}

// NewClient builds a Client. No I/O happens until Connect or Database is called.
func NewClient(uri, dbName string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{uri: uri, dbName: dbName, timeout: timeout, connect: ConnectMongo}
}

// Configured reports whether a connection string was provided.
func (c *Client) Configured() bool {
	return c.uri != ""
}

// Timeout is the per-operation bound applied by repositories.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Connect establishes the connection if it is not already up.
func (c *Client) Connect(ctx context.Context) error {
	_, err := c.mongoClient(ctx)
	return err
}

func (c *Client) mongoClient(ctx context.Context) (*mongo.Client, error) {
	if !c.Configured() {
		return nil, apperror.NewStoreUnavailable("MONGODB_URI is not configured", nil)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}
	cl, err := c.connect(ctx, c.uri, c.timeout)
	if err != nil {
		return nil, apperror.NewStoreUnavailable("connect", err)
	}
	c.client = cl
	return cl, nil
}

// Database returns the configured database, connecting first when needed.
func (c *Client) Database(ctx context.Context) (*mongo.Database, error) {
	cl, err := c.mongoClient(ctx)
	if err != nil {
		return nil, err
	}
	return cl.Database(c.dbName), nil
}

// Ping reports whether the store is reachable right now.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	cl, err := c.mongoClient(ctx)
	if err != nil {
		return err
	}
	if err := cl.Ping(ctx, nil); err != nil {
		return Classify("ping", err)
	}
	return nil
}

// Close disconnects when a connection was made.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	return err
}

// Classify maps driver errors onto the application taxonomy: anything that
// means "could not reach the store" becomes ErrStoreUnavailable.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperror.ErrStoreUnavailable) {
		return err
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) {
		return apperror.NewStoreUnavailable(op, err)
	}
	var sse mongo.ServerError
	if errors.As(err, &sse) && sse.HasErrorLabel("RetryableWriteError") {
		return apperror.NewStoreUnavailable(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
