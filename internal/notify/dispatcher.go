package notify

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/folioworks/folio-api/internal/config"
	"github.com/folioworks/folio-api/internal/contact"
	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/folioworks/folio-api/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Channel is one outbound integration a lead is relayed to.
type Channel interface {
	Name() string
	Enabled() bool
	Send(ctx context.Context, l contact.Lead) error
}

type Options struct {
	// Timeout bounds one detached delivery across all channels.
	Timeout time.Duration
	// Rate is the outbound send rate per second; zero disables pacing.
	Rate  float64
	Burst int
}

// Dispatcher fans a lead out to every enabled channel, once per channel.
// Dispatch is fire-and-forget; failures only reach the dispatcher's logger.
type Dispatcher struct {
	channels []Channel
	limiter  *rate.Limiter
	timeout  time.Duration
	log      *zap.Logger

	// pending counts detached deliveries; idle is closed whenever it is zero.
	mu      sync.Mutex
	pending int
	idle    chan struct{}
}

func NewDispatcher(opts Options, log *zap.Logger, channels ...Channel) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	d := &Dispatcher{channels: channels, timeout: opts.Timeout, log: log, idle: make(chan struct{})}
	close(d.idle)
	if opts.Rate > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		d.limiter = rate.NewLimiter(rate.Limit(opts.Rate), burst)
	}
	return d
}

// Dispatch delivers l in the background and returns immediately.
func (d *Dispatcher) Dispatch(l contact.Lead) {
	d.begin()
	go func() {
		defer d.end()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("lead notification panicked", zap.Any("panic", r), zap.String("email", l.Email))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.Deliver(ctx, l); err != nil {
			d.log.Warn("lead notification failed", zap.Error(err), zap.String("email", l.Email))
		}
	}()
}

func (d *Dispatcher) begin() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == 0 {
		d.idle = make(chan struct{})
	}
	d.pending++
}

func (d *Dispatcher) end() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending--
	if d.pending == 0 {
		close(d.idle)
	}
}

// Deliver sends l through every enabled channel and joins the failures.
// Disabled channels are skipped without error.
func (d *Dispatcher) Deliver(ctx context.Context, l contact.Lead) error {
	var errs []error
	for _, ch := range d.channels {
		name := ch.Name()
		if !ch.Enabled() {
			metrics.NotificationsTotal.WithLabelValues(name, "skipped").Inc()
			d.log.Debug("notification channel not configured, skipping", zap.String("channel", name))
			continue
		}
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				metrics.NotificationsTotal.WithLabelValues(name, "dropped").Inc()
				errs = append(errs, apperror.NewNotifier(name, err))
				continue
			}
		}
		if err := ch.Send(ctx, l); err != nil {
			metrics.NotificationsTotal.WithLabelValues(name, "failed").Inc()
			errs = append(errs, err)
			continue
		}
		metrics.NotificationsTotal.WithLabelValues(name, "sent").Inc()
		d.log.Info("lead notification sent", zap.String("channel", name))
	}
	return errors.Join(errs...)
}

// EnabledChannels lists the names of channels that will be attempted.
func (d *Dispatcher) EnabledChannels() []string {
	var out []string
	for _, ch := range d.channels {
		if ch.Enabled() {
			out = append(out, ch.Name())
		}
	}
	return out
}

// Wait blocks until no delivery is in flight or ctx is done. It is safe to
// call concurrently with Dispatch and with other Waits.
func (d *Dispatcher) Wait(ctx context.Context) error {
	d.mu.Lock()
	idle := d.idle
	d.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases channels that hold connections.
func (d *Dispatcher) Close() error {
	var errs []error
	for _, ch := range d.channels {
		if c, ok := ch.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

// New builds the dispatcher with the WhatsApp, email webhook and Kafka
// channels described by cfg.
func New(cfg *config.Config, log *zap.Logger) *Dispatcher {
	return NewDispatcher(
		Options{Timeout: cfg.Notify.Timeout, Rate: cfg.Notify.Rate, Burst: cfg.Notify.Burst},
		log,
		NewWhatsApp(cfg.Twilio),
		NewEmailWebhook(cfg.Email),
		NewLeadEvents(cfg.Kafka),
	)
}
