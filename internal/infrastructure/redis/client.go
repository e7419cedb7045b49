package redis

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	config "github.com/avatarctic/status-service/configs"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Connection owns the go-redis client and the liveness state derived from it.
// Reconnection is left to the go-redis pool; the probe only observes.
type Connection struct {
	client       *redis.Client
	tracker      *ConnTracker
	logger       *logrus.Logger
	interval     time.Duration
	probeTimeout time.Duration

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewRedisClient creates a Redis connection, performs the initial handshake and starts
// the liveness probe. An unreachable server is not an error: the connection starts
// Disconnected and the probe keeps watching.
func NewRedisClient(cfg *config.RedisConfig, logger *logrus.Logger) *Connection {
	tracker := NewConnTracker(logger)

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  cfg.PoolTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			tracker.MarkConnected()
			return nil
		},
	})
	client.AddHook(livenessHook{tracker: tracker})

	probeTimeout := cfg.DialTimeout
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}

	c := &Connection{
		client:       client,
		tracker:      tracker,
		logger:       logger,
		interval:     cfg.ProbeInterval,
		probeTimeout: probeTimeout,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}

	c.probe()
	go c.run()

	return c
}

// Client exposes the command surface of the underlying client.
func (c *Connection) Client() redis.Cmdable {
	return c.client
}

// IsAlive reports the last state signalled by the transport. It never blocks.
func (c *Connection) IsAlive() bool {
	return c.tracker.IsAlive()
}

// State returns the detailed connection state.
func (c *Connection) State() ConnState {
	return c.tracker.State()
}

// Close stops the probe and releases the client. Only the first call does any work.
func (c *Connection) Close() error {
	c.closeOnce.Do(func() {
		close(c.stop)
		<-c.done
		c.closeErr = c.client.Close()
		c.tracker.MarkDisconnected(nil)
	})
	return c.closeErr
}

func (c *Connection) run() {
	defer close(c.done)

	if c.interval <= 0 {
		<-c.stop
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.probe()
		}
	}
}

func (c *Connection) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), c.probeTimeout)
	defer cancel()

	if err := c.client.Ping(ctx).Err(); err != nil {
		c.tracker.MarkDisconnected(err)
		return
	}
	c.tracker.MarkConnected()
}

// livenessHook turns command outcomes into transport signals.
type livenessHook struct {
	tracker *ConnTracker
}

func (h livenessHook) BeforeProcess(ctx context.Context, cmd redis.Cmder) (context.Context, error) {
	return ctx, nil
}

func (h livenessHook) AfterProcess(ctx context.Context, cmd redis.Cmder) error {
	h.observe(ctx, cmd.Err())
	return nil
}

func (h livenessHook) BeforeProcessPipeline(ctx context.Context, cmds []redis.Cmder) (context.Context, error) {
	return ctx, nil
}

func (h livenessHook) AfterProcessPipeline(ctx context.Context, cmds []redis.Cmder) error {
	for _, cmd := range cmds {
		if h.observe(ctx, cmd.Err()) {
			return nil
		}
	}
	return nil
}

// observe marks the connection down on a transport error. A command whose own
// context has ended may fail with an i/o timeout on a healthy connection, so it
// is not a signal.
func (h livenessHook) observe(ctx context.Context, err error) bool {
	if ctx.Err() != nil || !isTransportError(err) {
		return false
	}
	h.tracker.MarkDisconnected(err)
	return true
}

// isTransportError separates broken connections from replies such as redis.Nil or
// server-side errors, which prove the connection is fine.
func isTransportError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	// The caller's deadline or cancellation says nothing about the server.
	// context.DeadlineExceeded also satisfies net.Error.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, redis.ErrClosed) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
