package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-lcd1602/device"
	"github.com/moffa90/go-lcd1602/protocol"
)

// DefaultSettleDelay is the pause of a wait step without an explicit delay.
const DefaultSettleDelay = time.Second

// Opener opens the device node at path.
type Opener func(path string) (Device, error)

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Config holds the session configuration.
type Config struct {
	// ProgressCallback is called before each step (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// SettleDelay is the pause of wait steps that carry no delay of their own
	SettleDelay time.Duration

	// Sleeper performs wait steps
	Sleeper Sleeper

	// DecodeMode controls how read-back text is decoded
	DecodeMode protocol.DecodeMode

	// Opener opens the device in Run
	Opener Opener

	// SessionID identifies the session in reports and logs.
	// A random one is generated when left as uuid.Nil.
	SessionID uuid.UUID
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		SettleDelay: DefaultSettleDelay,
		Sleeper:     sleepContext,
		DecodeMode:  protocol.DecodeStrict,
		Opener:      openDevice,
	}
}

func buildConfig(opts []Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.SessionID == uuid.Nil {
		cfg.SessionID = uuid.New()
	}
	return cfg
}

// openDevice opens a real device node. It returns a nil interface on error.
func openDevice(path string) (Device, error) {
	f, err := device.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Option is a functional option for configuring the Session.
type Option func(*Config)

// WithProgressCallback sets a callback function to track sequence progress.
//
// Example:
//
//	sess := session.New(dev,
//	    session.WithProgressCallback(func(p session.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the session operations.
//
// Example:
//
//	sess := session.New(dev, session.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithSettleDelay sets the pause used by wait steps without their own delay.
// Default is one second. Negative values are ignored.
//
// Example:
//
//	sess := session.New(dev, session.WithSettleDelay(500*time.Millisecond))
func WithSettleDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.SettleDelay = d
		}
	}
}

// WithSleeper replaces the function that performs wait steps.
// Useful in tests to avoid real delays.
func WithSleeper(sleeper Sleeper) Option {
	return func(c *Config) {
		if sleeper != nil {
			c.Sleeper = sleeper
		}
	}
}

// WithDecodeMode sets how read-back text is decoded.
// Default is protocol.DecodeStrict.
//
// Example:
//
//	sess := session.New(dev, session.WithDecodeMode(protocol.DecodePermissive))
func WithDecodeMode(mode protocol.DecodeMode) Option {
	return func(c *Config) {
		c.DecodeMode = mode
	}
}

// WithOpener replaces the function Run uses to open the device.
// Default is device.Open.
func WithOpener(opener Opener) Option {
	return func(c *Config) {
		if opener != nil {
			c.Opener = opener
		}
	}
}

// WithSessionID sets the session identifier instead of a random one.
func WithSessionID(id uuid.UUID) Option {
	return func(c *Config) {
		c.SessionID = id
	}
}
