package serialport

import (
	"errors"
	"fmt"
	"time"

	"github.com/prnlink/go-prnlink/logger"
)

// Default serial parameters for the PRN printer family.
const (
	DefaultBaudRate     = 115200
	DefaultDataBits     = 8
	DefaultReadTimeout  = 1 * time.Second
	DefaultWriteTimeout = 1 * time.Second

	// purgeReadTimeout is the short per-read timeout used by the startup
	// purge loop. It keeps Open fast when no stale bytes are buffered.
	purgeReadTimeout = 10 * time.Millisecond
)

// FlowControl selects the flow control mode applied to the serial line.
type FlowControl int

const (
	// FlowControlXONXOFF enables XON/XOFF software flow control.
	// This is the default; the printer firmware relies on it to pace the
	// G-code stream during transfers.
	FlowControlXONXOFF FlowControl = iota

	// FlowControlNone disables flow control entirely.
	FlowControlNone
)

// Config holds the serial transport configuration.
//
// The zero value is not usable; configs are built by Open from the defaults
// plus any Options.
type Config struct {
	baudRate     int
	dataBits     int
	flowControl  FlowControl
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       logger.Logger
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		baudRate:     DefaultBaudRate,
		dataBits:     DefaultDataBits,
		flowControl:  FlowControlXONXOFF,
		readTimeout:  DefaultReadTimeout,
		writeTimeout: DefaultWriteTimeout,
		logger:       logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// BaudRate returns the configured baud rate.
func (cfg *Config) BaudRate() int { return cfg.baudRate }

// DataBits returns the configured number of data bits.
func (cfg *Config) DataBits() int { return cfg.dataBits }

// FlowControl returns the configured flow control mode.
func (cfg *Config) FlowControl() FlowControl { return cfg.flowControl }

// ReadTimeout returns the per-read timeout used outside the purge loop.
func (cfg *Config) ReadTimeout() time.Duration { return cfg.readTimeout }

// WriteTimeout returns the whole-buffer write timeout.
func (cfg *Config) WriteTimeout() time.Duration { return cfg.writeTimeout }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// Option is a functional option for configuring the serial transport.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithBaudRate sets the baud rate. The rate must be one the platform supports;
// unsupported rates are rejected at Open.
func WithBaudRate(rate int) Option {
	return optFunc(func(cfg *Config) error {
		if rate <= 0 {
			return fmt.Errorf("serialport: invalid baud rate %d", rate)
		}
		cfg.baudRate = rate

		return nil
	})
}

// WithDataBits sets the number of data bits per character (5-8).
func WithDataBits(bits int) Option {
	return optFunc(func(cfg *Config) error {
		if bits < 5 || bits > 8 {
			return fmt.Errorf("serialport: invalid data bits %d, must be in [5, 8]", bits)
		}
		cfg.dataBits = bits

		return nil
	})
}

// WithFlowControl sets the flow control mode.
func WithFlowControl(fc FlowControl) Option {
	return optFunc(func(cfg *Config) error {
		if fc != FlowControlXONXOFF && fc != FlowControlNone {
			return fmt.Errorf("serialport: invalid flow control mode %d", fc)
		}
		cfg.flowControl = fc

		return nil
	})
}

// WithReadTimeout sets the default per-read timeout.
func WithReadTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("serialport: read timeout must be positive")
		}
		cfg.readTimeout = d

		return nil
	})
}

// WithWriteTimeout sets the whole-buffer write timeout.
func WithWriteTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("serialport: write timeout must be positive")
		}
		cfg.writeTimeout = d

		return nil
	})
}

// WithLogger sets the logger for the transport.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("serialport: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
