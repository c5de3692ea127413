// Package timeplugin provides the local time-utility plugin.
package timeplugin

import (
	"context"
	"time"

	"github.com/Woland2k/semantic-kernel/kernel"
)

// Namespace is the conventional registration namespace, giving wire
// names like "TimePlugin-Date".
const Namespace = "TimePlugin"

// Default layouts per function.
const (
	dateLayout = "January 2, 2006"
	timeLayout = "3:04:05 PM"
	nowLayout  = "Monday, January 2, 2006 3:04 PM"
	dayLayout  = "Monday"
)

// FormatInput optionally overrides a function's default layout.
type FormatInput struct {
	Format string `json:"format,omitempty" jsonschema:"description=Go time layout overriding the default"`
}

// Option configures the plugin.
type Option func(*config)

type config struct {
	clock func() time.Time
}

// WithClock overrides the time source. Used in tests.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// Functions returns the plugin's invocable functions.
//
// Example:
//
//	registry.Register(timeplugin.Namespace, timeplugin.Functions()...)
func Functions(opts ...Option) []kernel.Function {
	cfg := &config{clock: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}

	format := func(name, description, layout string) kernel.Function {
		return kernel.NewFunction(name, description,
			func(ctx context.Context, in FormatInput) (string, error) {
				l := layout
				if in.Format != "" {
					l = in.Format
				}
				return cfg.clock().Format(l), nil
			},
		)
	}

	return []kernel.Function{
		format("Date", "Get the current date", dateLayout),
		format("Today", "Get the current date", dateLayout),
		format("Time", "Get the current time of day", timeLayout),
		format("Now", "Get the current date and time", nowLayout),
		format("DayOfWeek", "Get the current day of the week", dayLayout),
	}
}
