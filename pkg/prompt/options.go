package prompt

import "log/slog"

// DefaultMaxAttempts bounds how often a failing field is asked again.
const DefaultMaxAttempts = 3

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver swaps the terminal driver, mostly for tests.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithMaxAttempts sets how many prompt rounds Fill runs before giving up and
// returning the remaining errors. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(f *Filler) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithLogger sets the logger used for attempt diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filler) {
		if logger != nil {
			f.logger = logger
		}
	}
}
