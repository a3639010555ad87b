// Package config holds the envelope core's three recognized
// configuration flags. Message-bus wiring, transport credentials, and
// retry/backoff settings are out of scope for this core and stay a
// caller concern.
package config

import "fmt"

// Options controls the pooled-buffer cleaning policy, payload redaction
// in error paths, and which writer implementation the orchestrator uses.
type Options struct {
	// CleanRentedBuffers zeroes pooled buffers on return to the pool.
	CleanRentedBuffers bool
	// LogMessageContent, when false, redacts payload contents from
	// error-path logs and drops the inner JSON-parse cause from wrapped
	// errors.
	LogMessageContent bool
	// ExperimentalFeaturesEnabled selects the UTF-8 writer path over the
	// legacy string-based codec path at construction time.
	ExperimentalFeaturesEnabled bool
}

// Option configures Options at construction time.
type Option func(*Options)

// Default returns the option set the orchestrator uses when the caller
// supplies none: buffers are cleaned on return, message content is
// redacted from error-path logs, and the legacy string codec path is
// used.
func Default() Options {
	return Options{CleanRentedBuffers: true}
}

// New applies opts on top of Default.
func New(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithCleanRentedBuffers overrides the pooled-buffer zeroing policy.
func WithCleanRentedBuffers(clean bool) Option {
	return func(o *Options) { o.CleanRentedBuffers = clean }
}

// WithLogMessageContent overrides whether payload content may appear in
// error-path logs and preserved causes.
func WithLogMessageContent(log bool) Option {
	return func(o *Options) { o.LogMessageContent = log }
}

// WithExperimentalFeatures toggles the UTF-8 writer path.
func WithExperimentalFeatures(enabled bool) Option {
	return func(o *Options) { o.ExperimentalFeaturesEnabled = enabled }
}

func (o Options) String() string {
	return fmt.Sprintf(
		"Options{CleanRentedBuffers:%t LogMessageContent:%t ExperimentalFeaturesEnabled:%t}",
		o.CleanRentedBuffers, o.LogMessageContent, o.ExperimentalFeaturesEnabled,
	)
}
