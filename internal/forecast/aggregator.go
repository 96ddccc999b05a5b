package forecast

import (
	"github.com/i474232898/smhi-forecast-digest/internal/symbols"
)

// Policy decides what happens to entries that cannot be flattened.
type Policy int

const (
	// FailFast aborts the whole call on the first malformed entry.
	FailFast Policy = iota
	// SkipMalformed drops malformed entries and keeps folding the rest.
	SkipMalformed
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case SkipMalformed:
		return "skip-malformed"
	default:
		return "unknown"
	}
}

// Aggregator derives the current, slot and daily views from a feed.
// It holds configuration only, so one value may be shared between goroutines.
type Aggregator struct {
	policy   Policy
	describe func(code int) string
	onSkip   func(err error)
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithPolicy sets the malformed-entry policy.
func WithPolicy(p Policy) Option {
	return func(a *Aggregator) {
		a.policy = p
	}
}

// WithDescriber sets the condition code lookup used for digest descriptions.
func WithDescriber(fn func(code int) string) Option {
	return func(a *Aggregator) {
		if fn != nil {
			a.describe = fn
		}
	}
}

// WithSkipHook registers a callback invoked for every entry dropped under SkipMalformed.
func WithSkipHook(fn func(err error)) Option {
	return func(a *Aggregator) {
		a.onSkip = fn
	}
}

// NewAggregator returns a fail-fast Aggregator using the Wsymb2 description table.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		policy:   FailFast,
		describe: symbols.Condition,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Policy returns the configured malformed-entry policy.
func (a *Aggregator) Policy() Policy {
	return a.policy
}

// each flattens entries in feed order and hands every sample to fn.
// Under FailFast the first malformed entry is returned as the error.
func (a *Aggregator) each(entries []Entry, fn func(Sample)) error {
	for i, e := range entries {
		s, err := flattenAt(i, e)
		if err != nil {
			if a.policy == SkipMalformed {
				if a.onSkip != nil {
					a.onSkip(err)
				}
				continue
			}
			return err
		}
		fn(s)
	}
	return nil
}
