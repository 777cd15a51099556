package gclplugin

import (
	"github.com/signcheck/signcheck/analysis/facts/signs"
	"github.com/signcheck/signcheck/analysis/sign"
)

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Domain selects the sign lattice, "simple" or "precise".
	Domain *sign.Domain `json:"domain,omitzero"`
	// ReportPossible enables reports for values that may be negative.
	ReportPossible *bool `json:"report-possible,omitzero"`
	// Concurrency limits the number of functions analyzed in parallel.
	Concurrency *int `json:"concurrency,omitzero"`
}

// Options converts [Settings] into a list of [signs.Option], skipping unset settings.
func (s Settings) Options() []signs.Option {
	var opts []signs.Option

	opts = appendOption(opts, s.Domain, signs.WithDomain)
	opts = appendOption(opts, s.ReportPossible, signs.WithReportPossible)
	opts = appendOption(opts, s.Concurrency, signs.WithConcurrency)

	return opts
}

func appendOption[T any](opts []signs.Option, value *T, constructor func(T) signs.Option) []signs.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
