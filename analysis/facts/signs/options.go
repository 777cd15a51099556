package signs

import (
	"flag"
	"log/slog"
	"strconv"

	"github.com/signcheck/signcheck/analysis/sign"
)

// options override the settings of signcheck.conf. Nil fields defer to the configuration file.
type options struct {
	domain   *sign.Domain
	possible *bool
	workers  int
}

// Option configures an analyzer created by [New].
type Option interface {
	apply(o *options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that also implements [Option].
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithDomain selects the abstract domain, overriding the configuration file.
func WithDomain(dom sign.Domain) Option { return domainOption{dom: dom} }

type domainOption struct{ dom sign.Domain }

func (o domainOption) apply(r *options) { r.domain = &o.dom }

func (o domainOption) LogAttr() slog.Attr { return slog.String("domain", o.dom.String()) }

// WithReportPossible controls whether checks report values that may, but need not, be invalid, overriding the
// configuration file.
func WithReportPossible(possible bool) Option { return possibleOption{possible: possible} }

type possibleOption struct{ possible bool }

func (o possibleOption) apply(r *options) { r.possible = &o.possible }

func (o possibleOption) LogAttr() slog.Attr { return slog.Bool("report-possible", o.possible) }

// WithConcurrency limits the number of functions analyzed in parallel. Values below 1 use GOMAXPROCS.
func WithConcurrency(n int) Option { return concurrencyOption{n: n} }

type concurrencyOption struct{ n int }

func (o concurrencyOption) apply(r *options) { r.workers = o.n }

func (o concurrencyOption) LogAttr() slog.Attr { return slog.Int("concurrency", o.n) }

func registerFlags(o *options, flags *flag.FlagSet) {
	if flags == nil {
		flags = flag.CommandLine
	}

	flags.Var(domainValue{o}, "domain", "abstract domain to use, simple or precise (default from signcheck.conf)")
	flags.Var(possibleValue{o}, "possible", "report values that may be invalid (default from signcheck.conf)")
	flags.IntVar(&o.workers, "concurrency", o.workers, "number of functions to analyze in parallel")
}

type domainValue struct{ o *options }

func (f domainValue) Set(s string) error {
	dom, err := sign.ParseDomain(s)
	if err != nil {
		return err
	}
	f.o.domain = &dom
	return nil
}

func (f domainValue) String() string {
	if f.o == nil || f.o.domain == nil {
		return ""
	}
	return f.o.domain.String()
}

type possibleValue struct{ o *options }

func (f possibleValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	f.o.possible = &b
	return nil
}

func (f possibleValue) String() string {
	if f.o == nil || f.o.possible == nil {
		return ""
	}
	return strconv.FormatBool(*f.o.possible)
}

func (possibleValue) IsBoolFlag() bool { return true }
