package signs

import (
	"flag"
	"io"
	"testing"

	"github.com/signcheck/signcheck/analysis/sign"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	var o options
	assert.Nil(t, o.domain)
	assert.Nil(t, o.possible)

	Options{WithDomain(sign.Simple), nil, WithReportPossible(false), Options{WithConcurrency(2)}}.apply(&o)
	require.NotNil(t, o.domain)
	assert.Equal(t, sign.Simple, *o.domain)
	require.NotNil(t, o.possible)
	assert.False(t, *o.possible)
	assert.Equal(t, 2, o.workers)
}

func TestFlagsOverrideOptions(t *testing.T) {
	var o options
	Options{WithDomain(sign.Simple), WithReportPossible(false)}.apply(&o)

	fs := flag.NewFlagSet("signs", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	registerFlags(&o, fs)
	require.NoError(t, fs.Parse([]string{"-domain=precise", "-possible", "-concurrency=4"}))
	assert.Equal(t, sign.Precise, *o.domain)
	assert.True(t, *o.possible)
	assert.Equal(t, 4, o.workers)

	assert.Error(t, fs.Parse([]string{"-domain=interval"}))
	assert.Error(t, fs.Parse([]string{"-possible=maybe"}))
}

func TestLogValue(t *testing.T) {
	opts := Options{WithDomain(sign.Precise), nil, Options{WithReportPossible(true)}}
	attrs := opts.LogValue().Group()
	require.Len(t, attrs, 3)
	assert.Equal(t, "domain", attrs[0].Key)
	assert.Equal(t, "precise", attrs[0].Value.String())
	assert.Equal(t, "nil", attrs[1].Key)
	assert.Equal(t, "report-possible", attrs[2].Key)
	assert.True(t, attrs[2].Value.Bool())
}
