package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrint(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.2.3"
	var buf bytes.Buffer
	Print(&buf, "signcheck")
	if got, want := buf.String(), "signcheck v1.2.3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	Version = "devel"
	buf.Reset()
	Print(&buf, "signcheck")
	if !strings.HasPrefix(buf.String(), "signcheck (") {
		t.Errorf("unexpected development version %q", buf.String())
	}
}

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	Verbose(&buf, "signcheck")
	if !strings.Contains(buf.String(), "Compiled with Go version:") {
		t.Errorf("output lacks the Go version:\n%s", buf.String())
	}
}
