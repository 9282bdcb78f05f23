package logging

import (
	"bytes"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

// TestLoggingHelpers_WriteToBuffer swaps L for a buffer-backed logger and
// checks every helper reaches it.
func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	defer func() { L = prev }()
	SetOutput(&buf)
	L.SetLevel(clog.DebugLevel)

	Debugf("hello %s", "dbg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")
	With("component", "test").Info("structured")

	out := buf.String()
	for _, want := range []string{"hello dbg", "info 1", "warn", "err E", "component=test"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output; got: %s", want, out)
		}
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	defer func() { L = prev }()
	SetOutput(&buf)

	if err := SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel(warn): %v", err)
	}
	Infof("hidden")
	Warnf("visible")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info message should be filtered at warn level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("warn message missing: %s", buf.String())
	}
	if err := SetLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
