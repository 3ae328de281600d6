package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	SetLevel(Notice)
	defer SetLevel(Notice)

	logger := New("test")
	logger.Debug("hidden debug")
	logger.Infof("hidden %s", "info")
	logger.Noticef("visible %d", 1)
	logger.Error("visible error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Messages below Notice should be filtered, got %q", out)
	}
	if !strings.Contains(out, "visible 1") || !strings.Contains(out, "visible error") {
		t.Errorf("Expected notice and error messages, got %q", out)
	}
	if !strings.Contains(out, "[test]") {
		t.Errorf("Expected module name in output, got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	if !IsEnabledFor(Debug) {
		t.Error("Debug should be enabled after SetLevel(Debug)")
	}
	logger.Debugf("now %s", "shown")
	if !strings.Contains(buf.String(), "now shown") {
		t.Errorf("Expected debug message, got %q", buf.String())
	}
}

func TestSetSinkKeepsLevel(t *testing.T) {
	SetLevel(Warning)
	defer SetLevel(Notice)

	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	if IsEnabledFor(Notice) {
		t.Error("Swapping sinks should not reset verbosity")
	}
	New("test").Warning("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("Expected warning on new sink, got %q", buf.String())
	}
}
