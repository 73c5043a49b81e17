package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestSilentUntilInit(t *testing.T) {
	Reset()
	// Must not panic without a configured logger.
	Debug("ignored")
	LogLowering("a.php", 3)
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: LevelDebug, Format: "json", Output: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Reset()

	LogPrinting("a.php", 120, 7)

	out := buf.String()
	for _, want := range []string{`"msg":"Printing complete"`, `"file":"a.php"`, `"lines":7`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: LevelWarn, Format: "text", Output: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Reset()

	Info("hidden")
	Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn message should be logged")
	}
}
