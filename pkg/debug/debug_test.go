package debug

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]bool
	}{
		{"empty", "", map[string]bool{}},
		{"single", "providers", map[string]bool{"providers": true}},
		{"multiple", "providers,engine,items", map[string]bool{"providers": true, "engine": true, "items": true}},
		{"all", "all", map[string]bool{"all": true}},
		{"with spaces", " providers , engine ", map[string]bool{"providers": true, "engine": true}},
		{"uppercase normalized", "PROVIDERS,Engine", map[string]bool{"providers": true, "engine": true}},
		{"empty segments", "providers,,engine", map[string]bool{"providers": true, "engine": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCategories(tt.input)
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("got[%q] = %v, want %v", k, got[k], v)
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("len(got) = %d, want %d", len(got), len(tt.want))
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	// Save and restore.
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("providers,engine")

	if !Enabled("providers") {
		t.Error("providers should be enabled")
	}
	if !Enabled("engine") {
		t.Error("engine should be enabled")
	}
	if Enabled("items") {
		t.Error("items should not be enabled")
	}
	if Enabled("all") {
		t.Error("all should not be enabled (not in categories)")
	}
}

func TestEnabled_All(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("all")

	if !Enabled("providers") {
		t.Error("providers should be enabled via 'all'")
	}
	if !Enabled("engine") {
		t.Error("engine should be enabled via 'all'")
	}
	if !Enabled("anything") {
		t.Error("anything should be enabled via 'all'")
	}
}

func TestEnabled_Empty(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("")

	if Enabled("providers") {
		t.Error("nothing should be enabled when no categories set")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"TRACE", LevelTrace},
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate short = %q, want %q", got, "short")
	}
	if got := Truncate("this is a long string", 10); got != "this is a ..." {
		t.Errorf("Truncate long = %q, want %q", got, "this is a ...")
	}
}

func TestLog_DisabledCategory(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("")

	// Should not panic or produce output.
	Log("providers", "test message", "key", "value")
	Trace("providers", "trace message", "key", "value")
}

func restoreDefault(t *testing.T) {
	t.Helper()
	origLogger := slog.Default()
	origCats := categories
	t.Cleanup(func() {
		slog.SetDefault(origLogger)
		categories = origCats
	})
}

func TestInitWriter_ConfigValues(t *testing.T) {
	restoreDefault(t)
	t.Setenv(EnvCategories, "")
	t.Setenv(EnvLevel, "")

	var buf bytes.Buffer
	InitWriter(&buf, "engine", "DEBUG")

	Log("engine", "engine message", "op", "analyze_text")
	Log("providers", "provider message")

	out := buf.String()
	if !strings.Contains(out, "engine message") || !strings.Contains(out, "debug=engine") {
		t.Errorf("expected engine debug output, got:\n%s", out)
	}
	if strings.Contains(out, "provider message") {
		t.Errorf("providers category should be disabled, got:\n%s", out)
	}
}

func TestInitWriter_EnvOverridesConfig(t *testing.T) {
	restoreDefault(t)
	t.Setenv(EnvCategories, "providers")
	t.Setenv(EnvLevel, "ERROR")

	var buf bytes.Buffer
	logger := InitWriter(&buf, "engine", "DEBUG")

	if Enabled("engine") {
		t.Error("engine should not be enabled when env overrides config")
	}
	if !Enabled("providers") {
		t.Error("providers should be enabled from env")
	}

	logger.Info("info message")
	if strings.Contains(buf.String(), "info message") {
		t.Errorf("INFO should be suppressed at ERROR level, got:\n%s", buf.String())
	}
}

func TestTrace_OnlyAtTraceLevel(t *testing.T) {
	restoreDefault(t)
	t.Setenv(EnvCategories, "")
	t.Setenv(EnvLevel, "")

	var buf bytes.Buffer
	InitWriter(&buf, "providers", "DEBUG")
	Trace("providers", "body dump")
	if strings.Contains(buf.String(), "body dump") {
		t.Errorf("trace output at DEBUG level:\n%s", buf.String())
	}

	InitWriter(&buf, "providers", "TRACE")
	if !TraceIsEnabled("providers") {
		t.Fatal("TraceIsEnabled(providers) = false at TRACE level")
	}
	Trace("providers", "body dump")
	if !strings.Contains(buf.String(), "body dump") {
		t.Errorf("missing trace output at TRACE level:\n%s", buf.String())
	}
}

func TestCategoriesSorted(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("transport,engine,config")

	if diff := cmp.Diff([]string{"config", "engine", "transport"}, Categories()); diff != "" {
		t.Errorf("Categories() mismatch (-want +got):\n%s", diff)
	}
}
