package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sideline/internal/config"
	"sideline/internal/logging"
)

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	logger.Info("startup message")
}

func TestConsoleHandlerWritesSubjectAndFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")

	logger, err := logging.New(logging.Options{
		Format:           "console",
		Level:            "info",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	scoped := logging.NewComponentLogger(logger, "fusion")
	scoped = scoped.With(
		logging.String(logging.FieldRunID, "0123456789abcdef"),
		logging.String(logging.FieldStage, "fusing"),
	)
	scoped.Info("fused signals", logging.Int("events", 3))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "[fusion]") {
		t.Fatalf("expected component tag in output, got %q", text)
	}
	if !strings.Contains(text, "Run 01234567 (fusing)") {
		t.Fatalf("expected run subject in output, got %q", text)
	}
	if !strings.Contains(text, "events: 3") {
		t.Fatalf("expected attr line in output, got %q", text)
	}
	if strings.Contains(text, "run_id") {
		t.Fatalf("run_id should be folded into the subject, got %q", text)
	}
}

func TestJSONHandlerEmitsLowercaseLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")

	logger, err := logging.New(logging.Options{
		Format:           "json",
		Level:            "warn",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("filtered out")
	logger.Warn("retained", logging.String("reason", "test"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if strings.Contains(text, "filtered out") {
		t.Fatalf("info record should be filtered at warn level, got %q", text)
	}
	if !strings.Contains(text, `"level":"warn"`) {
		t.Fatalf("expected lowercase level key, got %q", text)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestContextFields(t *testing.T) {
	ctx := logging.WithRunID(context.Background(), "run-1")
	ctx = logging.WithStage(ctx, "planning")

	fields := logging.ContextFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("expected 2 context fields, got %d", len(fields))
	}
	if fields[0].Key != logging.FieldRunID || fields[0].Value.String() != "run-1" {
		t.Fatalf("unexpected run id field: %v", fields[0])
	}
	if fields[1].Key != logging.FieldStage || fields[1].Value.String() != "planning" {
		t.Fatalf("unexpected stage field: %v", fields[1])
	}

	if got := logging.ContextFields(context.Background()); len(got) != 0 {
		t.Fatalf("expected no fields from empty context, got %v", got)
	}
}
