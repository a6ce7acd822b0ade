package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"

	"github.com/deppfellow/bizreviews/internal/config"
)

func TestNewLoggerJSONLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	logger := newLogger(cfg, nil, &buf)

	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "kept" {
		t.Errorf("message = %v, want kept", entry["message"])
	}
	if entry["service"] != "bizreviews" {
		t.Errorf("service = %v, want bizreviews", entry["service"])
	}
}

func TestLoggerServiceDisabledWithoutLicense(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()

	ls := NewLoggerService(cfg)
	if ls.GetApplication() != nil {
		t.Error("expected no New Relic application without a license key")
	}

	var nilService *LoggerService
	if nilService.GetApplication() != nil {
		t.Error("nil service should report no application")
	}
	nilService.Shutdown()
}

func TestMongoCommandMonitorSlowCommand(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.WarnLevel)

	monitor := NewMongoCommandMonitor(&logger, 50*time.Millisecond)

	fast := &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "find", Duration: time.Millisecond},
	}
	slow := &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "update", Duration: time.Second},
	}

	monitor.Succeeded(context.Background(), fast)
	monitor.Succeeded(context.Background(), slow)

	out := buf.String()
	if bytes.Count(buf.Bytes(), []byte("\n")) != 1 {
		t.Fatalf("expected only the slow command to be logged, got: %s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"command":"update"`)) {
		t.Errorf("slow command not logged: %s", out)
	}
}
