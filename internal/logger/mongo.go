package logger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
)

// NewMongoCommandMonitor logs driver commands.
//
// Every finished command is logged at debug level; commands slower than
// slowThreshold are logged at warn level and failures at error level.
// A zero threshold disables the slow command warning.
func NewMongoCommandMonitor(logger *zerolog.Logger, slowThreshold time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			logCommand(logger, e.CommandFinishedEvent, slowThreshold).Msg("store command")
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			logger.Error().
				Str("command", e.CommandName).
				Str("database", e.DatabaseName).
				Int64("request_id", e.RequestID).
				Dur("duration", e.Duration).
				Str("failure", e.Failure).
				Msg("store command failed")
		},
	}
}

func logCommand(logger *zerolog.Logger, e event.CommandFinishedEvent, slowThreshold time.Duration) *zerolog.Event {
	ev := logger.Debug()
	if slowThreshold > 0 && e.Duration >= slowThreshold {
		ev = logger.Warn().Bool("slow", true)
	}

	return ev.
		Str("command", e.CommandName).
		Str("database", e.DatabaseName).
		Int64("request_id", e.RequestID).
		Dur("duration", e.Duration)
}
