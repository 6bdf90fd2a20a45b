package helper

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrettyHandler(t *testing.T) {
	t.Run("Create PrettyHandler with default options", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		require.NotNil(t, handler, "Expected NewPrettyHandler to return a non-nil handler")
		assert.NotNil(t, handler.Handler, "Expected handler to have a non-nil Handler field")
		assert.NotNil(t, handler.l, "Expected handler to have a non-nil logger field")
	})

	t.Run("Level of the options filters records", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{SlogOpts: slog.HandlerOptions{Level: slog.LevelWarn}})

		assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
	})
}

func TestPrettyHandlerHandle(t *testing.T) {
	t.Run("Each level is printed with its attributes", func(t *testing.T) {
		levels := map[slog.Level]string{
			slog.LevelDebug: "DEBUG:",
			slog.LevelInfo:  "INFO:",
			slog.LevelWarn:  "WARN:",
			slog.LevelError: "ERROR:",
		}
		for level, label := range levels {
			var buf bytes.Buffer
			logger := NewLogger(&buf, slog.LevelDebug)

			logger.Log(context.Background(), level, "Loaded timezone database", slog.Int("zones", 597))

			output := buf.String()
			assert.Contains(t, output, label)
			assert.Contains(t, output, "Loaded timezone database")
			assert.Contains(t, output, `"zones":597`)
		}
	})

	t.Run("Record without attributes prints an empty object", func(t *testing.T) {
		var buf bytes.Buffer
		NewLogger(&buf, slog.LevelInfo).Info("Engine started")

		assert.Contains(t, buf.String(), "Engine started")
		assert.Contains(t, buf.String(), "{}")
	})

	t.Run("Durations errors and groups are readable", func(t *testing.T) {
		var buf bytes.Buffer
		NewLogger(&buf, slog.LevelDebug).Debug("Duckling parse",
			slog.Duration("took", 1500*time.Millisecond),
			slog.Any("error", errors.New("connection refused")),
			slog.Group("request", slog.String("locale", "ES_CO"), slog.Int("dimensions", 2)),
		)

		output := buf.String()
		assert.Contains(t, output, `"took":"1.5s"`)
		assert.Contains(t, output, `"error":"connection refused"`)
		assert.Contains(t, output, `"locale":"ES_CO"`)
		assert.Contains(t, output, `"dimensions":2`)
	})

	t.Run("Record starts with the time of day", func(t *testing.T) {
		var buf bytes.Buffer
		NewLogger(&buf, slog.LevelInfo).Info("Stored extraction")

		assert.Regexp(t, `^\[\d{2}:\d{2}:\d{2}\.\d{3}\]`, buf.String())
	})

	t.Run("Records below the level are dropped", func(t *testing.T) {
		var buf bytes.Buffer
		NewLogger(&buf, slog.LevelInfo).Debug("Extracted entities")

		assert.Empty(t, buf.String())
	})
}

func TestPrettyHandlerWithAttrs(t *testing.T) {
	t.Run("Attributes of the logger are added to every record", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelInfo).With(slog.String("engine", "http"))

		logger.Info("Engine started", slog.String("url", "http://localhost:8000"))

		output := buf.String()
		assert.Contains(t, output, `"engine":"http"`)
		assert.Contains(t, output, `"url":"http://localhost:8000"`)
	})

	t.Run("Parent logger is not changed", func(t *testing.T) {
		var buf bytes.Buffer
		parent := NewLogger(&buf, slog.LevelInfo)
		_ = parent.With(slog.String("engine", "http"))

		parent.Info("Engine stopped")
		assert.NotContains(t, buf.String(), "engine")
	})
}
