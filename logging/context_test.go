package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerInContext(t *testing.T) {
	t.Run("from nil context returns noop logger", func(t *testing.T) {
		var ctx context.Context = nil
		log := FromContext(ctx)
		assert.IsType(t, &noopLogger{}, log)
	})

	t.Run("from empty context returns noop logger", func(t *testing.T) {
		log := FromContext(t.Context())
		assert.IsType(t, &noopLogger{}, log)
		assert.NotPanics(t, func() { log.Named("x").InfoWith().Msg("dropped") })
	})

	t.Run("context with a logger returns that logger", func(t *testing.T) {
		service := newTestService(t, validLoggingConfig())
		defer service.Close()

		log := service.Named("ctx")
		ctx := WithContext(t.Context(), log)
		assert.Same(t, log, FromContext(ctx))
	})
}
