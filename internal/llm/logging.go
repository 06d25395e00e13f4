package llm

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/spigell/ats-screener/internal/utils"
	"go.uber.org/zap"
)

const defaultMaxLogLength = 200

type loggingCompleter struct {
	next      Completer
	logger    *zap.Logger
	maxLogLen int
}

// WithLogging logs every request and response at debug level with truncated
// previews of maxLogLength runes.
func WithLogging(next Completer, logger *zap.Logger, maxLogLength int) Completer {
	if logger == nil {
		return next
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &loggingCompleter{next: next, logger: logger, maxLogLen: maxLogLength}
}

func (c *loggingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("model request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	started := time.Now()
	raw, err := c.next.Complete(ctx, prompt)
	if err != nil {
		c.logger.Debug("model request failed", zap.Duration("elapsed", time.Since(started)), zap.Error(err))
		return "", err
	}

	c.logger.Debug("model response",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, c.maxLogLen)),
	)

	return raw, nil
}
