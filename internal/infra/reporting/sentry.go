package reporting

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry enables error reporting. A blank DSN leaves reporting disabled;
// CaptureError is then a no-op.
func InitSentry(dsn, environment string) error {
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}

	return nil
}

// Flush drains buffered events; call before the program terminates.
func Flush() {
	sentry.Flush(2 * time.Second)
}

// CaptureError reports err with additional context attached to the scope.
func CaptureError(err error, context map[string]interface{}) {
	if hub := sentry.CurrentHub(); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			for k, v := range context {
				scope.SetExtra(k, v)
			}
			hub.CaptureException(err)
		})
	}
}
