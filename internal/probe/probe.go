package probe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/giantswarm/smokecheck/internal/netutil"
	"github.com/giantswarm/smokecheck/internal/sentinel"
)

// Sentinel errors returned by WaitReady. Callers match these with errors.Is
// through wrapped error chains.
const (
	// ErrContentMismatch indicates the endpoint responded but the body did
	// not equal the expected literal. The first response is final; no
	// further attempts are made.
	ErrContentMismatch = sentinel.Error("response body mismatch")

	// ErrUnreachable indicates every attempt failed with a connection-level
	// error. The wrapping error carries the full attempt log.
	ErrUnreachable = sentinel.Error("endpoint unreachable")

	// ErrProcessExited indicates the example process exited before the
	// endpoint produced a response.
	ErrProcessExited = sentinel.Error("process exited before responding")

	// ErrAttemptsNotPositive indicates a non-positive attempt budget.
	ErrAttemptsNotPositive = sentinel.Error("max attempts must be positive")

	// ErrIntervalNotPositive indicates a non-positive poll interval.
	ErrIntervalNotPositive = sentinel.Error("interval must be positive")

	// ErrRequestTimeoutNotPositive indicates a non-positive request timeout.
	ErrRequestTimeoutNotPositive = sentinel.Error("request timeout must be positive")
)

// Config configures one readiness probe.
type Config struct {
	Port           int           // Port the example process should be listening on
	ExpectedBody   string        // Exact body the root endpoint must return
	MaxAttempts    int           // Total connection attempts before giving up
	Interval       time.Duration // Fixed sleep between attempts
	RequestTimeout time.Duration // Per-attempt HTTP timeout
	Name           string        // Target name, for logging and error context
	Logger         *slog.Logger  // Optional logger (defaults to slog.Default())

	// ProcessExited, if non-nil, aborts the probe immediately when closed
	// (the process died mid-poll).
	ProcessExited <-chan struct{}
}

// validate checks the probe configuration.
func (c Config) validate() error {
	if c.Name == "" {
		return fmt.Errorf("probe: name must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("probe %s: port must be between 1 and 65535", c.Name)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("probe %s: %w", c.Name, ErrAttemptsNotPositive)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("probe %s: %w", c.Name, ErrIntervalNotPositive)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("probe %s: %w", c.Name, ErrRequestTimeoutNotPositive)
	}
	return nil
}

// WaitReady polls GET http://127.0.0.1:<port>/ until a response completes or
// the attempt budget is exhausted. It returns the number of attempts made.
//
// Outcomes:
//   - body equals ExpectedBody: nil error.
//   - body differs: ErrContentMismatch, immediately after the first response.
//   - all attempts fail at the connection level: ErrUnreachable carrying the
//     attempt log (one entry per attempt).
//   - ProcessExited closes mid-poll: ErrProcessExited.
func WaitReady(ctx context.Context, cfg Config) (int, error) {
	if err := cfg.validate(); err != nil {
		return 0, err
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			// DisableKeepAlives ensures each attempt opens a fresh connection
			// that is closed after the response is read. Without this, the
			// transport accumulates idle connections across attempts.
			DisableKeepAlives: true,
		},
		Timeout: cfg.RequestTimeout,
	}
	defer httpClient.CloseIdleConnections()

	url := fmt.Sprintf("http://%s:%d/", netutil.LoopbackHost, cfg.Port)

	// The attempt counter, not the timer, decides when polling stops. The
	// overall timeout is a safety net sized so it cannot fire before the
	// attempt budget runs out.
	safetyTimeout := time.Duration(cfg.MaxAttempts+1) * (cfg.Interval + cfg.RequestTimeout)

	// attempt and attemptLog are safe to mutate without synchronization:
	// PollUntilContextTimeout invokes the condition sequentially, never
	// concurrently with itself.
	attempt := 0
	var attemptLog []string

	err := wait.PollUntilContextTimeout(ctx, cfg.Interval, safetyTimeout, true,
		func(pollCtx context.Context) (bool, error) {
			// Abort without issuing a request if the process has died. This
			// avoids polling for the full budget when the example crashes
			// mid-startup (e.g. port bind failure).
			if cfg.ProcessExited != nil {
				select {
				case <-cfg.ProcessExited:
					return false, fmt.Errorf("probe %s: %w", cfg.Name, ErrProcessExited)
				default:
				}
			}

			attempt++
			req, err := http.NewRequestWithContext(pollCtx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return false, fmt.Errorf("create probe request: %w", err)
			}

			resp, err := httpClient.Do(req)
			if err != nil {
				attemptLog = append(attemptLog, fmt.Sprintf("attempt %d: %v", attempt, err))
				log.Debug("probe attempt failed", "target", cfg.Name, "port", cfg.Port,
					"attempt", attempt, "error", err)
				if attempt >= cfg.MaxAttempts {
					return false, fmt.Errorf("%w after %d attempts:\n%s",
						ErrUnreachable, attempt, strings.Join(attemptLog, "\n"))
				}
				return false, nil
			}

			body, readErr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if readErr != nil {
				return false, fmt.Errorf("read probe response body: %w", readErr)
			}

			// The first completed response is final, whatever its status:
			// the body either matches or the verification fails here.
			if string(body) != cfg.ExpectedBody {
				return false, fmt.Errorf("%w: expected %q, got %q",
					ErrContentMismatch, cfg.ExpectedBody, string(body))
			}

			log.Debug("probe succeeded", "target", cfg.Name, "port", cfg.Port, "attempt", attempt)
			return true, nil
		})
	if err != nil {
		return attempt, fmt.Errorf("probe %s on port %d: %w", cfg.Name, cfg.Port, err)
	}
	return attempt, nil
}
