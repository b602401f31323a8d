// Package scrape runs the detail worker: an isolated process that
// renders a notice's dynamic detail page and prints one JSON object on
// stdout. One process per invocation, no pooling; a hang or crash in the
// rendering engine can never stall or corrupt the connector itself.
package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/licitavision/placsp-connector/internal/domain"
	"github.com/licitavision/placsp-connector/internal/logger"
	"github.com/licitavision/placsp-connector/internal/session"
	"github.com/licitavision/placsp-connector/internal/telemetry"
)

// stderrLogLimit caps how much worker diagnostic output is logged.
const stderrLogLimit = 300

// killDelay is how long after context cancellation the worker gets
// before a hard kill.
const killDelay = 5 * time.Second

// Config holds orchestrator settings. The detail URL is appended to
// Args as the worker's final argument.
type Config struct {
	Command           string
	Args              []string
	Timeout           time.Duration
	Concurrency       int
	LaunchesPerSecond int
}

// Orchestrator launches detail workers and classifies their outcomes.
type Orchestrator struct {
	cfg     Config
	session *session.Store
	limiter *rate.Limiter
	metrics *telemetry.Metrics
	log     logger.Logger
}

// NewOrchestrator creates a worker orchestrator.
func NewOrchestrator(cfg Config, sess *session.Store, metrics *telemetry.Metrics, log logger.Logger) *Orchestrator {
	rps := cfg.LaunchesPerSecond
	if rps <= 0 {
		rps = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Orchestrator{
		cfg:     cfg,
		session: sess,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		metrics: metrics,
		log:     log,
	}
}

// Scrape invokes the worker once for url and returns the parsed detail
// record, or a *Error classifying the failure.
func (o *Orchestrator) Scrape(ctx context.Context, url string) (*domain.Detail, error) {
	invocationID := uuid.NewString()
	log := o.log.With(
		logger.String("invocation_id", invocationID),
		logger.String("url", url),
	)

	runCtx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	args := append(append([]string(nil), o.cfg.Args...), url)
	cmd := exec.CommandContext(runCtx, o.cfg.Command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = killDelay

	start := time.Now()
	runErr := cmd.Run()
	o.metrics.ScrapeDuration.Observe(time.Since(start).Seconds())

	stderrText := strings.TrimSpace(stderr.String())
	if stderrText != "" {
		// The secondary channel is diagnostic only; logged, never parsed.
		log.Warn("worker stderr", logger.String("stderr", truncate(stderrText, stderrLogLimit)))
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return nil, o.fail(log, &Error{
			Kind:    FailureTimeout,
			URL:     url,
			Message: "worker exceeded " + o.cfg.Timeout.String(),
			Stderr:  stderrText,
		})
	}

	if runErr != nil {
		return nil, o.fail(log, &Error{
			Kind:    FailureProcess,
			URL:     url,
			Message: runErr.Error(),
			Stderr:  stderrText,
			Err:     runErr,
		})
	}

	return o.decodeOutput(log, url, stdout.String(), stderrText)
}

// decodeOutput extracts and parses the worker's JSON payload. Framework
// noise may precede or follow the object on stdout, so the payload is
// taken between the first opening and the last closing brace. Lossy on
// payloads containing literal braces in string fields; accepted for
// compatibility with the worker's output contract.
func (o *Orchestrator) decodeOutput(log logger.Logger, url, out, stderrText string) (*domain.Detail, error) {
	first := strings.Index(out, "{")
	last := strings.LastIndex(out, "}")
	if first == -1 || last == -1 || last < first {
		return nil, o.fail(log, &Error{
			Kind:    FailureEmptyOutput,
			URL:     url,
			Message: "no JSON object on worker stdout",
			Raw:     out,
			Stderr:  stderrText,
		})
	}

	payload := []byte(out[first : last+1])

	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, o.fail(log, &Error{
			Kind:    FailureMalformedOutput,
			URL:     url,
			Message: err.Error(),
			Raw:     string(payload),
			Stderr:  stderrText,
			Err:     err,
		})
	}

	if msg, ok := fields["error"].(string); ok && msg != "" {
		return nil, o.fail(log, &Error{
			Kind:    FailureWorkerReported,
			URL:     url,
			Message: msg,
			Stderr:  stderrText,
		})
	}

	var detail domain.Detail
	if err := json.Unmarshal(payload, &detail); err != nil {
		return nil, o.fail(log, &Error{
			Kind:    FailureMalformedOutput,
			URL:     url,
			Message: err.Error(),
			Raw:     string(payload),
			Stderr:  stderrText,
			Err:     err,
		})
	}
	if detail.URL == "" {
		detail.URL = url
	}

	o.metrics.ScrapeOutcomes.WithLabelValues("success").Inc()
	log.Info("worker completed", logger.String("cpv", detail.CPV))
	return &detail, nil
}

// fail records a failed outcome and returns the error unchanged.
func (o *Orchestrator) fail(log logger.Logger, e *Error) *Error {
	o.metrics.ScrapeOutcomes.WithLabelValues(string(e.Kind)).Inc()
	log.Warn("worker failed",
		logger.String("kind", string(e.Kind)),
		logger.String("message", e.Message),
	)
	return e
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
