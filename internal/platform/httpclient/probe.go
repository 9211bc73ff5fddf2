package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/platform/errors"
	"gokutrace/internal/platform/validator"
)

// errorSummaryLen bounds the message carried by an "error_" status.
const errorSummaryLen = 50

// Probe checks a single profile URL and classifies the answer.
// It never returns an error: every failure becomes a status label.
//
//	2xx                  -> found, "active"
//	2xx + EmptyMarker    -> not found, "code_<n>"
//	any other status     -> not found, "code_<n>"
//	transport failure    -> not found, "error_<summary>"
//	malformed URL        -> not found, "invalid_url" (no request issued)
func (c *Client) Probe(ctx context.Context, task domain.ProbeTask) (outcome domain.ProbeOutcome) {
	start := time.Now()
	c.metrics.ProbeStarted()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("probe panicked", "task", task.Name(), "panic", fmt.Sprint(r))
			outcome = domain.NewOutcome(task, false,
				domain.StatusError(errors.Summarize(fmt.Errorf("panic: %v", r), errorSummaryLen)))
		}
		c.metrics.ProbeFinished(outcome.Platform, domain.StatusClass(outcome.Detail.Status), outcome.Found, time.Since(start))
	}()

	if !validator.IsProbeURL(task.URL) {
		c.logger.Debug("rejected probe url", "task", task.Name(), "url", task.URL)
		return domain.NewOutcome(task, false, domain.StatusInvalidURL)
	}

	headers := map[string]string{
		"User-Agent": pick(c.config.UserAgents),
		"Accept":     "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	}

	var proxy *url.URL
	if task.Stealth {
		proxy = c.pickProxy()
	}

	resp, err := c.Get(ctx, task.URL, headers, proxy)
	if err != nil {
		return domain.NewOutcome(task, false, domain.StatusError(errors.Summarize(err, errorSummaryLen)))
	}
	defer discardBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.NewOutcome(task, false, domain.StatusCode(resp.StatusCode))
	}

	if marker := task.Platform.EmptyMarker; marker != "" {
		body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes))
		if err != nil {
			return domain.NewOutcome(task, false, domain.StatusError(errors.Summarize(err, errorSummaryLen)))
		}
		if bytes.Contains(body, []byte(marker)) {
			c.logger.Debug("empty profile marker matched", "task", task.Name())
			return domain.NewOutcome(task, false, domain.StatusCode(resp.StatusCode))
		}
	}

	return domain.NewOutcome(task, true, domain.StatusActive)
}
