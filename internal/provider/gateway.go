package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"
)

const (
	maxAttempts      = 3 // 1 initial + 2 retries, transient failures only
	backoffBase      = 200 * time.Millisecond
	backoffJitterPct = 20
)

// gateway is the shared HTTP plumbing for every provider client. It applies
// a per-attempt timeout, classifies failures into the Kind taxonomy, and
// retries transient failures with exponential backoff and jitter.
type gateway struct {
	name    string
	client  *http.Client
	timeout time.Duration
}

func newGateway(name string, timeout time.Duration) gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return gateway{
		name:    name,
		client:  &http.Client{},
		timeout: timeout,
	}
}

// getJSON issues a GET and decodes the JSON response into out.
func (g gateway) getJSON(ctx context.Context, url string, out any) error {
	return g.do(ctx, http.MethodGet, url, "", nil, out)
}

// postJSON issues a POST with a JSON body and decodes the response into out.
func (g gateway) postJSON(ctx context.Context, url string, body, out any) error {
	return g.postJSONWithAuth(ctx, url, "", body, out)
}

// postJSONWithAuth is postJSON with an Authorization header value.
func (g gateway) postJSONWithAuth(ctx context.Context, url, authorization string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return newError(KindRejected, g.name, fmt.Errorf("encode request: %w", err))
	}
	return g.do(ctx, http.MethodPost, url, authorization, payload, out)
}

func (g gateway) do(ctx context.Context, method, url, authorization string, body []byte, out any) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if err := g.sleep(ctx, attempt); err != nil {
				return err
			}
			slog.Debug("retrying provider call", "provider", g.name, "attempt", attempt+1)
		}

		lastErr = g.attempt(ctx, method, url, authorization, body, out)
		if lastErr == nil || !IsTransient(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

// sleep waits for the backoff delay before retry number attempt, or returns
// a timeout error if the caller's context ends first.
func (g gateway) sleep(ctx context.Context, attempt int) error {
	delay := backoffBase << (attempt - 1)
	jitter := delay * backoffJitterPct / 100
	delay += time.Duration(rand.Int64N(int64(2*jitter))) - jitter

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return newError(KindTimeout, g.name, ctx.Err())
	case <-timer.C:
		return nil
	}
}

func (g gateway) attempt(ctx context.Context, method, url, authorization string, body []byte, out any) error {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(callCtx, method, url, reader)
	if err != nil {
		return newError(KindRejected, g.name, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if callCtx.Err() != nil {
			return newError(KindTimeout, g.name, callCtx.Err())
		}
		return newError(KindTransient, g.name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		drainBody(resp.Body)
		return newError(KindTransient, g.name, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		drainBody(resp.Body)
		return newError(KindRejected, g.name, fmt.Errorf("status %d", resp.StatusCode))
	}

	if out == nil {
		drainBody(resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(KindRejected, g.name, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// requireKey guards clients whose credential was never configured.
func (g gateway) requireKey(key string) error {
	if key == "" {
		return newError(KindRejected, g.name, errors.New("api key not configured"))
	}
	return nil
}

func drainBody(r io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, 4096))
}
