// Package ioclient talks to a recipe server over HTTP. It implements
// lifecycle.Fetcher and lifecycle.Prober.
package ioclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/findcoffee/findcoffee/pkg/catalog"
	"github.com/findcoffee/findcoffee/pkg/config"
	"github.com/goccy/go-json"
)

// maxErrorBody limits how much of a failed response is kept for logs.
const maxErrorBody = 512

// Client is an HTTP client of a recipe server.
type Client struct {
	http         *http.Client
	fetchTimeout time.Duration
}

// New creates a client. Connect and read timeouts of data requests are
// taken from cfg.Sync.FetchTimeout. Requests are never retried.
func New(cfg *config.Config) *Client {
	timeout := cfg.Sync.FetchTimeout
	dialer := &net.Dialer{Timeout: timeout}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ResponseHeaderTimeout: timeout,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
	}
	return &Client{
		http:         &http.Client{Transport: transport},
		fetchTimeout: timeout,
	}
}

// Probe sends GET to url and reports whether it answered 200 within
// timeout. A false result comes with a ProbeError.
func (c *Client) Probe(
	ctx context.Context,
	url string,
	timeout time.Duration,
) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return false, ProbeError(url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("Probe failed", "url", url, "error", err)
		return false, ProbeError(url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode != http.StatusOK {
		slog.Debug("Probe got bad status", "url", url, "status", resp.StatusCode)
		return false, ProbeError(url,
			fmt.Errorf("status %d", resp.StatusCode))
	}
	return true, nil
}

// FetchRecipes downloads the recipe catalog. Every record is validated,
// one malformed record fails the whole catalog.
func (c *Client) FetchRecipes(
	ctx context.Context,
	host, port string,
) ([]catalog.Recipe, error) {
	url := catalog.RecipesURL(host, port)

	var res []catalog.Recipe
	if err := c.getJSON(ctx, url, &res); err != nil {
		return nil, err
	}
	if res == nil {
		return nil, notArrayError(url)
	}

	for i := range res {
		if err := res[i].Validate(); err != nil {
			slog.Warn("Malformed catalog record", "url", url, "index", i, "error", err)
			return nil, err
		}
	}

	slog.Info("Catalog downloaded", "url", url, "recipes", len(res))
	return res, nil
}

// FetchCoffeeNames downloads the list of coffee names.
func (c *Client) FetchCoffeeNames(
	ctx context.Context,
	host, port string,
) ([]string, error) {
	url := catalog.CoffeesURL(host, port)

	var res []string
	if err := c.getJSON(ctx, url, &res); err != nil {
		return nil, err
	}
	if res == nil {
		return nil, notArrayError(url)
	}
	return res, nil
}

// FetchIngredients downloads ingredient quantities of a coffee for one
// size.
func (c *Client) FetchIngredients(
	ctx context.Context,
	host, port, size, coffee string,
) (map[string]string, error) {
	url := catalog.IngredientsURL(host, port, size, coffee)

	var res map[string]string
	if err := c.getJSON(ctx, url, &res); err != nil {
		return nil, err
	}
	if res == nil {
		return nil, DecodeError(url, errors.New("answer is not a JSON object"))
	}
	return res, nil
}

// notArrayError is returned when a list answer decodes to nil, for
// example a top-level null.
func notArrayError(url string) error {
	slog.Warn("Answer is not a JSON array", "url", url)
	return DecodeError(url, errors.New("answer is not a JSON array"))
}

// getJSON sends GET to url and decodes a 200 answer into dst. The answer
// must hold exactly one JSON value. The body is always closed.
func (c *Client) getJSON(ctx context.Context, url string, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return RequestError(url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("Request failed", "url", url, "error", err)
		return RequestError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		slog.Warn("Request got bad status",
			"url", url, "status", resp.StatusCode, "body", body)
		return StatusError(url, resp.StatusCode, body)
	}

	dec := json.NewDecoder(resp.Body)
	if err = dec.Decode(dst); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			slog.Warn("Response timed out", "url", url, "error", err)
			return RequestError(url, err)
		}
		slog.Warn("Cannot decode response", "url", url, "error", err)
		return DecodeError(url, err)
	}

	var extra json.RawMessage
	if err = dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		slog.Warn("Trailing data in response", "url", url, "error", err)
		return DecodeError(url, err)
	}
	return nil
}

func readBodyForError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	return string(data)
}
