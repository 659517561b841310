// Package sheets is the low-level range client for the backing spreadsheet.
// It issues authenticated read/write/append calls against named rectangular
// ranges, owns the retry/backoff policy and classifies quota and credential
// errors. Nothing above this package talks to the network.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/leadforge-labs/leadforge/internal/domain"
)

// valuesAPI is the seam between the client and the Google values endpoints.
// Tests inject a fault-scripted implementation.
type valuesAPI interface {
	get(ctx context.Context, rng string) (*gsheets.ValueRange, error)
	update(ctx context.Context, rng string, vr *gsheets.ValueRange) error
	append(ctx context.Context, rng string, vr *gsheets.ValueRange) error
	batchGet(ctx context.Context, rngs []string) ([]*gsheets.ValueRange, error)
}

// Client performs range-oriented operations against one spreadsheet using
// the credential it was built with. Build one per request; it carries no
// state beyond the bearer token and is safe for concurrent use.
type Client struct {
	api     valuesAPI
	backoff Backoff
	limiter *rate.Limiter

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option customises a Client.
type Option func(*Client)

// WithBackoff overrides the retry policy.
func WithBackoff(b Backoff) Option {
	return func(c *Client) { c.backoff = b }
}

// WithLimiter shares a rate limiter across clients. Useful when one process
// serves many requests against the same spreadsheet quota.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient builds a client that authenticates with the carried credential.
// The token is attached as-is; freshness is the token lifecycle manager's
// job and happens before this point.
func NewClient(ctx context.Context, cred domain.Credential, spreadsheetID string, opts ...Option) (*Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cred.AccessToken,
		TokenType:   "Bearer",
	})
	svc, err := gsheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return newClient(&googleValues{svc: svc, spreadsheetID: spreadsheetID}, opts...), nil
}

func newClient(api valuesAPI, opts ...Option) *Client {
	c := &Client{
		api:     api,
		backoff: DefaultBackoff(),
		limiter: NewLimiter(DefaultRateLimit),
		sleep:   sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadRange returns the rows of the given A1 range as strings. Rows may be
// ragged: the API omits empty trailing cells.
func (c *Client) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	var vr *gsheets.ValueRange
	err := c.do(ctx, "read", func(ctx context.Context) error {
		var err error
		vr, err = c.api.get(ctx, rng)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fromValues(vr.Values), nil
}

// WriteRange overwrites the given A1 range with rows in a single call.
func (c *Client) WriteRange(ctx context.Context, rng string, rows [][]string) error {
	return c.do(ctx, "write", func(ctx context.Context) error {
		return c.api.update(ctx, rng, toValueRange(rows))
	})
}

// AppendRow appends one row after the last data row of the tab.
func (c *Client) AppendRow(ctx context.Context, tab string, row []string) error {
	return c.do(ctx, "append", func(ctx context.Context) error {
		return c.api.append(ctx, tab+"!A1", toValueRange([][]string{row}))
	})
}

// BatchRead fetches several ranges in one round trip, in input order. Used
// when a request needs multiple tabs, e.g. for cross-table aggregates.
func (c *Client) BatchRead(ctx context.Context, rngs []string) ([][][]string, error) {
	var vrs []*gsheets.ValueRange
	err := c.do(ctx, "batch_read", func(ctx context.Context) error {
		var err error
		vrs, err = c.api.batchGet(ctx, rngs)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([][][]string, len(vrs))
	for i, vr := range vrs {
		out[i] = fromValues(vr.Values)
	}
	return out, nil
}

// do runs one logical operation under the rate limiter and retry policy.
// Credential rejections propagate immediately; transient failures are
// retried with backoff until the budget runs out.
func (c *Client) do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		err := classify(fn(ctx))
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			observeFailure(op, "terminal")
			return err
		}
		if attempt+1 >= c.backoff.Attempts {
			observeFailure(op, "exhausted")
			return fmt.Errorf("%w: %s after %d attempts: %v",
				domain.ErrUpstreamUnavailable, op, c.backoff.Attempts, err)
		}

		observeRetry(op)
		if err := c.sleep(ctx, c.backoff.delay(attempt)); err != nil {
			return err
		}
	}
}

// googleValues adapts the generated Sheets service to valuesAPI.
type googleValues struct {
	svc           *gsheets.Service
	spreadsheetID string
}

var _ valuesAPI = (*googleValues)(nil)

func (g *googleValues) get(ctx context.Context, rng string) (*gsheets.ValueRange, error) {
	return g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
}

func (g *googleValues) update(ctx context.Context, rng string, vr *gsheets.ValueRange) error {
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	return err
}

func (g *googleValues) append(ctx context.Context, rng string, vr *gsheets.ValueRange) error {
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, rng, vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return err
}

func (g *googleValues) batchGet(ctx context.Context, rngs []string) ([]*gsheets.ValueRange, error) {
	resp, err := g.svc.Spreadsheets.Values.BatchGet(g.spreadsheetID).
		Ranges(rngs...).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.ValueRanges, nil
}

// toValueRange converts string rows for a RAW write.
func toValueRange(rows [][]string) *gsheets.ValueRange {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}
	return &gsheets.ValueRange{Values: values}
}

// fromValues flattens API cell values to strings. Numbers typed by the sheet
// come back as float64 and are rendered without a trailing zero fraction.
func fromValues(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, cells := range values {
		row := make([]string, len(cells))
		for j, cell := range cells {
			row[j] = cellString(cell)
		}
		rows[i] = row
	}
	return rows
}

func cellString(v interface{}) string {
	switch cell := v.(type) {
	case string:
		return cell
	case float64:
		return strconv.FormatFloat(cell, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(cell)
	case nil:
		return ""
	default:
		return fmt.Sprint(cell)
	}
}
