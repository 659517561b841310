// Package repo is the CRUD façade over the spreadsheet. It locates rows by
// key with linear scans, appends inserts, and commits updates as single-row
// range writes. There is no cross-request cache: every operation starts from
// a cold read, because the backing sheet can change between calls from other
// actors.
package repo

import (
	"context"

	"github.com/leadforge-labs/leadforge/internal/domain"
	"github.com/leadforge-labs/leadforge/internal/sheets"
	"github.com/leadforge-labs/leadforge/internal/table"
)

// RangeClient is the subset of the range client the repositories consume.
type RangeClient interface {
	ReadRange(ctx context.Context, rng string) ([][]string, error)
	WriteRange(ctx context.Context, rng string, rows [][]string) error
	AppendRow(ctx context.Context, tab string, row []string) error
	BatchRead(ctx context.Context, rngs []string) ([][][]string, error)
}

var _ RangeClient = (*sheets.Client)(nil)

// codec binds an entity type to its schema and row conversions.
type codec[T any] struct {
	entity string
	schema table.Schema
	decode func([]string) T
	encode func(T) []string
	key    func(T) string
}

// tableRepo implements key-based CRUD for one tab.
type tableRepo[T any] struct {
	client RangeClient
	codec  codec[T]
}

// readAll fetches the whole tab, validates the header and returns the raw
// data rows. The returned rows keep their physical order; row i lives at
// sheet row i+2.
func (r *tableRepo[T]) readAll(ctx context.Context) ([][]string, error) {
	rows, err := r.client.ReadRange(ctx, r.codec.schema.Tab)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrMalformed
	}
	if err := table.CheckHeader(r.codec.schema, rows[0]); err != nil {
		return nil, err
	}
	return rows[1:], nil
}

// find returns the decoded record and its 0-based data row index. Duplicate
// keys can exist after out-of-band edits; the physically first match is
// authoritative.
func (r *tableRepo[T]) find(ctx context.Context, key string) (T, int, [][]string, error) {
	var zero T
	rows, err := r.readAll(ctx)
	if err != nil {
		return zero, 0, nil, err
	}
	for i, row := range rows {
		if cellAt(row, r.codec.schema.KeyCol) == key {
			return r.codec.decode(row), i, rows, nil
		}
	}
	return zero, 0, rows, domain.ErrNotFound
}

// Find returns the first record whose key column matches key.
func (r *tableRepo[T]) Find(ctx context.Context, key string) (T, error) {
	rec, _, _, err := r.find(ctx, key)
	return rec, domain.WrapOp(r.codec.entity, key, "find", err)
}

// List returns every record, in physical row order, optionally filtered.
func (r *tableRepo[T]) List(ctx context.Context, keep func(T) bool) ([]T, error) {
	rows, err := r.readAll(ctx)
	if err != nil {
		return nil, domain.WrapOp(r.codec.entity, "", "list", err)
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		rec := r.codec.decode(row)
		if keep == nil || keep(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Insert appends the record as a new row. No key-collision check is made;
// callers needing uniqueness must Find first. Append-only growth keeps the
// operation to a single round trip.
func (r *tableRepo[T]) Insert(ctx context.Context, rec T) (T, error) {
	err := r.client.AppendRow(ctx, r.codec.schema.Tab, r.codec.encode(rec))
	return rec, domain.WrapOp(r.codec.entity, r.codec.key(rec), "insert", err)
}

// Update locates the row for key, applies the mutation to the decoded record
// and writes exactly that one row back. Cells beyond the mapped schema are
// carried over verbatim so operator-added columns survive updates. Two
// overlapping updates race; the later write wins.
func (r *tableRepo[T]) Update(ctx context.Context, key string, apply func(*T)) (T, error) {
	var zero T
	rec, idx, rows, err := r.find(ctx, key)
	if err != nil {
		return zero, domain.WrapOp(r.codec.entity, key, "update", err)
	}

	apply(&rec)
	row := r.codec.encode(rec)
	if extra := rows[idx]; len(extra) > r.codec.schema.Width() {
		row = append(row, extra[r.codec.schema.Width():]...)
	}

	rng := table.RowRange(r.codec.schema, idx+2, len(row))
	if err := r.client.WriteRange(ctx, rng, [][]string{row}); err != nil {
		return zero, domain.WrapOp(r.codec.entity, key, "update", err)
	}
	return rec, nil
}

// Delete physically removes the row for key. Every row after it shifts up by
// one, so the whole tail plus one clearing row is rewritten in a single range
// write; the sheet is never left half-shifted by an interrupted process.
func (r *tableRepo[T]) Delete(ctx context.Context, key string) error {
	_, idx, rows, err := r.find(ctx, key)
	if err != nil {
		return domain.WrapOp(r.codec.entity, key, "delete", err)
	}

	width := r.codec.schema.Width()
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	tail := make([][]string, 0, len(rows)-idx)
	for _, row := range rows[idx+1:] {
		tail = append(tail, padRow(row, width))
	}
	tail = append(tail, make([]string, width)) // clears the now-stale last row

	rng := table.SpanRange(r.codec.schema, idx+2, len(tail), width)
	if err := r.client.WriteRange(ctx, rng, tail); err != nil {
		return domain.WrapOp(r.codec.entity, key, "delete", err)
	}
	return nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// padRow extends row to width with empty cells. A RAW range write only
// touches the cells it supplies, so clearing requires explicit empties.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
