package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/leadforge-labs/leadforge/internal/auth"
	"github.com/leadforge-labs/leadforge/internal/domain"
	"github.com/leadforge-labs/leadforge/internal/repo"
	"github.com/leadforge-labs/leadforge/internal/table"
)

// memSheet is an in-memory spreadsheet backing the store during handler
// tests. Reads omit trailing empty cells and rows the way the values API
// does.
type memSheet struct {
	tabs map[string][][]string
}

func newMemSheet() *memSheet {
	m := &memSheet{tabs: map[string][][]string{}}
	for _, kind := range []table.Kind{
		table.KindProject, table.KindLead, table.KindTemplate, table.KindCampaignStat,
	} {
		s := table.For(kind)
		m.tabs[s.Tab] = [][]string{append([]string{}, s.Header...)}
	}
	return m
}

func splitRange(rng string) (string, int) {
	tab, ref, ok := strings.Cut(rng, "!")
	if !ok {
		return rng, 1
	}
	start, _, _ := strings.Cut(ref, ":")
	row, _ := strconv.Atoi(strings.TrimLeft(start, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
	return tab, row
}

func (m *memSheet) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	tab, _ := splitRange(rng)
	var out [][]string
	for _, row := range m.tabs[tab] {
		end := len(row)
		for end > 0 && row[end-1] == "" {
			end--
		}
		out = append(out, row[:end])
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *memSheet) WriteRange(ctx context.Context, rng string, rows [][]string) error {
	tab, start := splitRange(rng)
	grid := m.tabs[tab]
	for i, row := range rows {
		at := start - 1 + i
		for at >= len(grid) {
			grid = append(grid, nil)
		}
		cells := append([]string{}, grid[at]...)
		for j, cell := range row {
			for j >= len(cells) {
				cells = append(cells, "")
			}
			cells[j] = cell
		}
		grid[at] = cells
	}
	m.tabs[tab] = grid
	return nil
}

func (m *memSheet) AppendRow(ctx context.Context, tab string, row []string) error {
	name, _ := splitRange(tab)
	grid := m.tabs[name]
	for len(grid) > 1 {
		last := grid[len(grid)-1]
		blank := true
		for _, cell := range last {
			if cell != "" {
				blank = false
				break
			}
		}
		if !blank {
			break
		}
		grid = grid[:len(grid)-1]
	}
	m.tabs[name] = append(grid, append([]string{}, row...))
	return nil
}

func (m *memSheet) BatchRead(ctx context.Context, rngs []string) ([][][]string, error) {
	out := make([][][]string, len(rngs))
	for i, rng := range rngs {
		rows, err := m.ReadRange(ctx, rng)
		if err != nil {
			return nil, err
		}
		out[i] = rows
	}
	return out, nil
}

var _ repo.RangeClient = (*memSheet)(nil)

// fixture wires a full router over an in-memory sheet and a stub provider
// token endpoint.
type fixture struct {
	api       *httptest.Server
	sheet     *memSheet
	tokenHits atomic.Int64
	opens     atomic.Int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{sheet: newMemSheet()}

	token := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.tokenHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"refreshed","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(token.Close)

	mgr := auth.NewManager(auth.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  token.URL + "/auth",
			TokenURL: token.URL + "/token",
		},
	})

	open := func(ctx context.Context, cred domain.Credential) (*repo.Store, error) {
		f.opens.Add(1)
		return repo.NewStore(f.sheet), nil
	}

	h := NewHandler(mgr, open, nil)
	f.api = httptest.NewServer(NewRouter(h, mgr, nil))
	t.Cleanup(f.api.Close)
	return f
}

// store returns a direct store over the fixture sheet for seeding.
func (f *fixture) store() *repo.Store {
	return repo.NewStore(f.sheet)
}

func freshCred() domain.Credential {
	return domain.Credential{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiryMillis: time.Now().Add(time.Hour).UnixMilli(),
	}
}

func staleCred() domain.Credential {
	return domain.Credential{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		ExpiryMillis: time.Now().Add(-time.Minute).UnixMilli(),
	}
}

// do issues a request against the fixture API, optionally with a carried
// credential, and decodes the JSON body into out when non-nil.
func (f *fixture) do(t *testing.T, method, path string, cred *domain.Credential, body, out any) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, f.api.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred != nil {
		auth.SetHeader(req.Header, *cred)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}
