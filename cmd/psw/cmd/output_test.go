package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/property-search/pkg/types"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short", input: "Villa", maxLen: 10, want: "Villa"},
		{name: "exact", input: "0123456789", maxLen: 10, want: "0123456789"},
		{name: "long", input: "Oceanfront penthouse", maxLen: 10, want: "Oceanfr..."},
		{name: "multibyte", input: "San Pawl il-Baħar Loft", maxLen: 18, want: "San Pawl il-Baħ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncate(tt.input, tt.maxLen))
		})
	}
}

func TestPrintListingsTable(t *testing.T) {
	t.Parallel()

	res := &domain.SearchResults{
		Listings: []domain.Listing{
			{ID: 7, Title: "Bay View", Beds: 2, Baths: 1.5, Accommodates: 4, CityName: "Miami"},
		},
		PagiInfo: &domain.PagiInfo{Count: 120, Page: 1, PerPage: 50},
	}

	var buf bytes.Buffer
	require.NoError(t, printListingsTable(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Bay View")
	assert.Contains(t, out, "1.5")
	assert.Contains(t, out, "Page 1 of 3 (120 listings)")
}

func TestPrintListingsTable_MockMode(t *testing.T) {
	t.Parallel()

	res := &domain.SearchResults{City: "Miami", Message: "mock"}

	var buf bytes.Buffer
	require.NoError(t, printListingsTable(&buf, res))

	assert.Contains(t, buf.String(), "mock")
	assert.NotContains(t, buf.String(), "Page ")
}

func TestPrintCities_QuotesNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printCities(&buf, []string{"Mijas ", "Mijas"}))

	assert.Equal(t, "\"Mijas \"\n\"Mijas\"\n", buf.String())
}

func TestSearchCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/search", r.URL.Path)
		assert.Equal(t, "Miami", r.URL.Query().Get("city"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{` +
			`"listings":[{"id":1,"title":"Brickell Loft","beds":1,"baths":1,"accommodates":2,"city_name":"Miami"}],` +
			`"pagi_info":{"count":51,"page":2,"per_page":50}}}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"search", "Miami", "--page", "2", "--server", srv.URL, "--output", "table"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Brickell Loft")
	assert.Contains(t, buf.String(), "Page 2 of 2 (51 listings)")
}
