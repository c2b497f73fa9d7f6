package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/property-search/internal/api/handlers"
	"github.com/donaldgifford/property-search/internal/cities"
)

func TestListCities(t *testing.T) {
	t.Parallel()

	allowed := cities.New([]string{"Miami", "Mijas ", "Mijas", "North Miami Beach", "Tampa"})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "all", query: "", want: []string{"Miami", "Mijas ", "Mijas", "North Miami Beach", "Tampa"}},
		{name: "filter ignores case", query: "?q=MIAMI", want: []string{"Miami", "North Miami Beach"}},
		{name: "keeps near duplicates", query: "?q=mij", want: []string{"Mijas ", "Mijas"}},
		{name: "no match", query: "?q=atlantis", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterCitiesRoutes(api, handlers.NewCitiesHandler(allowed))

			resp := api.Get("/api/v1/cities" + tt.query)
			require.Equal(t, http.StatusOK, resp.Code)

			var body struct {
				Success bool     `json:"success"`
				Message string   `json:"message"`
				Data    []string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.True(t, body.Success)
			assert.Equal(t, handlers.MsgCitiesListed, body.Message)
			assert.Equal(t, tt.want, body.Data)
		})
	}
}
