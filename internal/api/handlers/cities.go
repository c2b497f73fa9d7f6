package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/property-search/internal/cities"
)

// MsgCitiesListed is returned with the supported city list.
const MsgCitiesListed = "Cities retrieved successfully"

// CitiesHandler lists the cities the search endpoint accepts.
type CitiesHandler struct {
	cities *cities.Allowlist
}

// NewCitiesHandler creates a CitiesHandler.
func NewCitiesHandler(allowed *cities.Allowlist) *CitiesHandler {
	return &CitiesHandler{cities: allowed}
}

// CitiesInput holds the optional filter term.
type CitiesInput struct {
	Q string `query:"q" doc:"Case-insensitive substring filter" example:"beach"`
}

// CitiesOutput is the response of the cities endpoint.
type CitiesOutput struct {
	Body Envelope
}

// ListCities returns the supported cities in their configured order. Names are
// returned exactly as the search endpoint expects them, trailing spaces
// included.
func (h *CitiesHandler) ListCities(_ context.Context, input *CitiesInput) (*CitiesOutput, error) {
	names := h.cities.Filter(input.Q)
	if names == nil {
		names = []string{}
	}

	data, err := json.Marshal(names)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to encode cities")
	}

	return &CitiesOutput{Body: Envelope{
		Success: true,
		Message: MsgCitiesListed,
		Data:    data,
	}}, nil
}

// RegisterCitiesRoutes registers the cities route on the Huma API.
func RegisterCitiesRoutes(api huma.API, h *CitiesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-cities",
		Method:      http.MethodGet,
		Path:        "/api/v1/cities",
		Summary:     "List supported cities",
		Description: "Returns the cities accepted by the search endpoint, optionally filtered.",
		Tags:        []string{"search"},
	}, h.ListCities)
}
