// Package handlers implements HTTP handlers for the property-search API.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/property-search/internal/apierror"
	"github.com/donaldgifford/property-search/internal/boom"
	"github.com/donaldgifford/property-search/internal/cities"
	"github.com/donaldgifford/property-search/internal/metrics"
)

// Messages returned by the search endpoint.
const (
	MsgSearchCompleted = "Search completed successfully"
	MsgSearchFailed    = "An error occurred while searching houses"
	MsgCityRequired    = "City parameter is required"
	MsgInvalidCity     = "Invalid city name"
	MsgInvalidPage     = "Page parameter must be a positive integer"
)

// SearchHandler validates search queries and proxies them to Boom.
type SearchHandler struct {
	searcher boom.HouseSearcher
	cities   *cities.Allowlist
	log      *slog.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searcher boom.HouseSearcher, allowed *cities.Allowlist, log *slog.Logger) *SearchHandler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &SearchHandler{searcher: searcher, cities: allowed, log: log}
}

// SearchInput holds the query parameters of the search endpoint. Both are
// declared as strings so validation and its messages stay under our control.
type SearchInput struct {
	City string `query:"city" doc:"City to search in; must be one of the supported cities" example:"Miami"`
	Page string `query:"page" doc:"Page number, starting at 1 (default 1)" example:"1"`
}

// SearchOutput is the response of the search endpoint.
type SearchOutput struct {
	Status int
	Body   Envelope
}

// Search validates the query and returns the upstream listings page.
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if input.City == "" {
		metrics.SearchValidationFailuresTotal.WithLabelValues("missing_city").Inc()
		return failure(apierror.MissingParameter(MsgCityRequired)), nil
	}

	if !h.cities.IsAllowed(input.City) {
		metrics.SearchValidationFailuresTotal.WithLabelValues("invalid_city").Inc()
		return failure(apierror.InvalidParameter(MsgInvalidCity)), nil
	}

	page := 1
	if input.Page != "" {
		n, ok := ParsePage(input.Page)
		if !ok || n < 1 {
			metrics.SearchValidationFailuresTotal.WithLabelValues("invalid_page").Inc()
			return failure(apierror.InvalidParameter(MsgInvalidPage)), nil
		}
		page = n
	}

	data, err := h.searcher.SearchHouses(ctx, input.City, page)
	if err != nil {
		h.log.Warn("house search failed",
			"city", input.City,
			"page", page,
			"kind", apierror.KindOf(err).String(),
			"error", err,
		)
		return failure(err), nil
	}

	out := &SearchOutput{Status: http.StatusOK}
	out.Body = Envelope{
		Success: true,
		Message: MsgSearchCompleted,
		Data:    data,
	}
	return out, nil
}

func failure(err error) *SearchOutput {
	status := apierror.StatusOf(err)
	return &SearchOutput{
		Status: status,
		Body:   Failure(status, apierror.MessageOf(err, MsgSearchFailed)),
	}
}

// maxPage is the largest integer a JSON number carries exactly (2^53).
const maxPage = 1 << 53

// ParsePage reads a page number the way a lenient integer parse does: leading
// whitespace and an optional sign are skipped, then the leading run of digits
// is used and anything after it ignored. ok is false when no digits are found
// or the digits exceed maxPage.
func ParsePage(s string) (n int, ok bool) {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		if n > maxPage {
			return 0, false
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// RegisterSearchRoutes registers search endpoints with the Huma API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	envelope := api.OpenAPI().Components.Schemas.Schema(reflect.TypeOf(Envelope{}), true, "")
	failed := func(desc string) *huma.Response {
		return &huma.Response{
			Description: desc,
			Content:     map[string]*huma.MediaType{"application/json": {Schema: envelope}},
		}
	}

	huma.Register(api, huma.Operation{
		OperationID: "search-houses",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search houses by city",
		Description: "Validates the city and page, then returns one page of Boom listings " +
			"wrapped in a response envelope. Without Boom credentials an empty mock result is returned.",
		Tags: []string{"search"},
		Responses: map[string]*huma.Response{
			"400": failed("Missing or invalid city, or invalid page"),
			"401": failed("Boom authentication failed"),
			"404": failed("No listings found for the city"),
			"500": failed("Boom unreachable, Boom server error, or credentials misconfigured"),
		},
	}, h.Search)
}
