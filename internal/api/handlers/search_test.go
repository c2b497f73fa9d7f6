package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/property-search/internal/api/handlers"
	"github.com/donaldgifford/property-search/internal/apierror"
	"github.com/donaldgifford/property-search/internal/boom"
	boomMocks "github.com/donaldgifford/property-search/internal/boom/mocks"
	"github.com/donaldgifford/property-search/internal/cities"
)

func searchPath(q url.Values) string {
	return "/api/v1/search?" + q.Encode()
}

// listingsPage builds an upstream body with n listings and the given total.
func listingsPage(n, count, page int) json.RawMessage {
	listings := make([]string, 0, n)
	for i := range n {
		listings = append(listings, fmt.Sprintf(`{"id":%d,"title":"Listing %d","city_name":"Hollywood"}`, i+1, i+1))
	}
	return json.RawMessage(fmt.Sprintf(
		`{"listings":[%s],"pagi_info":{"count":%d,"page":%d,"per_page":50}}`,
		strings.Join(listings, ","), count, page,
	))
}

func TestSearchHandler_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      url.Values
		setupMock  func(*boomMocks.MockHouseSearcher)
		wantStatus int
		wantBody   handlers.Envelope
	}{
		{
			name:  "valid city and page returns listings",
			query: url.Values{"city": {"Hollywood"}, "page": {"1"}},
			setupMock: func(m *boomMocks.MockHouseSearcher) {
				m.EXPECT().
					SearchHouses(mock.Anything, "Hollywood", 1).
					Return(listingsPage(2, 99, 1), nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody: handlers.Envelope{
				Success: true,
				Message: handlers.MsgSearchCompleted,
			},
		},
		{
			name:  "page omitted defaults to 1",
			query: url.Values{"city": {"Miami"}},
			setupMock: func(m *boomMocks.MockHouseSearcher) {
				m.EXPECT().
					SearchHouses(mock.Anything, "Miami", 1).
					Return(listingsPage(0, 0, 1), nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   handlers.Envelope{Success: true, Message: handlers.MsgSearchCompleted},
		},
		{
			name:  "empty page defaults to 1",
			query: url.Values{"city": {"Miami"}, "page": {""}},
			setupMock: func(m *boomMocks.MockHouseSearcher) {
				m.EXPECT().
					SearchHouses(mock.Anything, "Miami", 1).
					Return(listingsPage(0, 0, 1), nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   handlers.Envelope{Success: true, Message: handlers.MsgSearchCompleted},
		},
		{
			name:  "page with trailing garbage uses leading digits",
			query: url.Values{"city": {"Tampa"}, "page": {"3abc"}},
			setupMock: func(m *boomMocks.MockHouseSearcher) {
				m.EXPECT().
					SearchHouses(mock.Anything, "Tampa", 3).
					Return(listingsPage(0, 120, 3), nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   handlers.Envelope{Success: true, Message: handlers.MsgSearchCompleted},
		},
		{
			name:  "city with trailing space is an allowed city",
			query: url.Values{"city": {"Mijas "}},
			setupMock: func(m *boomMocks.MockHouseSearcher) {
				m.EXPECT().
					SearchHouses(mock.Anything, "Mijas ", 1).
					Return(listingsPage(0, 0, 1), nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   handlers.Envelope{Success: true, Message: handlers.MsgSearchCompleted},
		},
		{
			name:       "missing city returns 400",
			query:      url.Values{"page": {"1"}},
			setupMock:  func(_ *boomMocks.MockHouseSearcher) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   handlers.Failure(http.StatusBadRequest, handlers.MsgCityRequired),
		},
		{
			name:       "unknown city returns 400",
			query:      url.Values{"city": {"Atlantis"}},
			setupMock:  func(_ *boomMocks.MockHouseSearcher) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   handlers.Failure(http.StatusBadRequest, handlers.MsgInvalidCity),
		},
		{
			name:       "city match is case sensitive",
			query:      url.Values{"city": {"miami"}},
			setupMock:  func(_ *boomMocks.MockHouseSearcher) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   handlers.Failure(http.StatusBadRequest, handlers.MsgInvalidCity),
		},
		{
			name:       "invalid city wins over invalid page",
			query:      url.Values{"city": {"Atlantis"}, "page": {"0"}},
			setupMock:  func(_ *boomMocks.MockHouseSearcher) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   handlers.Failure(http.StatusBadRequest, handlers.MsgInvalidCity),
		},
		{
			name:       "zero page returns 400",
			query:      url.Values{"city": {"Miami"}, "page": {"0"}},
			setupMock:  func(_ *boomMocks.MockHouseSearcher) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   handlers.Failure(http.StatusBadRequest, handlers.MsgInvalidPage),
		},
		{
			name:       "negative page returns 400",
			query:      url.Values{"city": {"Miami"}, "page": {"-2"}},
			setupMock:  func(_ *boomMocks.MockHouseSearcher) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   handlers.Failure(http.StatusBadRequest, handlers.MsgInvalidPage),
		},
		{
			name:       "oversized page returns 400",
			query:      url.Values{"city": {"Miami"}, "page": {"99999999999999999999"}},
			setupMock:  func(_ *boomMocks.MockHouseSearcher) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   handlers.Failure(http.StatusBadRequest, handlers.MsgInvalidPage),
		},
		{
			name:       "non-numeric page returns 400",
			query:      url.Values{"city": {"Miami"}, "page": {"abc"}},
			setupMock:  func(_ *boomMocks.MockHouseSearcher) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   handlers.Failure(http.StatusBadRequest, handlers.MsgInvalidPage),
		},
		{
			name:  "upstream not found is passed through",
			query: url.Values{"city": {"Largo"}},
			setupMock: func(m *boomMocks.MockHouseSearcher) {
				m.EXPECT().
					SearchHouses(mock.Anything, "Largo", 1).
					Return(nil, apierror.NotFound("No listings found for the specified city")).
					Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody: handlers.Failure(
				http.StatusNotFound,
				"No listings found for the specified city",
			),
		},
		{
			name:  "upstream bad request keeps upstream status and message",
			query: url.Values{"city": {"Davie"}},
			setupMock: func(m *boomMocks.MockHouseSearcher) {
				m.EXPECT().
					SearchHouses(mock.Anything, "Davie", 1).
					Return(nil, apierror.BadUpstreamRequest(http.StatusUnprocessableEntity, "city not indexed")).
					Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   handlers.Failure(http.StatusUnprocessableEntity, "city not indexed"),
		},
		{
			name:  "wrapped authentication error keeps its status",
			query: url.Values{"city": {"Calgary"}},
			setupMock: func(m *boomMocks.MockHouseSearcher) {
				m.EXPECT().
					SearchHouses(mock.Anything, "Calgary", 1).
					Return(nil, fmt.Errorf("getting auth token: %w",
						apierror.Authentication("Failed to authenticate with Boom API", errors.New("status 403")))).
					Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   handlers.Failure(http.StatusUnauthorized, "Failed to authenticate with Boom API"),
		},
		{
			name:  "upstream unreachable maps to 500 with its message",
			query: url.Values{"city": {"Tampa"}},
			setupMock: func(m *boomMocks.MockHouseSearcher) {
				m.EXPECT().
					SearchHouses(mock.Anything, "Tampa", 1).
					Return(nil, apierror.UpstreamUnavailable("Unable to reach Boom API", errors.New("dial tcp"))).
					Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   handlers.Failure(http.StatusInternalServerError, "Unable to reach Boom API"),
		},
		{
			name:  "upstream server error maps to 500 with its message",
			query: url.Values{"city": {"Clearwater"}},
			setupMock: func(m *boomMocks.MockHouseSearcher) {
				m.EXPECT().
					SearchHouses(mock.Anything, "Clearwater", 1).
					Return(nil, apierror.UpstreamServer("Boom API server error", nil)).
					Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   handlers.Failure(http.StatusInternalServerError, "Boom API server error"),
		},
		{
			name:  "untyped error maps to 500 with generic message",
			query: url.Values{"city": {"Sarasota"}},
			setupMock: func(m *boomMocks.MockHouseSearcher) {
				m.EXPECT().
					SearchHouses(mock.Anything, "Sarasota", 1).
					Return(nil, errors.New("boom")).
					Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   handlers.Failure(http.StatusInternalServerError, handlers.MsgSearchFailed),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockSearcher := boomMocks.NewMockHouseSearcher(t)
			tt.setupMock(mockSearcher)

			h := handlers.NewSearchHandler(mockSearcher, cities.Default(), nil)

			_, api := humatest.New(t)
			handlers.RegisterSearchRoutes(api, h)

			resp := api.Get(searchPath(tt.query))
			require.Equal(t, tt.wantStatus, resp.Code)

			var got handlers.Envelope
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody.Success, got.Success)
			assert.Equal(t, tt.wantBody.Message, got.Message)
			assert.Equal(t, tt.wantBody.Code, got.Code)
			if tt.wantBody.Success {
				assert.NotEmpty(t, got.Data)
			} else {
				assert.Empty(t, got.Data)
			}
		})
	}
}

func TestSearchHandler_PassesListingsThrough(t *testing.T) {
	t.Parallel()

	upstream := listingsPage(50, 99, 1)

	mockSearcher := boomMocks.NewMockHouseSearcher(t)
	mockSearcher.EXPECT().
		SearchHouses(mock.Anything, "Hollywood", 1).
		Return(upstream, nil).
		Once()

	_, api := humatest.New(t)
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(mockSearcher, cities.Default(), nil))

	resp := api.Get(searchPath(url.Values{"city": {"Hollywood"}, "page": {"1"}}))
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Listings []map[string]any `json:"listings"`
			PagiInfo struct {
				Count   int `json:"count"`
				Page    int `json:"page"`
				PerPage int `json:"per_page"`
			} `json:"pagi_info"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data.Listings, 50)
	assert.Equal(t, 99, body.Data.PagiInfo.Count)
	assert.Equal(t, 1, body.Data.PagiInfo.Page)
	assert.Equal(t, 50, body.Data.PagiInfo.PerPage)
}

func TestSearchHandler_MockMode(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	tokens := boom.NewTokenManager("", "", boom.WithAuthBaseURL(srv.URL))
	client := boom.NewClient(tokens, boom.WithBaseURL(srv.URL))

	_, api := humatest.New(t)
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(client, cities.Default(), nil))

	resp := api.Get(searchPath(url.Values{"city": {"Miami"}}))
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			City    string            `json:"city"`
			Results []json.RawMessage `json:"results"`
			Message string            `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, handlers.MsgSearchCompleted, body.Message)
	assert.Equal(t, "Miami", body.Data.City)
	assert.NotNil(t, body.Data.Results)
	assert.Empty(t, body.Data.Results)
	assert.Equal(t, boom.MockModeMessage, body.Data.Message)
	assert.Zero(t, hits.Load())
}

func TestSearchHandler_OpenAPI(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(boomMocks.NewMockHouseSearcher(t), cities.Default(), nil))

	path := api.OpenAPI().Paths["/api/v1/search"]
	require.NotNil(t, path)
	require.NotNil(t, path.Get)
	assert.Equal(t, "search-houses", path.Get.OperationID)
	assert.Contains(t, path.Get.Responses, "200")
	assert.Contains(t, path.Get.Responses, "400")
	assert.Contains(t, path.Get.Responses, "500")
	assert.NotContains(t, path.Get.Responses, "503")
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{name: "plain", input: "2", want: 2, wantOK: true},
		{name: "leading whitespace", input: "  7", want: 7, wantOK: true},
		{name: "plus sign", input: "+4", want: 4, wantOK: true},
		{name: "negative", input: "-3", want: -3, wantOK: true},
		{name: "trailing garbage", input: "12px", want: 12, wantOK: true},
		{name: "decimal truncates", input: "2.9", want: 2, wantOK: true},
		{name: "leading zeros", input: "007", want: 7, wantOK: true},
		{name: "zero", input: "0", want: 0, wantOK: true},
		{name: "letters", input: "abc"},
		{name: "sign only", input: "-"},
		{name: "whitespace only", input: "   "},
		{name: "empty", input: ""},
		{name: "space after sign", input: "- 1"},
		{name: "past 32 bits", input: "99999999999", want: 99999999999, wantOK: true},
		{name: "fifteen digits", input: "123456789012345", want: 123456789012345, wantOK: true},
		{name: "largest exact", input: "9007199254740992", want: 1 << 53, wantOK: true},
		{name: "beyond exact range", input: "9007199254740993"},
		{name: "twenty digits", input: "99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := handlers.ParsePage(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
