// Package main implements a mock Boom API server for local development.
// It issues tokens from the client credentials endpoint and serves generated,
// paginated listings for every supported city without real Boom credentials.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/donaldgifford/property-search/internal/cities"
	domain "github.com/donaldgifford/property-search/pkg/types"
)

const perPage = 50

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// tokenStore remembers issued tokens so listings requests can be checked.
type tokenStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
}

func newTokenStore(ttl time.Duration) *tokenStore {
	return &tokenStore{tokens: make(map[string]time.Time), ttl: ttl, now: time.Now}
}

func (s *tokenStore) issue() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b) //nolint:errcheck // crypto/rand.Read never fails
	token := "mock-token-" + hex.EncodeToString(b)

	s.mu.Lock()
	s.tokens[token] = s.now().Add(s.ttl)
	s.mu.Unlock()
	return token
}

func (s *tokenStore) valid(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.tokens[token]
	return ok && s.now().Before(exp)
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	expiresIn := flag.Int("expires-in", 3600, "token lifetime in seconds")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tokens := newTokenStore(time.Duration(*expiresIn) * time.Second)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/token", tokenHandler(logger, tokens))
	mux.HandleFunc("GET /listings", listingsHandler(logger, tokens, cities.Default()))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Boom server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func tokenHandler(logger *slog.Logger, tokens *tokenStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
			req.ClientID == "" || req.ClientSecret == "" {
			logger.Warn("token request missing client credentials")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "invalid_client",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": tokens.issue(),
			"expires_in":   int(tokens.ttl.Seconds()),
		})
		logger.Info("issued mock token", "client_id", req.ClientID)
	}
}

func listingsHandler(
	logger *slog.Logger,
	tokens *tokenStore,
	allowed *cities.Allowlist,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || !tokens.valid(token) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"message": "Unauthorized",
			})
			return
		}

		city := r.URL.Query().Get("city")
		if city == "" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"message": "city is required",
			})
			return
		}
		if !allowed.IsAllowed(city) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"message": "City not found",
			})
			return
		}

		page := 1
		if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
			page = v
		}

		total := listingCount(city)
		start := (page - 1) * perPage
		end := min(start+perPage, total)

		listings := make([]domain.Listing, 0, perPage)
		for i := start; i < end; i++ {
			listings = append(listings, generateListing(city, i))
		}

		writeJSON(w, http.StatusOK, domain.SearchResults{
			Listings: listings,
			PagiInfo: &domain.PagiInfo{Count: total, Page: page, PerPage: perPage},
		})
		logger.Info("listings", "city", city, "page", page, "returned", len(listings), "total", total)
	}
}

// listingCount gives every city a stable number of listings between 0 and 149.
func listingCount(city string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(city)) //nolint:errcheck // hash writes never fail
	return int(h.Sum32() % 150)
}

func generateListing(city string, i int) domain.Listing {
	name := strings.TrimSpace(city)
	id := int64(1000 + i)
	img := fmt.Sprintf("https://picsum.photos/seed/%s-%d/640/480", strings.ReplaceAll(name, " ", "-"), i)

	return domain.Listing{
		ID:           id,
		ListingID:    fmt.Sprintf("PS-%06d", id),
		Title:        fmt.Sprintf("%s Retreat #%d", name, i+1),
		Nickname:     fmt.Sprintf("%s-%d", strings.ToLower(strings.ReplaceAll(name, " ", "-")), i+1),
		Picture:      &domain.Picture{Original: img, Thumbnail: img},
		Beds:         float64(1 + i%5),
		Baths:        float64(1+i%3) + 0.5*float64(i%2),
		Accommodates: 2 + 2*(i%5),
		CityName:     name,
		ExtraInfo:    map[string]any{"contact_phone": fmt.Sprintf("+1 305 555 %04d", i)},
	}
}
