// Package boom provides a client for the Boom listings API, abstracted behind
// interfaces for testability. A TokenManager owns the single bearer token and
// a Client issues authenticated listings searches with it.
package boom

import (
	"context"
	"encoding/json"
)

const defaultBaseURL = "https://app.boomnow.com/open_api/v1"

// HouseSearcher fetches one page of listings for a city. The returned JSON is
// the upstream body, untouched.
type HouseSearcher interface {
	SearchHouses(ctx context.Context, city string, page int) (json.RawMessage, error)
}

// TokenProvider hands out bearer tokens for upstream calls.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
	Configured() bool
}
