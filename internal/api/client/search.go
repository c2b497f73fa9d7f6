package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/property-search/pkg/types"
)

// Search returns one page of listings for city.
func (c *Client) Search(ctx context.Context, city string, page int) (*domain.SearchResults, error) {
	q := url.Values{}
	q.Set("city", city)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}

	var results domain.SearchResults
	if err := c.get(ctx, "/api/v1/search?"+q.Encode(), &results); err != nil {
		return nil, err
	}
	return &results, nil
}
