package client

import (
	"context"
	"net/url"
)

// Cities returns the cities the server accepts, filtered by term when set.
func (c *Client) Cities(ctx context.Context, term string) ([]string, error) {
	path := "/api/v1/cities"
	if term != "" {
		path += "?" + url.Values{"q": {term}}.Encode()
	}

	var names []string
	if err := c.get(ctx, path, &names); err != nil {
		return nil, err
	}
	return names, nil
}
