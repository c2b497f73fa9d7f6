// Package domain defines the client-side view of property search results.
package domain

import (
	"encoding/json"
	"fmt"
)

// SearchResults is the data of a successful search response. A Boom page
// carries Listings and PagiInfo; a mock-mode result carries City, an empty
// Results list and Message instead.
type SearchResults struct {
	Listings []Listing `json:"listings"`
	PagiInfo *PagiInfo `json:"pagi_info,omitempty"`

	City    string    `json:"city,omitempty"`
	Results []Listing `json:"results,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Items returns the listings of the page regardless of result shape.
func (r *SearchResults) Items() []Listing {
	if len(r.Listings) > 0 {
		return r.Listings
	}
	return r.Results
}

// PagiInfo is Boom's pagination block.
type PagiInfo struct {
	Count   int `json:"count"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// TotalPages returns the number of pages needed to show Count listings.
func (p PagiInfo) TotalPages() int {
	if p.PerPage <= 0 {
		return 0
	}
	return (p.Count + p.PerPage - 1) / p.PerPage
}

// Listing is a single Boom property listing, decoded for display.
type Listing struct {
	ID           int64          `json:"id"`
	ListingID    string         `json:"listing_id,omitempty"`
	Title        string         `json:"title"`
	Nickname     string         `json:"nickname,omitempty"`
	Picture      *Picture       `json:"picture,omitempty"`
	Pictures     []Picture      `json:"pictures,omitempty"`
	Beds         float64        `json:"beds"`
	Baths        float64        `json:"baths"`
	Accommodates int            `json:"accommodates"`
	CityName     string         `json:"city_name"`
	Lat          float64        `json:"lat,omitempty"`
	Lng          float64        `json:"lng,omitempty"`
	Neighborhood string         `json:"neighborhood,omitempty"`
	ExtraInfo    map[string]any `json:"extra_info,omitempty"`
}

// Images returns the listing's pictures, falling back to the single cover
// picture.
func (l *Listing) Images() []Picture {
	if len(l.Pictures) > 0 {
		return l.Pictures
	}
	if l.Picture != nil && l.Picture.Original != "" {
		return []Picture{*l.Picture}
	}
	return nil
}

// ContactPhone returns extra_info.contact_phone, if present.
func (l *Listing) ContactPhone() string {
	if v, ok := l.ExtraInfo["contact_phone"]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

// Picture is a listing image. Boom sends either a bare URL or an object with
// an original URL and optional thumbnail.
type Picture struct {
	Original  string `json:"original"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// UnmarshalJSON accepts both the string and the object form.
func (p *Picture) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*p = Picture{Original: url}
		return nil
	}

	type picture Picture
	var obj picture
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding picture: %w", err)
	}
	*p = Picture(obj)
	return nil
}
