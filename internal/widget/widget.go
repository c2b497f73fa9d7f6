// Package widget implements the property search widget as a UI-agnostic state
// machine: city filtering and selection, search submission, infinite-scroll
// paging and error recovery. A Widget is not safe for concurrent use; drivers
// perform requests elsewhere and feed the outcome back through Complete.
package widget

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/donaldgifford/property-search/internal/cities"
	domain "github.com/donaldgifford/property-search/pkg/types"
)

// State is the widget's current phase.
type State int

// Widget states.
const (
	StateIdle State = iota
	StateDropdownOpen
	StateCitySelected
	StateSearching
	StateResultsLoaded
	StateLoadingMore
	StateError
)

var stateNames = [...]string{
	StateIdle:          "idle",
	StateDropdownOpen:  "dropdown-open",
	StateCitySelected:  "city-selected",
	StateSearching:     "searching",
	StateResultsLoaded: "results-loaded",
	StateLoadingMore:   "loading-more",
	StateError:         "error",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

const (
	// ScrollThreshold is the distance in pixels from the bottom of the results
	// at which the next page is requested.
	ScrollThreshold = 100

	// ErrorPrefix starts every error message shown to the user.
	ErrorPrefix = "Failed to search properties: "

	// NoCitiesMessage is shown when the filter matches nothing.
	NoCitiesMessage = "No cities found"

	resultsPath = "/results"
	searchPath  = "/"
)

// Errors returned by Widget operations.
var (
	ErrNoCity          = errors.New("no city selected")
	ErrUnknownCity     = errors.New("city is not in the list")
	ErrBusy            = errors.New("a search is already in progress")
	ErrUnknownLocation = errors.New("unknown location")
)

// Searcher fetches one page of results for a city.
type Searcher interface {
	Search(ctx context.Context, city string, page int) (*domain.SearchResults, error)
}

// Request describes one page fetch issued by the widget.
type Request struct {
	City   string
	Page   int
	Append bool

	seq uint64
}

// Widget holds the state of one search widget.
type Widget struct {
	cities *cities.Allowlist

	state     State
	term      string
	city      string
	submitted bool

	listings []domain.Listing
	pagi     *domain.PagiInfo
	page     int
	err      string

	// seq identifies the newest outstanding request; older completions are
	// dropped.
	seq uint64
}

// New creates a Widget offering the cities in allowed.
func New(allowed *cities.Allowlist) *Widget {
	return &Widget{cities: allowed}
}

// State returns the current state.
func (w *Widget) State() State { return w.state }

// Term returns the text in the city input.
func (w *Widget) Term() string { return w.term }

// City returns the selected city, or "" when none is selected.
func (w *Widget) City() string { return w.city }

// DropdownOpen reports whether the suggestion list is showing.
func (w *Widget) DropdownOpen() bool { return w.state == StateDropdownOpen }

func (w *Widget) editable() bool {
	switch w.state {
	case StateIdle, StateDropdownOpen, StateCitySelected:
		return true
	default:
		return false
	}
}

// Open shows the suggestion list (the input was clicked).
func (w *Widget) Open() {
	if w.editable() {
		w.state = StateDropdownOpen
	}
}

// Type replaces the input text and shows the suggestion list. The selected
// city is kept until another one is selected.
func (w *Widget) Type(term string) {
	if !w.editable() {
		return
	}
	w.term = term
	w.state = StateDropdownOpen
}

// Suggestions returns the cities matching the input text, in list order.
func (w *Widget) Suggestions() []string {
	return w.cities.Filter(w.term)
}

// Select chooses city, fills the input with it and closes the list.
func (w *Widget) Select(city string) error {
	if !w.editable() {
		return ErrBusy
	}
	if !w.cities.IsAllowed(city) {
		return fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	w.city = city
	w.term = city
	w.state = StateCitySelected
	return nil
}

// Dismiss closes the suggestion list (a click outside it).
func (w *Widget) Dismiss() {
	if w.state != StateDropdownOpen {
		return
	}
	w.state = w.restingState()
}

func (w *Widget) restingState() State {
	if w.city != "" {
		return StateCitySelected
	}
	return StateIdle
}

// Location returns the navigable location of the widget: the results
// location once a search was submitted, the search form otherwise.
func (w *Widget) Location() string {
	if !w.submitted || w.city == "" {
		return searchPath
	}
	return resultsPath + "?" + url.Values{"city": {w.city}}.Encode()
}

// Restore recovers the widget from a location produced by Location, as on
// direct access or back navigation. A results location selects its city
// without checking the list; the server decides whether it is valid. The
// caller starts the search.
func (w *Widget) Restore(location string) error {
	u, err := url.Parse(location)
	if err != nil {
		return fmt.Errorf("parsing location: %w", err)
	}

	w.seq++
	w.clearResults()

	switch u.Path {
	case resultsPath:
		city := u.Query().Get("city")
		if city == "" {
			w.submitted = false
			w.state = w.restingState()
			return nil
		}
		w.city = city
		w.term = city
		w.submitted = true
		w.state = StateCitySelected
	case searchPath, "":
		w.submitted = false
		if city := u.Query().Get("city"); city != "" && w.city == "" {
			w.city = city
			w.term = city
		}
		w.state = w.restingState()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownLocation, u.Path)
	}
	return nil
}

// StartSearch submits the selected city and returns the first page request.
func (w *Widget) StartSearch() (Request, error) {
	if w.city == "" {
		return Request{}, ErrNoCity
	}
	if w.state == StateSearching || w.state == StateLoadingMore {
		return Request{}, ErrBusy
	}

	w.seq++
	w.clearResults()
	w.submitted = true
	w.state = StateSearching
	return Request{City: w.city, Page: 1, seq: w.seq}, nil
}

// StartLoadMore returns the request for the next page when results are loaded
// and more remain. ok is false otherwise.
func (w *Widget) StartLoadMore() (req Request, ok bool) {
	if w.state != StateResultsLoaded || !w.HasMore() {
		return Request{}, false
	}

	w.seq++
	w.state = StateLoadingMore
	return Request{City: w.city, Page: w.page + 1, Append: true, seq: w.seq}, true
}

// Complete applies the outcome of req. The first page replaces the listings,
// later pages are appended as received. A failure of either kind moves the
// widget to StateError. Outcomes of superseded requests are ignored.
func (w *Widget) Complete(req Request, res *domain.SearchResults, err error) {
	if req.seq != w.seq {
		return
	}
	if w.state != StateSearching && w.state != StateLoadingMore {
		return
	}

	if err == nil && res == nil {
		err = errors.New("empty response")
	}
	if err != nil {
		w.err = ErrorPrefix + err.Error()
		w.state = StateError
		return
	}

	items := res.Items()
	if req.Append {
		w.listings = append(w.listings, items...)
	} else {
		w.listings = append(make([]domain.Listing, 0, len(items)), items...)
	}
	w.pagi = res.PagiInfo
	w.page = req.Page
	w.err = ""
	w.state = StateResultsLoaded
}

// Run performs req with s and applies the outcome.
func (w *Widget) Run(ctx context.Context, s Searcher, req Request) {
	res, err := s.Search(ctx, req.City, req.Page)
	w.Complete(req, res, err)
}

// Listings returns every listing loaded so far.
func (w *Widget) Listings() []domain.Listing { return w.listings }

// PagiInfo returns the pagination block of the last loaded page, or nil.
func (w *Widget) PagiInfo() *domain.PagiInfo { return w.pagi }

// CurrentPage returns the last loaded page, or 0 before any page loaded.
func (w *Widget) CurrentPage() int { return w.page }

// Err returns the message shown in StateError.
func (w *Widget) Err() string { return w.err }

// HasMore reports whether pages beyond the current one exist.
func (w *Widget) HasMore() bool {
	if w.pagi == nil {
		return false
	}
	return w.page*w.pagi.PerPage < w.pagi.Count
}

// ReachedEnd reports whether every page has been loaded.
func (w *Widget) ReachedEnd() bool {
	return w.pagi != nil && !w.HasMore()
}

// NearBottom reports whether a scroll position is within ScrollThreshold of
// the bottom of the content.
func NearBottom(scrollTop, clientHeight, scrollHeight int) bool {
	return scrollTop+clientHeight >= scrollHeight-ScrollThreshold
}

// ScrollLoad handles a scroll event, starting the next page when the view is
// near the bottom, more pages remain and nothing is loading.
func (w *Widget) ScrollLoad(scrollTop, clientHeight, scrollHeight int) (Request, bool) {
	if !NearBottom(scrollTop, clientHeight, scrollHeight) {
		return Request{}, false
	}
	return w.StartLoadMore()
}

// Summary describes the loaded results, e.g. "Showing 50 of 99 properties
// (Page 2)". It is empty before the first page with pagination info.
func (w *Widget) Summary() string {
	if w.pagi == nil {
		return ""
	}
	s := fmt.Sprintf("Showing %d of %d properties", len(w.listings), w.pagi.Count)
	if w.page > 1 {
		s += fmt.Sprintf(" (Page %d)", w.page)
	}
	return s
}

// BackToSearch returns to the search form keeping the selected city. Any
// outstanding request is abandoned.
func (w *Widget) BackToSearch() {
	w.seq++
	w.clearResults()
	w.submitted = false
	w.term = w.city
	w.state = w.restingState()
}

func (w *Widget) clearResults() {
	w.listings = nil
	w.pagi = nil
	w.page = 0
	w.err = ""
}
