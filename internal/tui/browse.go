// Package tui drives the search widget from the terminal with bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/donaldgifford/property-search/internal/widget"
	domain "github.com/donaldgifford/property-search/pkg/types"
)

// linePx converts rendered lines to the pixel units the widget's scroll
// threshold is expressed in.
const linePx = 20

const (
	defaultHeight = 24
	chromeLines   = 4 // title, summary, blank line, help
	linesPerCard  = 4
)

// resultsMsg carries the outcome of one page request.
type resultsMsg struct {
	req widget.Request
	res *domain.SearchResults
	err error
}

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cardTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231"))
)

// Browser is the root model of the browse screen.
type Browser struct {
	ctx      context.Context
	widget   *widget.Widget
	searcher widget.Searcher
	input    textinput.Model

	cursor int // highlighted suggestion
	offset int // first visible results line
	width  int
	height int

	pending *widget.Request
}

// New creates a Browser. When location is not empty the widget is restored
// from it and a results location starts searching immediately.
func New(ctx context.Context, w *widget.Widget, s widget.Searcher, location string) (*Browser, error) {
	ti := textinput.New()
	ti.Placeholder = "Type to search cities or click to see all..."
	ti.CharLimit = 64
	ti.Width = 48
	ti.Focus()

	b := &Browser{
		ctx:      ctx,
		widget:   w,
		searcher: s,
		input:    ti,
		height:   defaultHeight,
	}

	if location != "" {
		if err := w.Restore(location); err != nil {
			return nil, err
		}
		b.input.SetValue(w.Term())
		if strings.HasPrefix(w.Location(), "/results") {
			req, err := w.StartSearch()
			if err != nil {
				return nil, err
			}
			b.pending = &req
		}
	}

	return b, nil
}

// Init implements tea.Model
func (b *Browser) Init() tea.Cmd {
	if b.pending != nil {
		req := *b.pending
		b.pending = nil
		return tea.Batch(textinput.Blink, b.fetch(req))
	}
	return textinput.Blink
}

func (b *Browser) fetch(req widget.Request) tea.Cmd {
	return func() tea.Msg {
		res, err := b.searcher.Search(b.ctx, req.City, req.Page)
		return resultsMsg{req: req, res: res, err: err}
	}
}

// Update implements tea.Model
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil

	case resultsMsg:
		b.widget.Complete(msg.req, msg.res, msg.err)
		return b, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return b, tea.Quit
		}

		switch b.widget.State() {
		case widget.StateIdle, widget.StateDropdownOpen, widget.StateCitySelected:
			return b.updateSearch(msg)
		case widget.StateError:
			return b.updateError(msg)
		default:
			return b.updateResults(msg)
		}
	}

	return b, nil
}

// commit selects city and copies it into the input. The input is left as
// typed when the widget refuses the selection.
func (b *Browser) commit(city string) bool {
	if err := b.widget.Select(city); err != nil {
		return false
	}
	b.input.SetValue(b.widget.Term())
	b.input.CursorEnd()
	return true
}

func (b *Browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	suggestions := b.widget.Suggestions()

	switch msg.String() {
	case "up":
		if b.widget.DropdownOpen() && b.cursor > 0 {
			b.cursor--
		}
		return b, nil
	case "down":
		if !b.widget.DropdownOpen() {
			b.widget.Open()
			b.cursor = 0
			return b, nil
		}
		if b.cursor < len(suggestions)-1 {
			b.cursor++
		}
		return b, nil
	case "esc":
		if b.widget.DropdownOpen() {
			b.widget.Dismiss()
			return b, nil
		}
		return b, tea.Quit
	case "enter":
		if b.widget.DropdownOpen() && len(suggestions) > 0 {
			b.commit(suggestions[min(b.cursor, len(suggestions)-1)])
			return b, nil
		}
		req, err := b.widget.StartSearch()
		if err != nil {
			return b, nil
		}
		b.offset = 0
		return b, b.fetch(req)
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	if b.input.Value() != b.widget.Term() {
		b.widget.Type(b.input.Value())
		b.cursor = 0
	}
	return b, cmd
}

func (b *Browser) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc":
		b.backToSearch()
		return b, nil
	case "q":
		return b, tea.Quit
	case "up", "k":
		b.scroll(-1)
		return b, nil
	case "down", "j":
		return b, b.scroll(1)
	case "pgdown", " ":
		return b, b.scroll(b.viewHeight())
	case "pgup":
		b.scroll(-b.viewHeight())
		return b, nil
	case "end", "G":
		return b, b.scroll(len(b.resultLines()))
	}
	return b, nil
}

func (b *Browser) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "b", "esc":
		b.backToSearch()
	case "q":
		return b, tea.Quit
	}
	return b, nil
}

func (b *Browser) backToSearch() {
	b.widget.BackToSearch()
	b.input.SetValue(b.widget.Term())
	b.input.CursorEnd()
	b.offset = 0
	b.cursor = 0
}

// scroll moves the results view by delta lines and asks the widget whether
// the next page should load.
func (b *Browser) scroll(delta int) tea.Cmd {
	total := len(b.resultLines())
	maxOffset := max(total-b.viewHeight(), 0)
	b.offset = min(max(b.offset+delta, 0), maxOffset)

	req, ok := b.widget.ScrollLoad(b.offset*linePx, b.viewHeight()*linePx, total*linePx)
	if !ok {
		return nil
	}
	return b.fetch(req)
}

func (b *Browser) viewHeight() int {
	return max(b.height-chromeLines, 1)
}

// View implements tea.Model
func (b *Browser) View() string {
	switch b.widget.State() {
	case widget.StateIdle, widget.StateDropdownOpen, widget.StateCitySelected:
		return b.viewSearch()
	case widget.StateError:
		return b.viewError()
	case widget.StateSearching:
		return titleStyle.Render("Property Search") + "\n\n" +
			normalStyle.Render(fmt.Sprintf("Searching for properties in %s...", b.widget.City())) + "\n"
	default:
		return b.viewResults()
	}
}

func (b *Browser) viewSearch() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Property Search"))
	s.WriteString("\n\n")
	s.WriteString("Search Cities: ")
	s.WriteString(b.input.View())
	s.WriteString("\n")

	if b.widget.DropdownOpen() {
		suggestions := b.widget.Suggestions()
		if len(suggestions) == 0 {
			s.WriteString("  " + helpStyle.Render(widget.NoCitiesMessage) + "\n")
		}
		start := max(0, b.cursor-b.viewHeight()+1)
		end := min(len(suggestions), start+b.viewHeight())
		for i := start; i < end; i++ {
			cursor := "  "
			style := normalStyle
			if i == b.cursor {
				cursor = "> "
				style = selectedStyle
			}
			// Quote names with surrounding spaces so "Mijas " stays distinguishable.
			name := suggestions[i]
			if strings.TrimSpace(name) != name {
				name = fmt.Sprintf("%q", name)
			}
			s.WriteString(cursor + style.Render(name) + "\n")
		}
	}

	s.WriteString("\n")
	if city := b.widget.City(); city != "" {
		s.WriteString(normalStyle.Render("Selected: "+city) + "\n")
		s.WriteString(helpStyle.Render("enter: search properties • ↓: show cities • esc: quit"))
	} else {
		s.WriteString(helpStyle.Render("type to filter • ↑/↓: move • enter: select • esc: close"))
	}
	return s.String()
}

func (b *Browser) viewError() string {
	return titleStyle.Render("Error") + "\n\n" +
		errorStyle.Render(b.widget.Err()) + "\n\n" +
		helpStyle.Render("enter/b: back to search • q: quit")
}

func (b *Browser) viewResults() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Properties in " + b.widget.City()))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(b.widget.Summary()))
	s.WriteString("\n\n")

	lines := b.resultLines()
	end := min(len(lines), b.offset+b.viewHeight())
	for _, line := range lines[min(b.offset, end):end] {
		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("↑/↓: scroll • b: back to search • q: quit"))
	return s.String()
}

// resultLines renders every loaded listing plus the loading and end markers.
func (b *Browser) resultLines() []string {
	listings := b.widget.Listings()
	lines := make([]string, 0, len(listings)*linesPerCard+1)

	for i := range listings {
		lines = append(lines, card(&listings[i])...)
	}

	switch {
	case b.widget.State() == widget.StateLoadingMore:
		lines = append(lines, helpStyle.Render("Loading more properties..."))
	case b.widget.ReachedEnd():
		lines = append(lines, helpStyle.Render("You've reached the end! No more properties to load."))
	case len(listings) == 0:
		lines = append(lines, helpStyle.Render("No properties found."))
	}
	return lines
}

func card(l *domain.Listing) []string {
	details := fmt.Sprintf("%s • %s • %s • %s",
		plural(l.Beds, "bed"), plural(l.Baths, "bath"),
		plural(float64(l.Accommodates), "guest"), l.CityName)
	if phone := l.ContactPhone(); phone != "" {
		details += " • " + phone
	}

	return []string{
		cardTitle.Render(l.Title),
		normalStyle.Render(l.Nickname),
		helpStyle.Render(details),
		"",
	}
}

func plural(n float64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%g %ss", n, unit)
}
