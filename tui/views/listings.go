package views

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"asp_listings/amenity"
	"asp_listings/listing"
	"asp_listings/propfusion"
	"asp_listings/services"
	"asp_listings/tui/styles"
)

type fetchedMsg struct {
	kind    string
	fetched services.Fetched
}

type detailMsg struct {
	kind   string
	detail *services.Detail
	err    error
}

// Listings is the infinite-scroll list of one listing kind.
type Listings struct {
	ctx           context.Context
	browser       services.Browser
	width, height int
	rows          []services.Row
	selectedRow   int

	search    textinput.Model
	searching bool

	detail      *services.Detail
	detailErr   error
	showDetail  bool
	notice      string
	noticeUntil time.Time
}

func NewListings(ctx context.Context, browser services.Browser) Listings {
	ti := textinput.New()
	ti.Placeholder = "community, title or developer"
	ti.Prompt = "/ "
	ti.CharLimit = 80
	return Listings{ctx: ctx, browser: browser, search: ti}
}

func (l Listings) Kind() string { return l.browser.Kind() }
func (l Listings) Name() string { return l.browser.Name() }

// Capturing reports whether keys should go to the search box instead of the
// global bindings.
func (l Listings) Capturing() bool {
	return l.searching
}

func (l Listings) Init() tea.Cmd {
	return l.fetch(l.browser.Reset())
}

func (l Listings) fetch(req listing.Request) tea.Cmd {
	return l.fetchWith(l.ctx, req)
}

// reload asks the network again instead of answering from the response cache.
func (l Listings) reload(req listing.Request) tea.Cmd {
	return l.fetchWith(propfusion.BypassCache(l.ctx), req)
}

func (l Listings) fetchWith(ctx context.Context, req listing.Request) tea.Cmd {
	browser := l.browser
	return func() tea.Msg {
		return fetchedMsg{kind: browser.Kind(), fetched: browser.Fetch(ctx, req)}
	}
}

func (l Listings) lookup(id string) tea.Cmd {
	browser, ctx := l.browser, l.ctx
	return func() tea.Msg {
		d, err := browser.Lookup(ctx, id)
		return detailMsg{kind: browser.Kind(), detail: d, err: err}
	}
}

func (l Listings) SetSize(w, h int) Listings {
	l.width = w
	l.height = h
	return l
}

func (l Listings) Update(msg tea.Msg) (Listings, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		if msg.kind != l.browser.Kind() {
			return l, nil
		}
		if !msg.fetched.Apply() {
			return l, nil
		}
		l.refreshRows()
		return l, l.loadMoreIfAtEnd()

	case detailMsg:
		if msg.kind != l.browser.Kind() {
			return l, nil
		}
		l.detail, l.detailErr = msg.detail, msg.err
		return l, nil

	case tea.WindowSizeMsg:
		l.width = msg.Width
		l.height = msg.Height - 4
		return l, l.loadMoreIfAtEnd()

	case tea.KeyMsg:
		if l.searching {
			return l.updateSearch(msg)
		}
		return l.updateKeys(msg)
	}
	return l, nil
}

func (l Listings) updateSearch(msg tea.KeyMsg) (Listings, tea.Cmd) {
	switch msg.String() {
	case "enter":
		l.searching = false
		l.search.Blur()
		q := l.browser.Query()
		q.Search = strings.TrimSpace(l.search.Value())
		return l.setQuery(q)
	case "esc":
		l.searching = false
		l.search.Blur()
		l.search.SetValue(l.browser.Query().Search)
		return l, nil
	}
	var cmd tea.Cmd
	l.search, cmd = l.search.Update(msg)
	return l, cmd
}

func (l Listings) updateKeys(msg tea.KeyMsg) (Listings, tea.Cmd) {
	cfg := l.browser.Config()
	q := l.browser.Query()

	switch msg.String() {
	case "up", "k":
		if l.selectedRow > 0 {
			l.selectedRow--
		}
	case "down", "j":
		if l.selectedRow < len(l.rows)-1 {
			l.selectedRow++
		}
		return l, l.loadMoreIfAtEnd()
	case "pgdown", "ctrl+d":
		l.selectedRow += 10
		if l.selectedRow >= len(l.rows) {
			l.selectedRow = max(len(l.rows)-1, 0)
		}
		return l, l.loadMoreIfAtEnd()
	case "pgup", "ctrl+u":
		l.selectedRow -= 10
		if l.selectedRow < 0 {
			l.selectedRow = 0
		}
	case "home", "g":
		l.selectedRow = 0
	case "end", "G":
		l.selectedRow = max(len(l.rows)-1, 0)
		return l, l.loadMoreIfAtEnd()

	case "/":
		l.searching = true
		l.search.SetValue(q.Search)
		return l, l.search.Focus()
	case "p":
		q.PriceBucket = cycle(append([]string{""}, cfg.PriceBuckets.Names()...), q.PriceBucket)
		return l.setQuery(q)
	case "t":
		q.PropertyType = cycle(append([]string{""}, cfg.Filters.PropertyTypes...), q.PropertyType)
		return l.setQuery(q)
	case "b":
		q.Bedrooms = cycleBeds(cfg.Filters.Bedrooms, q.Bedrooms)
		return l.setQuery(q)
	case "f":
		q.Furnished = cycle(append([]string{""}, cfg.Filters.Furnished...), q.Furnished)
		return l.setQuery(q)
	case "v":
		q.Developer = cycle(append([]string{""}, cfg.Filters.Developers...), q.Developer)
		return l.setQuery(q)
	case "o":
		sorts := make([]string, len(cfg.Filters.Sorts))
		for i, s := range cfg.Filters.Sorts {
			sorts[i] = string(s)
		}
		current := string(q.Sort)
		if current == "" && len(sorts) > 0 {
			current = sorts[0]
		}
		q.Sort = listing.SortOrder(cycle(sorts, current))
		return l.setQuery(q)
	case "x":
		return l.setQuery(listing.Query{})

	case "r":
		if l.browser.Status().Err != nil {
			l.notify("Retrying...")
			l.rows, l.selectedRow = nil, 0
			return l, l.fetch(l.browser.Retry())
		}
		l.notify("Reloading")
		l.rows, l.selectedRow = nil, 0
		return l, l.reload(l.browser.Reset())

	case "enter":
		if len(l.rows) == 0 {
			return l, nil
		}
		l.showDetail = true
		l.detail, l.detailErr = nil, nil
		return l, l.lookup(l.rows[l.selectedRow].ID)
	case "esc":
		l.showDetail = false
	}
	return l, nil
}

// setQuery applies q and, when it changed the session, starts page 1.
func (l Listings) setQuery(q listing.Query) (Listings, tea.Cmd) {
	req, changed, err := l.browser.SetQuery(q)
	if err != nil {
		l.notify(err.Error())
		return l, nil
	}
	if !changed {
		return l, nil
	}
	l.rows, l.selectedRow = nil, 0
	l.showDetail = false
	return l, l.fetch(req)
}

func (l *Listings) refreshRows() {
	l.rows = l.browser.Rows()
	if l.selectedRow >= len(l.rows) {
		l.selectedRow = max(len(l.rows)-1, 0)
	}
}

func (l *Listings) notify(text string) {
	l.notice = text
	l.noticeUntil = time.Now().Add(2 * time.Second)
}

// loadMoreIfAtEnd requests the next page once the last row, or the empty
// list placeholder, is on screen.
func (l Listings) loadMoreIfAtEnd() tea.Cmd {
	_, end := l.window()
	if end < len(l.rows) {
		return nil
	}
	req, ok := l.browser.LoadMore()
	if !ok {
		return nil
	}
	return l.fetch(req)
}

func (l Listings) getVisibleRows() int {
	rows := 20
	if l.height > 0 {
		rows = (l.height * 60) / 100
		if l.showDetail {
			rows = (l.height * 40) / 100
		}
		if rows < 5 {
			rows = 5
		}
	}
	return rows
}

// window returns the [start, end) range of rows on screen.
func (l Listings) window() (int, int) {
	visible := l.getVisibleRows()
	start := 0
	if l.selectedRow >= visible {
		start = l.selectedRow - visible + 1
	}
	end := start + visible
	if end > len(l.rows) {
		end = len(l.rows)
	}
	return start, end
}

func (l Listings) View() string {
	st := l.browser.Status()

	count := fmt.Sprintf("  %d/%d", len(l.rows), st.Total)
	if len(l.rows) != st.Loaded {
		count += styles.Muted.Render(fmt.Sprintf(" (%d loaded)", st.Loaded))
	}
	header := styles.Title.Render(l.browser.Name()) + styles.StatValue.Render(count)
	if time.Now().Before(l.noticeUntil) {
		header += "  " + styles.Notification.Render(l.notice)
	}

	parts := []string{header, l.renderFilters(st.Query)}
	if l.searching {
		parts = append(parts, l.search.View())
	}
	parts = append(parts, l.renderTable(), l.renderFooter(st))
	if l.showDetail {
		parts = append(parts, "", l.renderDetail())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (l Listings) renderFilters(q listing.Query) string {
	cfg := l.browser.Config()
	type control struct {
		key, label, value string
		shown             bool
	}
	beds := ""
	if q.Bedrooms != nil {
		beds = bedsLabel(*q.Bedrooms)
	}
	controls := []control{
		{"/", "Search", q.Search, true},
		{"p", "Price", q.PriceBucket, len(cfg.PriceBuckets) > 0},
		{"t", "Type", q.PropertyType, len(cfg.Filters.PropertyTypes) > 0},
		{"b", "Beds", beds, len(cfg.Filters.Bedrooms) > 0},
		{"f", "Furnished", q.Furnished, len(cfg.Filters.Furnished) > 0},
		{"v", "Developer", q.Developer, len(cfg.Filters.Developers) > 0},
		{"o", "Sort", string(q.Sort), len(cfg.Filters.Sorts) > 0},
	}

	var out []string
	for _, c := range controls {
		if !c.shown {
			continue
		}
		if c.value == "" {
			out = append(out, styles.Muted.Render(fmt.Sprintf("[%s] %s: any", c.key, c.label)))
			continue
		}
		out = append(out, styles.FilterActive.Render(fmt.Sprintf("[%s] %s: %s", c.key, c.label, c.value)))
	}
	return " " + strings.Join(out, " ") + styles.Muted.Render("  [x] clear")
}

func (l Listings) renderTable() string {
	header := fmt.Sprintf("%-38s %-30s %18s %-8s %-16s", "Title", "Location", "Price", "Beds", "Area")
	rows := styles.TableHeader.Render(header) + "\n"

	if len(l.rows) == 0 {
		return rows + styles.Muted.Render("  No listings match the current filters")
	}

	start, end := l.window()
	for i := start; i < end; i++ {
		r := l.rows[i]
		line := fmt.Sprintf("%-38s %-30s %18s %-8s %-16s",
			truncate(r.Title, 38),
			truncate(r.Location, 30),
			truncate(r.Price, 18),
			truncate(r.Beds, 8),
			truncate(r.Area, 16),
		)
		if i == l.selectedRow {
			rows += styles.TableSelected.Render(line) + " " + styles.Badges(r.Badges) + "\n"
		} else {
			rows += line + " " + styles.Badges(r.Badges) + "\n"
		}
	}

	if len(l.rows) > end-start {
		rows += styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", start+1, end, len(l.rows)))
	}
	return rows
}

func (l Listings) renderFooter(st listing.Status) string {
	switch {
	case st.State == listing.StateLoading && st.Loaded == 0:
		return styles.StatusPending.Render(" ◐ Loading " + strings.ToLower(l.browser.Name()) + "...")
	case st.State == listing.StateLoading:
		return styles.StatusPending.Render(" ◐ Loading more...")
	case st.Err != nil:
		return styles.StatusError.Render(" ✗ "+st.Err.Error()) + styles.Muted.Render("  [r] retry")
	case !st.HasMore && st.Loaded > 0:
		return styles.Muted.Render(" ✓ You've reached the end")
	}
	return ""
}

func (l Listings) renderDetail() string {
	half := l.width/2 - 2
	if half < 30 {
		half = 30
	}

	if l.detailErr != nil {
		msg := l.detailErr.Error()
		if errors.Is(l.detailErr, listing.ErrNotFound) {
			msg = "This listing is no longer available"
		}
		return styles.CardBorder.Width(half).Render(styles.StatusError.Render(msg))
	}
	if l.detail == nil {
		return styles.CardBorder.Width(half).Render(styles.StatusPending.Render("Loading details..."))
	}
	d := l.detail

	lines := []string{
		styles.StatValue.Render(truncate(d.Title, half-2)),
		styles.Muted.Render(d.Location),
		styles.StatValue.Render(d.Price) + "  " + styles.Badges(d.Badges),
		"",
	}
	for _, f := range d.Facts {
		lines = append(lines, styles.StatLabel.Render(f.Label+": ")+f.Value)
	}
	if d.Description != "" {
		desc := truncate(d.Description, 400)
		lines = append(lines, "")
		lines = append(lines, wrapText(desc, half-4)...)
	}
	info := styles.CardBorder.Width(half).Render(strings.Join(lines, "\n"))

	var side []string
	if d.Agent != nil && d.Agent.Name != "" {
		side = append(side, styles.StatLabel.Render("Agent: ")+d.Agent.Name)
	}
	for _, link := range []struct{ label, url string }{
		{"Call", d.Links.Call},
		{"WhatsApp", d.Links.WhatsApp},
		{"Email", d.Links.Email},
	} {
		if link.url != "" {
			side = append(side, styles.StatLabel.Render(link.label+": ")+truncate(link.url, half-12))
		}
	}
	for _, g := range amenity.Categorize(d.Amenities) {
		side = append(side, "", styles.StatValue.Render(amenity.Title(g.Category)))
		side = append(side, wrapText(strings.Join(g.Amenities, ", "), half-4)...)
	}
	if len(d.Photos) > 0 {
		side = append(side, "", styles.Muted.Render(fmt.Sprintf("%d photos", len(d.Photos))))
	}
	if len(side) == 0 {
		side = append(side, styles.Muted.Render("No agent details"))
	}
	contact := styles.KindCardBorder.Width(half).Render(strings.Join(side, "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, info, contact)
}

// cycle returns the option after current, wrapping around.
func cycle(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func cycleBeds(options []int, current *int) *int {
	if len(options) == 0 {
		return current
	}
	if current == nil {
		return listing.Beds(options[0])
	}
	for i, n := range options {
		if n == *current && i+1 < len(options) {
			return listing.Beds(options[i+1])
		}
	}
	return nil
}

func bedsLabel(n int) string {
	if n == 0 {
		return "Studio"
	}
	return strconv.Itoa(n)
}
