package views

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"asp_listings/services"
	"asp_listings/tui/styles"
)

type featuredMsg struct {
	err error
}

// Featured is the home tab: the first few listings of every kind.
type Featured struct {
	ctx           context.Context
	service       *services.FeaturedService
	names         map[string]string
	width, height int
	loading       bool
	err           error
}

func NewFeatured(ctx context.Context, service *services.FeaturedService, names map[string]string) Featured {
	return Featured{ctx: ctx, service: service, names: names, loading: true}
}

func (f Featured) Init() tea.Cmd {
	return f.Refresh()
}

func (f Featured) Refresh() tea.Cmd {
	service, ctx := f.service, f.ctx
	return func() tea.Msg {
		return featuredMsg{err: service.Refresh(ctx)}
	}
}

func (f Featured) SetSize(w, h int) Featured {
	f.width = w
	f.height = h
	return f
}

func (f Featured) Update(msg tea.Msg) (Featured, tea.Cmd) {
	switch msg := msg.(type) {
	case featuredMsg:
		f.loading = false
		f.err = msg.err
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.height = msg.Height - 4
	}
	return f, nil
}

func (f Featured) View() string {
	header := styles.Title.Render("Featured")
	switch {
	case f.loading:
		header += styles.StatusPending.Render(" ◐ loading")
	case f.err != nil:
		header += styles.StatusError.Render(" ✗ " + f.err.Error())
	case !f.service.RefreshedAt().IsZero():
		header += styles.Muted.Render(" updated " + relativeTime(f.service.RefreshedAt()))
	}

	width := 36
	if f.width > 0 {
		width = f.width/3 - 4
		if width < 30 {
			width = 30
		}
	}

	var cards []string
	for _, kind := range f.service.Kinds() {
		cards = append(cards, f.renderCard(kind, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
	)
}

func (f Featured) renderCard(kind string, width int) string {
	name := f.names[kind]
	if name == "" {
		name = kind
	}
	lines := []string{styles.StatValue.Render(name)}

	rows := f.service.Rows(kind)
	if len(rows) == 0 {
		lines = append(lines, styles.Muted.Render("Nothing to show yet"))
	}
	for _, r := range rows {
		lines = append(lines,
			"",
			truncate(r.Title, width-2),
			styles.Muted.Render(truncate(r.Location, width-2)),
			styles.StatLabel.Render(fmt.Sprintf("%s · %s", r.Price, r.Beds))+" "+styles.Badges(r.Badges),
		)
	}
	return styles.KindCardBorder.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
