// Package tui is the terminal browser: a featured home tab plus one
// infinite-scroll tab per listing kind.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"asp_listings/services"
	"asp_listings/tui/styles"
	"asp_listings/tui/views"
)

type tickMsg time.Time

type model struct {
	activeTab     int
	width, height int
	refreshEvery  time.Duration

	featured views.Featured
	listings []views.Listings
}

func initialModel(ctx context.Context, browsers []services.Browser, featured *services.FeaturedService, initialKind string, refreshEvery time.Duration) model {
	names := make(map[string]string, len(browsers))
	m := model{
		featured:     views.NewFeatured(ctx, featured, names),
		refreshEvery: refreshEvery,
	}
	for i, b := range browsers {
		names[b.Kind()] = b.Name()
		m.listings = append(m.listings, views.NewListings(ctx, b))
		if b.Kind() == initialKind {
			m.activeTab = i + 1
		}
	}
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.featured.Init(), m.tickCmd()}
	for _, l := range m.listings {
		cmds = append(cmds, l.Init())
	}
	return tea.Batch(cmds...)
}

func (m model) tickCmd() tea.Cmd {
	if m.refreshEvery <= 0 {
		return nil
	}
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) tabCount() int {
	return len(m.listings) + 1
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.activeTab > 0 && m.listings[m.activeTab-1].Capturing() {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % m.tabCount()
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + m.tabCount() - 1) % m.tabCount()
			return m, nil
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if n := int(msg.String()[0] - '1'); n < m.tabCount() {
				m.activeTab = n
			}
			return m, nil
		case "R":
			if m.activeTab == 0 {
				return m, m.featured.Refresh()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.featured = m.featured.SetSize(msg.Width, msg.Height-4)
		for i := range m.listings {
			m.listings[i] = m.listings[i].SetSize(msg.Width, msg.Height-4)
		}

	case tickMsg:
		cmds = append(cmds, m.featured.Refresh(), m.tickCmd())
	}

	// Keys go to the active tab only; everything else fans out and each
	// view ignores what is not addressed to its kind.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		if m.activeTab > 0 {
			var cmd tea.Cmd
			m.listings[m.activeTab-1], cmd = m.listings[m.activeTab-1].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.featured, cmd = m.featured.Update(msg)
	cmds = append(cmds, cmd)
	for i := range m.listings {
		m.listings[i], cmd = m.listings[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), m.renderContent(), m.renderStatusBar())
}

func (m model) renderTabs() string {
	names := []string{"Home"}
	for _, l := range m.listings {
		names = append(names, l.Name())
	}
	var rendered []string
	for i, name := range names {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == m.activeTab {
			rendered = append(rendered, styles.TabActive.Render(label))
		} else {
			rendered = append(rendered, styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}

func (m model) renderContent() string {
	if m.activeTab == 0 {
		return m.featured.View()
	}
	return m.listings[m.activeTab-1].View()
}

func (m model) renderStatusBar() string {
	help := "tab Next  1-9 Tab  R Refresh  q Quit"
	if m.activeTab > 0 {
		help = "↑↓ Move  / Search  p t b f v o Filters  x Clear  enter Details  r Reload  tab Next  q Quit"
	}
	return styles.StatusBar.Render(help)
}

// Run starts the full-screen browser and blocks until the user quits.
func Run(ctx context.Context, browsers []services.Browser, featured *services.FeaturedService, initialKind string, refreshEvery time.Duration) error {
	p := tea.NewProgram(
		initialModel(ctx, browsers, featured, initialKind, refreshEvery),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
