package styles

import (
	"github.com/charmbracelet/lipgloss"

	"asp_listings/format"
)

var (
	PrimaryColor   = lipgloss.Color("#B08D57")
	SecondaryColor = lipgloss.Color("#0EA5E9")
	SuccessColor   = lipgloss.Color("#22C55E")
	WarningColor   = lipgloss.Color("#EAB308")
	ErrorColor     = lipgloss.Color("#EF4444")
	MutedColor     = lipgloss.Color("#6B7280")
	SurfaceColor   = lipgloss.Color("#1F2937")
	TextColor      = lipgloss.Color("#F9FAFB")

	Muted = lipgloss.NewStyle().Foreground(MutedColor)

	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		Padding(0, 1)

	StatusBar = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)

	CardBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)

	KindCardBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1)

	StatValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	StatLabel = lipgloss.NewStyle().
			Foreground(MutedColor)

	StatusSuccess = lipgloss.NewStyle().Foreground(SuccessColor)
	StatusError   = lipgloss.NewStyle().Foreground(ErrorColor)
	StatusPending = lipgloss.NewStyle().Foreground(WarningColor)

	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	TableSelected = lipgloss.NewStyle().
			Background(PrimaryColor).
			Foreground(TextColor)

	FilterActive = lipgloss.NewStyle().
			Foreground(SurfaceColor).
			Background(SecondaryColor).
			Padding(0, 1)

	Notification = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Padding(0, 1)
)

var toneStyles = map[format.Tone]lipgloss.Style{
	format.ToneInfo:    lipgloss.NewStyle().Foreground(SecondaryColor),
	format.ToneSuccess: StatusSuccess,
	format.ToneWarning: StatusPending,
	format.ToneDanger:  StatusError,
	format.ToneMuted:   Muted,
}

// Badge renders a listing badge in its tone's colour.
func Badge(b format.Badge) string {
	style, ok := toneStyles[b.Tone]
	if !ok {
		style = Muted
	}
	return style.Render("[" + b.Text + "]")
}

func Badges(badges []format.Badge) string {
	out := ""
	for i, b := range badges {
		if i > 0 {
			out += " "
		}
		out += Badge(b)
	}
	return out
}
