package format

import "strings"

type Tone int

const (
	ToneInfo Tone = iota
	ToneSuccess
	ToneWarning
	ToneDanger
	ToneMuted
)

// Badge is a short status label shown next to a listing.
type Badge struct {
	Text string
	Tone Tone
}

func CompletionBadge(status string) Badge {
	switch status {
	case "off_plan_primary":
		return Badge{"Off Plan", ToneWarning}
	case "ready":
		return Badge{"Ready", ToneSuccess}
	default:
		return Badge{"Available", ToneInfo}
	}
}

func FurnishedBadge(furnished string) Badge {
	switch strings.ToLower(furnished) {
	case "yes":
		return Badge{"Furnished", ToneSuccess}
	case "no":
		return Badge{"Unfurnished", ToneMuted}
	case "partly":
		return Badge{"Semi-Furnished", ToneInfo}
	default:
		return Badge{"Not Specified", ToneMuted}
	}
}

func OccupancyBadge(occupancy string) Badge {
	switch strings.ToLower(occupancy) {
	case "vacant":
		return Badge{"Available Now", ToneSuccess}
	case "occupied":
		return Badge{"Occupied", ToneDanger}
	default:
		return Badge{"Contact Agent", ToneInfo}
	}
}

func ProjectStatusBadge(status string) Badge {
	switch strings.ToLower(status) {
	case "sold_out":
		return Badge{"Sold Out", ToneDanger}
	case "coming_soon":
		return Badge{"Coming Soon", ToneInfo}
	default:
		return Badge{"Available", ToneSuccess}
	}
}
