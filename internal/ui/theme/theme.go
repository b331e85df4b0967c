package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: candlelit crypt
var (
	Primary   = lipgloss.Color("#A855F7") // Spectral Purple
	Secondary = lipgloss.Color("#84CC16") // Ectoplasm Green
	Accent    = lipgloss.Color("#F97316") // Pumpkin
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#DC2626") // Blood Red
	Soul      = lipgloss.Color("#67E8F9") // Wisp Cyan
	Text      = lipgloss.Color("#E7E5E4") // Bone
	TextDim   = lipgloss.Color("#78716C") // Ash
	BgDark    = lipgloss.Color("#0C0A09") // Tomb Black
	BgCard    = lipgloss.Color("#1C1917") // Crypt Stone
	Border    = lipgloss.Color("#44403C") // Moss Stone
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	ErrorBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Error).
			Foreground(Error).
			Padding(0, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Completed = lipgloss.NewStyle().
			Foreground(Secondary)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Souls = lipgloss.NewStyle().
		Foreground(Soul).
		Bold(true)
)

// Markdown
var (
	MDHeading = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	MDBold = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	MDItalic = lipgloss.NewStyle().
			Foreground(Text).
			Italic(true)

	MDCode = lipgloss.NewStyle().
		Foreground(Secondary).
		Background(BgCard)

	MDBullet = lipgloss.NewStyle().
			Foreground(Primary)
)
