package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/nhle/habits/internal/model"
)

// Palette is the set of colors for one theme.
type Palette struct {
	Primary    lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
}

// Light and Dark palettes.
var (
	Light = Palette{
		Primary:    "#6A5AED",
		Background: "#F7F7F7",
		Surface:    "#FFFFFF",
		Text:       "#1A1A1A",
		Muted:      "#718096",
		Border:     "#E2E8F0",
		Success:    "#2F855A",
		Error:      "#C53030",
	}
	Dark = Palette{
		Primary:    "#A097F7",
		Background: "#121212",
		Surface:    "#1E1E1E",
		Text:       "#FFFFFF",
		Muted:      "#868E96",
		Border:     "#495057",
		Success:    "#6BCB77",
		Error:      "#FF6B6B",
	}
)

// PaletteFor returns the palette of t.
func PaletteFor(t model.Theme) Palette {
	if t == model.ThemeDark {
		return Dark
	}
	return Light
}

// Styles holds every lipgloss style the UI renders with, derived from one
// palette.
type Styles struct {
	Palette Palette

	// Header is used for the application title bar.
	Header lipgloss.Style

	// StatusBar is used for the bottom status bar.
	StatusBar lipgloss.Style

	// Panel wraps full-screen views such as help and settings.
	Panel lipgloss.Style

	Title        lipgloss.Style
	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
	Card         lipgloss.Style
	SelectedCard lipgloss.Style
	HabitName    lipgloss.Style
	Streak       lipgloss.Style
	Done         lipgloss.Style
	Help         lipgloss.Style
	Notice       lipgloss.Style
	Error        lipgloss.Style
	Empty        lipgloss.Style
}

// New builds the styles for t.
func New(t model.Theme) Styles {
	p := PaletteFor(t)

	return Styles{
		Palette: p,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Surface).
			Background(p.Primary).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Border).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			MarginBottom(1),
		Tab: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 2),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Underline(true).
			Padding(0, 2),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		SelectedCard: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary),
		HabitName: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),
		Streak: lipgloss.NewStyle().
			Foreground(p.Muted),
		Done: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Help: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		Notice: lipgloss.NewStyle().
			Foreground(p.Success),
		Error: lipgloss.NewStyle().
			Foreground(p.Error),
		Empty: lipgloss.NewStyle().
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(p.Muted),
	}
}

// DetectScheme reports the terminal's color scheme. It only answers when
// stdout is a terminal, since querying the background color of a pipe
// blocks or lies.
func DetectScheme() (model.Theme, bool) {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return "", false
	}
	if lipgloss.HasDarkBackground() {
		return model.ThemeDark, true
	}
	return model.ThemeLight, true
}
