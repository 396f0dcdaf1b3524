package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colours of the hex view and of the program around it.
// TextAttr and SelectedAttr are console attributes: foreground in the low
// nibble, background in the next. A zero SelectedAttr means the inverse of
// TextAttr.
type Theme struct {
	TextAttr     int `toml:"text_attr"`
	SelectedAttr int `toml:"selected_attr"`

	BorderColor      string `toml:"border_color"`
	FocusBorderColor string `toml:"focus_border_color"`
	CaptionColor     string `toml:"caption_color"`
	LegendBackground string `toml:"legend_background"`
	LegendHighlight  string `toml:"legend_highlight"`
	ActiveTab        string `toml:"active_tab"`
	UnsavedFileColor string `toml:"unsaved_file_color"`
	DisabledColor    string `toml:"disabled_color"`
	ErrorColor       string `toml:"error_color"`
	Bit16Background  string `toml:"bit16_background"`
	Bit32Background  string `toml:"bit32_background"`
	Bit64Background  string `toml:"bit64_background"`
}

// Editor holds the defaults for every opened file.
type Editor struct {
	BytesPerWord int  `toml:"bytes_per_word"`
	OffsetWidth  int  `toml:"offset_width"`
	Scrollbar    bool `toml:"scrollbar"`
	ReadOnly     bool `toml:"read_only"`
	InsertMode   bool `toml:"insert_mode"`
	WheelLines   int  `toml:"wheel_lines"`
}

type Config struct {
	Theme  Theme  `toml:"theme"`
	Editor Editor `toml:"editor"`
}

var ErrInvalid = errors.New("config: invalid value")

func DefaultConfig() *Config {
	return &Config{
		Theme: Theme{
			TextAttr:         0x17,
			SelectedAttr:     0,
			BorderColor:      "#0000AA",
			FocusBorderColor: "#5555FF",
			CaptionColor:     "#FFFFFF",
			LegendBackground: "#0000FF",
			LegendHighlight:  "#FF0000",
			ActiveTab:        "#FF00FF",
			UnsavedFileColor: "#FF0000",
			DisabledColor:    "#666666",
			ErrorColor:       "#FF5555",
			Bit16Background:  "#004400",
			Bit32Background:  "#440044",
			Bit64Background:  "#004444",
		},
		Editor: Editor{
			BytesPerWord: 1,
			OffsetWidth:  32,
			Scrollbar:    true,
			WheelLines:   3,
		},
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hexedit.toml"
	}
	return filepath.Join(home, ".config", "hexedit", "hexedit.toml")
}

// Load reads path over the defaults. A missing file is not an error. An
// empty path means ConfigPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()
	_, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return DefaultConfig(), nil
	case err != nil:
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c as TOML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the values the hex view cannot work with.
func (c *Config) Validate() error {
	switch c.Editor.BytesPerWord {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("%w: bytes_per_word %d", ErrInvalid, c.Editor.BytesPerWord)
	}
	switch c.Editor.OffsetWidth {
	case 0, 32, 64:
	default:
		return fmt.Errorf("%w: offset_width %d", ErrInvalid, c.Editor.OffsetWidth)
	}
	if c.Editor.WheelLines < 1 {
		return fmt.Errorf("%w: wheel_lines %d", ErrInvalid, c.Editor.WheelLines)
	}
	for name, v := range map[string]int{"text_attr": c.Theme.TextAttr, "selected_attr": c.Theme.SelectedAttr} {
		if v < 0 || v > 0xFF {
			return fmt.Errorf("%w: %s %#x", ErrInvalid, name, v)
		}
	}
	return nil
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Border, FocusBorder, Caption        lipgloss.Style
	Legend, LegendHighlight             lipgloss.Style
	ActiveTab, InactiveTab, UnsavedFile lipgloss.Style
	Normal, Disabled, Error             lipgloss.Style
	DecoderLabel, DecoderValue          lipgloss.Style
	HelpTitle, HelpKey, HelpDesc        lipgloss.Style
	Bit16, Bit32, Bit64                 lipgloss.Style
}

const (
	white = lipgloss.Color("#FFFFFF")
	grey  = lipgloss.Color("#AAAAAA")
)

func fg(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

// band is white text on a coloured background.
func band(c string) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(c)).Foreground(white)
}

func NewStyles(theme *Theme) *Styles {
	return &Styles{
		Border:          lipgloss.NewStyle().BorderForeground(lipgloss.Color(theme.BorderColor)),
		FocusBorder:     lipgloss.NewStyle().BorderForeground(lipgloss.Color(theme.FocusBorderColor)),
		Caption:         fg(theme.CaptionColor).Bold(true),
		Legend:          band(theme.LegendBackground),
		LegendHighlight: band(theme.LegendBackground).Foreground(lipgloss.Color(theme.LegendHighlight)).Bold(true),
		ActiveTab:       fg(theme.ActiveTab).Bold(true),
		InactiveTab:     lipgloss.NewStyle().Foreground(grey),
		UnsavedFile:     fg(theme.UnsavedFileColor),
		Normal:          lipgloss.NewStyle(),
		Disabled:        fg(theme.DisabledColor),
		Error:           fg(theme.ErrorColor),
		DecoderLabel:    fg("#888888"),
		DecoderValue:    lipgloss.NewStyle().Foreground(white),
		HelpTitle:       lipgloss.NewStyle().Foreground(white).Bold(true),
		HelpKey:         fg(theme.LegendHighlight).Bold(true),
		HelpDesc:        lipgloss.NewStyle().Foreground(grey),
		Bit16:           band(theme.Bit16Background),
		Bit32:           band(theme.Bit32Background),
		Bit64:           band(theme.Bit64Background),
	}
}
