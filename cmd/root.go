package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"hexedit/internal/config"
	"hexedit/internal/editor"
	"hexedit/internal/log"

	"github.com/BurntSushi/toml"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Query the terminal background before the program owns stdin, so the
	// OSC 11 reply is not read as key presses.
	_ = lipgloss.HasDarkBackground()
}

var version = "dev"

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hexedit [file...]",
		Short: "A terminal hex editor",
		Long: `hexedit edits files as hex words and characters side by side.

Settings come from ~/.config/hexedit/hexedit.toml, then HEXEDIT_* environment
variables (HEXEDIT_EDITOR_BYTES_PER_WORD, HEXEDIT_THEME_TEXT_ATTR, ...), then flags.`,
		Version:      version,
		SilenceUsage: true,
		RunE:         runApp,
	}

	f := cmd.Flags()
	f.StringP("config", "c", "", "config file (default: ~/.config/hexedit/hexedit.toml)")
	f.IntP("bytes-per-word", "w", 1, "bytes grouped into one hex word: 1, 2, 4 or 8")
	f.Int("offset-width", 32, "offset column width in bits: 0, 32 or 64")
	f.BoolP("read-only", "r", false, "open files read only")
	f.BoolP("insert", "i", false, "start in insert mode")
	f.Bool("no-scrollbar", false, "hide the scroll bar")
	f.Int("wheel-lines", 3, "lines scrolled per mouse wheel notch")
	f.Bool("debug", false, "write a debug log (HEXEDIT_LOG, default debug.log)")
	f.String("log-level", "debug", "minimum level written to the debug log")
	return cmd
}

// flagKeys maps flags to the settings they override.
var flagKeys = map[string]string{
	"bytes-per-word": "editor.bytes_per_word",
	"offset-width":   "editor.offset_width",
	"read-only":      "editor.read_only",
	"insert":         "editor.insert_mode",
	"wheel-lines":    "editor.wheel_lines",
	"debug":          "debug",
	"log-level":      "log_level",
}

// settings is the layered view of the config file, environment and flags.
type settings struct {
	v    *viper.Viper
	path string
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.ConfigPath()
	}

	file, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(file); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(&buf); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	v.SetDefault("debug", false)
	v.SetDefault("log", "debug.log")
	v.SetDefault("log_level", "debug")

	v.SetEnvPrefix("HEXEDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, err
		}
	}
	if off, _ := cmd.Flags().GetBool("no-scrollbar"); off {
		v.Set("editor.scrollbar", false)
	}
	return &settings{v: v, path: path}, nil
}

// Config decodes the layered settings with the file's key names.
func (s *settings) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	err := s.v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
	})
	if err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startLog enables the debug log when asked for by flag or HEXEDIT_DEBUG.
func (s *settings) startLog() (func(), error) {
	if !s.v.GetBool("debug") {
		return func() {}, nil
	}
	level, err := log.ParseLevel(s.v.GetString("log_level"))
	if err != nil {
		return nil, err
	}
	logPath := s.v.GetString("log")
	cleanup, err := log.InitWithTeaLog(logPath, "hexedit")
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.SetMinLevel(level)
	log.Info(log.CatConfig, "hexedit starting", "version", version, "logPath", logPath)
	return cleanup, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cleanup, err := s.startLog()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := s.Config()
	if err != nil {
		log.ErrorErr(log.CatConfig, "invalid settings", err, "path", s.path)
		return err
	}

	model, err := editor.NewModel(cfg, s.path, args)
	if err != nil {
		return err
	}
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
