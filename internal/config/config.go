// Package config provides configuration types and defaults for typetwice.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/zjrosen/typetwice/internal/log"
	"github.com/zjrosen/typetwice/internal/tracing"
)

// Config holds all configuration options for typetwice.
type Config struct {
	LastFile    string            `mapstructure:"last_file"`
	Audio       AudioConfig       `mapstructure:"audio"`
	Input       InputConfig       `mapstructure:"input"`
	Journal     JournalConfig     `mapstructure:"journal"`
	Tracing     tracing.Config    `mapstructure:"tracing"`
	UI          UIConfig          `mapstructure:"ui"`
	Keybindings KeybindingsConfig `mapstructure:"keybindings"`
}

// AudioConfig holds cue playback options.
type AudioConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	CueDir     string        `mapstructure:"cue_dir"`     // directory holding <cue>.mp3 / <cue>.wav
	Volume     float64       `mapstructure:"volume"`      // 0.0 to 1.0
	SampleRate int           `mapstructure:"sample_rate"` // output device rate in Hz
	QueueSize  int           `mapstructure:"queue_size"`  // cues waiting beyond this are dropped
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`   // how long decoded cues stay in memory
	Watch      bool          `mapstructure:"watch"`       // reload cues when the directory changes
}

// InputConfig holds key handling options.
type InputConfig struct {
	// ReleaseAfter is how long after its last press a key counts as
	// released. Terminals report presses only, and auto-repeat presses
	// arrive faster than this.
	ReleaseAfter time.Duration `mapstructure:"release_after"`
}

// JournalConfig holds crash-recovery journal options.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowToolbar   bool   `mapstructure:"show_toolbar"`
	Wrap          bool   `mapstructure:"wrap"`           // soft-wrap long lines
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// KeybindingsConfig overrides the command keys. Empty values keep the
// defaults.
type KeybindingsConfig struct {
	Save    string `mapstructure:"save"`
	Open    string `mapstructure:"open"`
	Help    string `mapstructure:"help"`
	Recover string `mapstructure:"recover"`
}

// Limits for validated values.
const (
	MinSampleRate   = 8000
	MaxSampleRate   = 192000
	MaxQueueSize    = 1024
	MaxReleaseAfter = 2 * time.Second
)

// configDir returns ~/.config/typetwice or "" if the home directory is
// unavailable.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "typetwice")
}

// DefaultConfigPath returns ~/.config/typetwice/config.yaml.
func DefaultConfigPath() string {
	if dir := configDir(); dir != "" {
		return filepath.Join(dir, "config.yaml")
	}
	return filepath.Join(".typetwice", "config.yaml")
}

// DefaultCueDir returns ~/.config/typetwice/cues.
func DefaultCueDir() string {
	if dir := configDir(); dir != "" {
		return filepath.Join(dir, "cues")
	}
	return ""
}

// DefaultJournalPath returns ~/.config/typetwice/journal.db.
func DefaultJournalPath() string {
	if dir := configDir(); dir != "" {
		return filepath.Join(dir, "journal.db")
	}
	return ""
}

// DefaultTracesFilePath returns ~/.config/typetwice/traces/traces.jsonl.
func DefaultTracesFilePath() string {
	if dir := configDir(); dir != "" {
		return filepath.Join(dir, "traces", "traces.jsonl")
	}
	return ""
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	trace := tracing.DefaultConfig()
	trace.FilePath = DefaultTracesFilePath()

	return Config{
		Audio: AudioConfig{
			Enabled:    true,
			CueDir:     DefaultCueDir(),
			Volume:     0.8,
			SampleRate: 44100,
			QueueSize:  32,
			CacheTTL:   10 * time.Minute,
			Watch:      true,
		},
		Input: InputConfig{
			ReleaseAfter: 120 * time.Millisecond,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    DefaultJournalPath(),
		},
		Tracing: trace,
		UI: UIConfig{
			ShowToolbar:   true,
			Wrap:          true,
			MarkdownStyle: "dark",
		},
	}
}

// Validate checks the whole configuration.
func Validate(c Config) error {
	if err := ValidateAudio(c.Audio); err != nil {
		return err
	}
	if err := ValidateInput(c.Input); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	return ValidateKeybindings(c.Keybindings)
}

// ValidateAudio checks audio configuration for errors.
func ValidateAudio(a AudioConfig) error {
	if a.Volume < 0 || a.Volume > 1 {
		return fmt.Errorf("audio.volume must be between 0.0 and 1.0, got %v", a.Volume)
	}
	if a.SampleRate < MinSampleRate || a.SampleRate > MaxSampleRate {
		return fmt.Errorf("audio.sample_rate must be between %d and %d, got %d", MinSampleRate, MaxSampleRate, a.SampleRate)
	}
	if a.QueueSize <= 0 || a.QueueSize > MaxQueueSize {
		return fmt.Errorf("audio.queue_size must be between 1 and %d, got %d", MaxQueueSize, a.QueueSize)
	}
	if a.CacheTTL <= 0 {
		return fmt.Errorf("audio.cache_ttl must be positive, got %v", a.CacheTTL)
	}
	return nil
}

// ValidateInput checks input configuration for errors.
func ValidateInput(in InputConfig) error {
	if in.ReleaseAfter <= 0 || in.ReleaseAfter > MaxReleaseAfter {
		return fmt.Errorf("input.release_after must be between 0 and %v, got %v", MaxReleaseAfter, in.ReleaseAfter)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	if t.Exporter != "" && !slices.Contains(tracing.Exporters, t.Exporter) {
		return fmt.Errorf("tracing.exporter must be one of %s, got %q", strings.Join(tracing.Exporters, ", "), t.Exporter)
	}
	if t.Enabled {
		if t.Exporter == tracing.ExporterFile && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(u UIConfig) error {
	switch u.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", u.MarkdownStyle)
	}
}

// reservedKeys produce text or are used by the quit flow, so they cannot be
// rebound to commands.
var reservedKeys = map[string]bool{
	"enter": true, "tab": true, "backspace": true, "delete": true, "esc": true,
	" ": true, "space": true, "ctrl+c": true, "ctrl+q": true,
	"ctrl+h": true, "ctrl+i": true, "ctrl+m": true, "ctrl+[": true,
}

var modifierPrefixes = []string{"ctrl+", "alt+", "shift+"}

// ValidateKeybindings checks command key overrides. Keys must use a
// modifier or be a function key, since every plain key types text.
func ValidateKeybindings(kb KeybindingsConfig) error {
	seen := map[string]string{}
	for _, b := range []struct{ name, key string }{
		{"save", kb.Save},
		{"open", kb.Open},
		{"help", kb.Help},
		{"recover", kb.Recover},
	} {
		if b.key == "" {
			continue
		}
		k := strings.ToLower(b.key)
		if reservedKeys[k] {
			return fmt.Errorf("keybindings.%s: %q is reserved", b.name, b.key)
		}
		if !isCommandKey(k) {
			return fmt.Errorf("keybindings.%s: invalid key format %q (use ctrl+<key>, alt+<key> or f1-f12)", b.name, b.key)
		}
		if other, dup := seen[k]; dup {
			return fmt.Errorf("keybindings.%s and keybindings.%s use the same key %q", other, b.name, b.key)
		}
		seen[k] = b.name
	}
	return nil
}

func isCommandKey(k string) bool {
	for _, p := range modifierPrefixes {
		if rest, ok := strings.CutPrefix(k, p); ok {
			return rest != "" && !strings.Contains(rest, " ")
		}
	}
	if n, ok := strings.CutPrefix(k, "f"); ok {
		switch n {
		case "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12":
			return true
		}
	}
	return false
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# typetwice configuration

# Audio cues, played on every key press
audio:
  enabled: true
  # Directory with one file per cue: a.mp3, b.wav, space.mp3, newline.wav ...
  # Run 'typetwice cues' to list every cue name. Missing cues use a
  # synthesized tone.
  # cue_dir: ~/.config/typetwice/cues
  volume: 0.8          # 0.0 (silent) to 1.0
  sample_rate: 44100   # output rate in Hz
  queue_size: 32       # cues beyond this many waiting are dropped
  cache_ttl: 10m       # how long decoded cues stay in memory
  watch: true          # reload cues when files in cue_dir change

# Key handling
input:
  # A key counts as released when no press for it arrived within this
  # window. Raise it if holding a key still types; lower it if fast double
  # presses are not recognized.
  release_after: 120ms

# Crash recovery: unsaved edits are journaled and offered for restore
journal:
  enabled: true
  # path: ~/.config/typetwice/journal.db

ui:
  show_toolbar: true     # Open / Save / Help / Quit buttons (mouse)
  wrap: true             # soft-wrap long lines
  # markdown_style: dark # help overlay style: "dark" (default) or "light"

# Command keys. Plain keys always type, so use ctrl+, alt+ or f1-f12.
# keybindings:
#   save: ctrl+s
#   open: ctrl+o
#   help: f1
#   recover: ctrl+r

# Tracing of saves and journal writes
# tracing:
#   enabled: false
#   exporter: file                 # none, file, stdout, otlp
#   file_path: ~/.config/typetwice/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
