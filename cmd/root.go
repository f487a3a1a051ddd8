package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/typetwice/internal/app"
	"github.com/zjrosen/typetwice/internal/config"
	"github.com/zjrosen/typetwice/internal/cue"
	"github.com/zjrosen/typetwice/internal/editor"
	"github.com/zjrosen/typetwice/internal/journal"
	"github.com/zjrosen/typetwice/internal/keys"
	"github.com/zjrosen/typetwice/internal/log"
	"github.com/zjrosen/typetwice/internal/tracing"
	"github.com/zjrosen/typetwice/internal/ui/document"
	"github.com/zjrosen/typetwice/internal/watcher"
)

func init() {
	// Query the terminal background before Bubble Tea owns the input, so
	// the OSC 11 reply does not show up as typed text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "typetwice [file]",
	Short: "A text editor where every key is pressed twice",
	Long: `typetwice is a terminal editor for writing without looking.
Every key plays a sound on its first press and is written on the second,
so each character is heard before it lands in the document. Text is
appended to the end of the file when you save.`,
	Args:         cobra.MaximumNArgs(1),
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/typetwice/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (or set TYPETWICE_DEBUG)")
	rootCmd.PersistentFlags().String("cue-dir", "",
		"directory holding cue files named <cue>.mp3 or <cue>.wav")
	rootCmd.Flags().Bool("mute", false, "disable audio cues")

	_ = viper.BindPFlag("audio.cue_dir", rootCmd.PersistentFlags().Lookup("cue-dir"))
}

// setDefaults registers every key so environment overrides and Unmarshal
// see them even without a config file.
func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("last_file", d.LastFile)

	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.cue_dir", d.Audio.CueDir)
	v.SetDefault("audio.volume", d.Audio.Volume)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.queue_size", d.Audio.QueueSize)
	v.SetDefault("audio.cache_ttl", d.Audio.CacheTTL)
	v.SetDefault("audio.watch", d.Audio.Watch)

	v.SetDefault("input.release_after", d.Input.ReleaseAfter)

	v.SetDefault("journal.enabled", d.Journal.Enabled)
	v.SetDefault("journal.path", d.Journal.Path)

	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)

	v.SetDefault("ui.show_toolbar", d.UI.ShowToolbar)
	v.SetDefault("ui.wrap", d.UI.Wrap)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)

	v.SetDefault("keybindings.save", d.Keybindings.Save)
	v.SetDefault("keybindings.open", d.Keybindings.Open)
	v.SetDefault("keybindings.help", d.Keybindings.Help)
	v.SetDefault("keybindings.recover", d.Keybindings.Recover)
}

func initConfig() {
	setDefaults(viper.GetViper(), config.Defaults())
	viper.SetEnvPrefix("TYPETWICE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .typetwice/config.yaml (current directory)
		// 2. ~/.config/typetwice/config.yaml (user config)
		if _, err := os.Stat(".typetwice/config.yaml"); err == nil {
			viper.SetConfigFile(".typetwice/config.yaml")
		} else {
			viper.SetConfigFile(config.DefaultConfigPath())
		}
	}

	if err := viper.ReadInConfig(); err != nil && cfgFile == "" {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// First run: leave a commented default behind.
			if writeErr := config.WriteDefaultConfig(viper.ConfigFileUsed()); writeErr == nil {
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// configPath is where settings are written back.
func configPath() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

func initLogging() (func(), error) {
	if os.Getenv("TYPETWICE_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("TYPETWICE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.InitWithTeaLog(logPath, "typetwice")
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "typetwice starting", "version", version, "logPath", logPath, "config", configPath())
	return cleanup, nil
}

// newPlayer opens the audio device. Without one the editor still works,
// silently.
func newPlayer(a config.AudioConfig) (cue.Player, *cue.BeepPlayer) {
	if !a.Enabled {
		return cue.NoopPlayer{}, nil
	}
	p, err := cue.NewSpeakerPlayer(cue.Options{
		Dir:        config.ExpandHome(a.CueDir),
		Volume:     a.Volume,
		SampleRate: a.SampleRate,
		QueueSize:  a.QueueSize,
		CacheTTL:   a.CacheTTL,
	})
	if err != nil {
		log.ErrorErr(log.CatAudio, "Opening audio device failed, cues disabled", err)
		return cue.NoopPlayer{}, nil
	}
	return p, p
}

// watchCues reports changes in the cue directory. A nil channel means
// nothing is watched.
func watchCues(dir string) (<-chan struct{}, func()) {
	w, err := watcher.New(watcher.DefaultConfig(dir, cue.Extensions))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Creating watcher failed", err)
		return nil, func() {}
	}
	ch, err := w.Start()
	if err != nil {
		log.Warn(log.CatWatcher, "Cue directory not watched", "dir", dir, "error", err)
		_ = w.Stop()
		return nil, func() {}
	}
	return ch, func() { _ = w.Stop() }
}

func runApp(cmd *cobra.Command, args []string) error {
	cleanupLog, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanupLog()

	// --mute negates audio.enabled
	if mute, _ := cmd.Flags().GetBool("mute"); mute {
		cfg.Audio.Enabled = false
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	keys.ApplyConfig(keys.Overrides{
		Save:    cfg.Keybindings.Save,
		Open:    cfg.Keybindings.Open,
		Help:    cfg.Keybindings.Help,
		Recover: cfg.Keybindings.Recover,
	})

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	doc := document.New(cfg.UI.Wrap)
	var sessionOpts []editor.Option
	if cfg.Journal.Enabled {
		j, err := journal.Open(config.ExpandHome(cfg.Journal.Path))
		if err != nil {
			log.ErrorErr(log.CatJournal, "Opening journal failed, crash recovery disabled", err)
		} else {
			defer func() { _ = j.Close() }()
			sessionOpts = append(sessionOpts, editor.WithJournal(j))
		}
	}

	player, beepPlayer := newPlayer(cfg.Audio)
	var onCueChange func()
	var cueChanges <-chan struct{}
	if beepPlayer != nil {
		defer beepPlayer.Close()
		onCueChange = beepPlayer.Invalidate
		if cfg.Audio.Watch {
			var stop func()
			cueChanges, stop = watchCues(beepPlayer.Loader().Dir())
			defer stop()
		}
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	zone.NewGlobal()
	model := app.New(ctx, app.Options{
		Config:      cfg,
		ConfigPath:  configPath(),
		Path:        path,
		Session:     editor.NewSession(doc, player, sessionOpts...),
		Document:    doc,
		CueChanges:  cueChanges,
		OnCueChange: onCueChange,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
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
