package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"note-quiz/config"
	"note-quiz/debug"
	"note-quiz/midi"
	"note-quiz/quiz"
	"note-quiz/theme"
	"note-quiz/tui"
)

var flags struct {
	configPath string
	seed       uint64
	locale     string
	delayMS    int
	noMIDI     bool
	debug      bool
}

var rootCmd = &cobra.Command{
	Use:   "note-quiz",
	Short: "Note reading trainer for the terminal",
	Long: `note-quiz shows a note on a grand staff and asks you to name it.
Answer with the keyboard, the mouse, a MIDI keyboard or a Launchpad.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the quiz (default)",
	RunE:  runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/note-quiz/config.json)")
	pf.BoolVar(&flags.debug, "debug", false, "write a debug log to ~/.config/note-quiz/debug.log")

	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		f := c.Flags()
		f.Uint64Var(&flags.seed, "seed", 0, "random seed for note selection (0 = random)")
		f.StringVar(&flags.locale, "locale", "", "feedback language: en or fr")
		f.IntVar(&flags.delayMS, "delay", 0, "pause after a correct answer, in milliseconds")
		f.BoolVar(&flags.noMIDI, "no-midi", false, "don't look for MIDI controllers")
	}

	rootCmd.AddCommand(playCmd)
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flags.configPath != "" {
		cfg, err = config.LoadFrom(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("seed") {
		cfg.Quiz.Seed = flags.seed
	}
	if cmd.Flags().Changed("locale") {
		cfg.Quiz.Locale = flags.locale
	}
	if cmd.Flags().Changed("delay") {
		cfg.Quiz.AdvanceDelayMS = flags.delayMS
	}
	if flags.noMIDI {
		cfg.MIDI.AutoConnect = false
	}
	if flags.debug {
		cfg.UI.Debug = true
	}

	if cfg.UI.Debug {
		path, err := config.DebugLogPath()
		if err != nil {
			return nil, err
		}
		if err := debug.Enable(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer debug.Disable()

	palette, err := theme.LoadOrDefault(cfg.UI.Palette)
	if err != nil {
		return err
	}
	th := theme.New(palette)

	locale, err := quiz.ParseLocale(cfg.Quiz.Locale)
	if err != nil {
		return err
	}

	notifier := tui.NewNotifier()
	engine := quiz.New(quiz.Options{
		Seed:         cfg.Quiz.Seed,
		AdvanceDelay: cfg.AdvanceDelay(),
		Locale:       locale,
		Presenter:    notifier,
	})
	defer engine.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Create MIDI device manager (handles hot-plug)
	var deviceMgr *midi.DeviceManager
	if cfg.MIDI.AutoConnect {
		deviceMgr = midi.NewDeviceManager(cfg.MIDI.InputPort)
		go deviceMgr.Run(ctx)
	}

	debug.Log("main", "starting: seed=%d locale=%s delay=%s midi=%v",
		cfg.Quiz.Seed, locale, cfg.AdvanceDelay(), cfg.MIDI.AutoConnect)

	m := tui.NewModel(engine, notifier, deviceMgr, th)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
