package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/drivers"

	"note-quiz/midi"
	"note-quiz/quiz"
)

func init() {
	rootCmd.AddCommand(notesCmd, portsCmd, monitorCmd)
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Print the note table with staff positions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), notesTable())
	},
}

func notesTable() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NOTE", "PITCH", "STEPS", "CLEF", "POSITION", "LEDGER", "MIDI")
	for _, n := range quiz.Notes {
		t.Row(
			n.Name(),
			n.Pitch,
			strconv.Itoa(n.Steps),
			n.Clef().String(),
			fmt.Sprintf("%d%%", n.Position()),
			strconv.FormatBool(n.NeedsLedgerLine()),
			strconv.Itoa(int(n.MIDINote())),
		)
	}
	return t.String()
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI ports and how note-quiz would use them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ins, outs, err := midi.Ports(midi.PortTimeout)
		if err != nil {
			if errors.Is(err, midi.ErrPortsTimeout) {
				return fmt.Errorf("%w (fix: sudo killall coreaudiod midiserver)", err)
			}
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "=== MIDI Input Ports ===")
		for i, p := range ins {
			fmt.Fprintf(w, "  %d: %-40s %s\n", i, p.String(), usage(midi.ClassifyPort(p.String(), cfg.MIDI.InputPort)))
		}
		fmt.Fprintln(w, "\n=== MIDI Output Ports ===")
		for i, p := range outs {
			fmt.Fprintf(w, "  %d: %s\n", i, p.String())
		}
		return nil
	},
}

func usage(t midi.ControllerType) string {
	switch t {
	case midi.ControllerLaunchpad:
		return "launchpad (guess pads)"
	case midi.ControllerKeyboard:
		return "keyboard (guesses)"
	}
	return "ignored"
}

var monitorCmd = &cobra.Command{
	Use:   "monitor [port]",
	Short: "Print the pitch name of every key played on a MIDI keyboard",
	Long: `monitor opens a MIDI keyboard and prints what the quiz would read
from each key. Without an argument it uses the configured input port, or the
first keyboard found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		filter := cfg.MIDI.InputPort
		if len(args) == 1 {
			filter = args[0]
		}

		in, err := findKeyboard(filter)
		if err != nil {
			return err
		}
		kb, err := midi.NewKeyboardController(in.String(), in)
		if err != nil {
			return err
		}
		defer kb.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Listening on %s. Ctrl+C to exit.\n", in.String())
		return monitor(ctx, kb.NoteEvents(), func(line string) {
			fmt.Fprintln(w, line)
		})
	},
}

func findKeyboard(filter string) (drivers.In, error) {
	ins, _, err := midi.Ports(midi.PortTimeout)
	if err != nil {
		return nil, err
	}
	for _, p := range ins {
		if midi.ClassifyPort(p.String(), filter) == midi.ControllerKeyboard {
			return p, nil
		}
	}
	if filter != "" {
		return nil, fmt.Errorf("no MIDI keyboard matching %q", filter)
	}
	return nil, errors.New("no MIDI keyboard found")
}

// monitor prints one line per note until ctx is done or notes closes
func monitor(ctx context.Context, notes <-chan midi.NoteEvent, emit func(string)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-notes:
			if !ok {
				return nil
			}
			emit(describeNote(ev))
		}
	}
}

func describeNote(ev midi.NoteEvent) string {
	pitch := midi.PitchName(ev.Note)
	answer := "counts as " + pitch
	if !quiz.IsPitchName(pitch) {
		answer = "always wrong (no sharps on the buttons)"
	}
	return fmt.Sprintf("%3d  %s%d  vel=%-3d %s", ev.Note, pitch, midi.Octave(ev.Note), ev.Velocity, answer)
}
