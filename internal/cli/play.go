package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artemneskorodov/piano/internal/midi"
	"github.com/artemneskorodov/piano/internal/player"
)

var playCmd = &cobra.Command{
	Use:   "play <file.mid>",
	Short: "Play a MIDI file as a terminal piano roll",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadMidiFile(args[0])
		if err != nil {
			return err
		}
		return player.Run(f.Events)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func loadMidiFile(path string) (*midi.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	f, err := midi.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}
