package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/artemneskorodov/piano/internal/midi"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <file.mid>",
	Short: "Show what a MIDI file parses into",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadMidiFile(args[0])
		if err != nil {
			return err
		}
		if infoJSON {
			return printInfoJSON(cmd.OutOrStdout(), f)
		}
		return printInfoTable(cmd.OutOrStdout(), f)
	},
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(infoCmd)
}

func printInfoTable(out io.Writer, f *midi.File) error {
	var on, off, tempo int
	for _, e := range f.Events {
		switch e.Kind {
		case midi.NoteOn:
			on++
		case midi.NoteOff:
			off++
		case midi.TempoChange:
			tempo++
		}
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Format\t%d\n", f.Format)
	fmt.Fprintf(w, "Tracks\t%d\n", f.Tracks)
	fmt.Fprintf(w, "Division\t%s\n", divisionString(f.Division))
	fmt.Fprintf(w, "Events\t%d\n", len(f.Events))
	fmt.Fprintf(w, "Notes\t%d on, %d off\n", on, off)
	fmt.Fprintf(w, "Tempo changes\t%d\n", tempo)
	fmt.Fprintf(w, "Duration\t%s\n", f.Duration())
	return w.Flush()
}

func divisionString(d midi.Division) string {
	if d.Metrical {
		return fmt.Sprintf("metrical, %d ticks per quarter note", d.TicksPerQuarter)
	}
	return fmt.Sprintf("timecode, %d fps, %d subframes", d.FPS, d.Subframes)
}

type fileJSON struct {
	Format   int         `json:"format"`
	Tracks   int         `json:"tracks"`
	Division string      `json:"division"`
	Duration string      `json:"duration"`
	Events   []eventJSON `json:"events"`
}

type eventJSON struct {
	Kind    string `json:"kind"`
	Note    uint8  `json:"note,omitempty"`
	Tempo   uint32 `json:"tempo,omitempty"`
	Tick    uint64 `json:"tick"`
	DelayUS int64  `json:"delay_us"`
}

func printInfoJSON(out io.Writer, f *midi.File) error {
	events := make([]eventJSON, 0, len(f.Events))
	for _, e := range f.Events {
		events = append(events, eventJSON{
			Kind:    e.Kind.String(),
			Note:    e.Note,
			Tempo:   e.Tempo,
			Tick:    e.Tick,
			DelayUS: e.Delay.Microseconds(),
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(fileJSON{
		Format:   f.Format,
		Tracks:   f.Tracks,
		Division: divisionString(f.Division),
		Duration: f.Duration().String(),
		Events:   events,
	})
}
