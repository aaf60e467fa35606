// Package midi parses Standard MIDI Files into the event stream the piano
// playback needs: key transitions on the piano channel plus tempo changes.
package midi

import "time"

// Kind enumerates the events that survive parsing.
type Kind uint8

const (
	NoteOn Kind = iota + 1
	NoteOff
	TempoChange
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	case TempoChange:
		return "tempo"
	default:
		return "unknown"
	}
}

// Event is one entry of the playback stream. Tick is the absolute position in
// the file's time units; Delay is how long playback waits after the previous
// event before applying this one.
type Event struct {
	Kind  Kind
	Note  uint8  // key number for NoteOn and NoteOff, 0 through 127
	Tempo uint32 // microseconds per quarter note for TempoChange
	Tick  uint64
	Delay time.Duration
}

// Division is the file's resolved timing scheme: metrical (tempo-relative
// ticks per quarter note) or SMPTE timecode (absolute frames).
type Division struct {
	Metrical        bool
	TicksPerQuarter uint16
	FPS             uint8
	Subframes       uint8
}

// File is a parsed MIDI file: header facts plus the ordered event stream.
type File struct {
	Format   int
	Tracks   int
	Division Division
	Events   []Event
}

// Duration is the total playback time, the sum of all event delays.
func (f *File) Duration() time.Duration {
	var total time.Duration
	for _, e := range f.Events {
		total += e.Delay
	}
	return total
}
