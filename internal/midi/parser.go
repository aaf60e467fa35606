package midi

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"
)

// Chunk identifiers of a Standard MIDI File.
const (
	headerChunkID = "MThd"
	trackChunkID  = "MTrk"
)

// Channel event status nibbles.
const (
	statusNoteOff         = 0x80
	statusNoteOn          = 0x90
	statusNoteAftertouch  = 0xA0
	statusController      = 0xB0
	statusProgramChange   = 0xC0
	statusChannelPressure = 0xD0
	statusPitchBend       = 0xE0
)

const (
	metaPrefix  = 0xFF
	metaTempo   = 0x51
	sysexStart  = 0xF0
	sysexEscape = 0xF7
)

// defaultTempo applies until the first tempo event, in microseconds per
// quarter note (120 bpm).
const defaultTempo = 500000

// Piano patches occupy programs 0 through 7 in General MIDI.
const maxPianoProgram = 7

// noChannel marks the piano channel as not yet discovered.
const noChannel = 0xFF

// Parse errors. Truncated input surfaces as a wrapped io.ErrUnexpectedEOF.
var (
	ErrNoHeader     = errors.New("midi: no MThd chunk")
	ErrHeaderLength = errors.New("midi: unexpected header length")
	ErrHeaderFormat = errors.New("midi: unsupported format")
	ErrTrackCount   = errors.New("midi: unexpected track count")
	ErrTimeDivision = errors.New("midi: invalid time division")
	ErrUnknownEvent = errors.New("midi: unknown event")
	ErrDataByte     = errors.New("midi: invalid data byte")
)

// Parse decodes a Standard MIDI File. Only the events playback needs come
// back: note-on and note-off on the piano channel (the lowest channel a
// program change assigns a piano patch to) and tempo changes. The stream is
// ordered by tick with delays resolved against the running tempo.
func Parse(data []byte) (*File, error) {
	r := &reader{data: data}

	hdr, err := parseHeader(r)
	if err != nil {
		return nil, err
	}

	st := parseState{pianoChannel: noChannel}
	for track := 0; track < hdr.tracks; track++ {
		if hdr.format == 1 {
			// Format 1 tracks play simultaneously, so each restarts the
			// clock. Scanning stops once an earlier track supplied the
			// piano channel.
			st.tick = 0
			if st.hasPiano {
				break
			}
		}
		if hdr.format == 2 {
			// Format 2 tracks are independent patterns.
			st.pianoChannel = noChannel
			st.hasPiano = false
		}

		length, err := r.scanChunk(trackChunkID)
		if err != nil {
			return nil, fmt.Errorf("midi: track %d: %w", track, err)
		}
		if err := parseTrackEvents(r, &st, length); err != nil {
			return nil, fmt.Errorf("midi: track %d: %w", track, err)
		}
	}

	// Events were appended in track order; playback wants tick order.
	// The sort is stable so same-tick events keep their authored order.
	sort.SliceStable(st.events, func(i, j int) bool {
		return st.events[i].Tick < st.events[j].Tick
	})
	resolveDelays(st.events, hdr.division)

	return &File{
		Format:   hdr.format,
		Tracks:   hdr.tracks,
		Division: hdr.division,
		Events:   st.events,
	}, nil
}

type header struct {
	format   int
	tracks   int
	division Division
}

func parseHeader(r *reader) (header, error) {
	length, err := r.scanChunk(headerChunkID)
	if err != nil {
		return header{}, ErrNoHeader
	}
	if length != 6 {
		return header{}, fmt.Errorf("%w: %d", ErrHeaderLength, length)
	}

	format, err := r.readBE(2)
	if err != nil {
		return header{}, err
	}
	if format > 2 {
		return header{}, fmt.Errorf("%w: %d", ErrHeaderFormat, format)
	}

	tracks, err := r.readBE(2)
	if err != nil {
		return header{}, err
	}
	if format == 0 && tracks != 1 {
		return header{}, fmt.Errorf("%w: format 0 holds one track, file declares %d", ErrTrackCount, tracks)
	}

	raw, err := r.readBE(2)
	if err != nil {
		return header{}, err
	}
	division, err := parseDivision(uint16(raw))
	if err != nil {
		return header{}, err
	}

	return header{format: int(format), tracks: int(tracks), division: division}, nil
}

func parseDivision(raw uint16) (Division, error) {
	if raw&0x8000 == 0 {
		if raw == 0 {
			return Division{}, fmt.Errorf("%w: zero ticks per quarter note", ErrTimeDivision)
		}
		return Division{Metrical: true, TicksPerQuarter: raw}, nil
	}

	// Timecode: the first byte holds the SMPTE frame rate as a negative
	// value, the second the sub-frame resolution.
	fps := uint8(-int8(raw >> 8))
	subframes := uint8(raw)
	if fps == 0 || subframes == 0 {
		return Division{}, fmt.Errorf("%w: %d fps, %d subframes", ErrTimeDivision, fps, subframes)
	}
	return Division{FPS: fps, Subframes: subframes}, nil
}

type parseState struct {
	tick         uint64
	pianoChannel uint8
	hasPiano     bool
	events       []Event
}

func parseTrackEvents(r *reader, st *parseState, length uint32) error {
	end := r.pos + int(length)
	if end > len(r.data) {
		return io.ErrUnexpectedEOF
	}

	var lastStatus byte
	for r.pos < end {
		delta, err := r.readVarLen()
		if err != nil {
			return err
		}
		st.tick += delta

		status, err := r.readByte()
		if err != nil {
			return err
		}
		if status&0x80 == 0 {
			// Running status: this byte already belongs to the event data.
			status = lastStatus
			r.pos--
		} else {
			lastStatus = status
		}

		switch {
		case status == metaPrefix:
			if err := parseMetaEvent(r, st); err != nil {
				return err
			}

		case status == sysexStart || status == sysexEscape:
			length, err := r.readVarLen()
			if err != nil {
				return err
			}
			if err := r.skip(length); err != nil {
				return err
			}

		default:
			if err := parseChannelEvent(r, st, status); err != nil {
				return err
			}
		}
	}

	// Well-formed tracks land exactly on the declared boundary; realigning
	// keeps chunk framing intact when the last event overran it.
	r.pos = end
	return nil
}

func parseMetaEvent(r *reader, st *parseState) error {
	metaType, err := r.readByte()
	if err != nil {
		return err
	}
	length, err := r.readVarLen()
	if err != nil {
		return err
	}

	if metaType == metaTempo && length == 3 {
		tempo, err := r.readBE(3)
		if err != nil {
			return err
		}
		st.events = append(st.events, Event{Kind: TempoChange, Tempo: tempo, Tick: st.tick})
		return nil
	}
	return r.skip(length)
}

func parseChannelEvent(r *reader, st *parseState, status byte) error {
	kind := status & 0xF0
	channel := status & 0x0F

	// Program changes are decoded on every channel to find the piano.
	if kind == statusProgramChange {
		program, err := r.readByte()
		if err != nil {
			return err
		}
		if program <= maxPianoProgram {
			if channel < st.pianoChannel {
				st.pianoChannel = channel
			}
			st.hasPiano = true
		}
		return nil
	}

	keyEvent := kind == statusNoteOn || kind == statusNoteOff
	if !st.hasPiano || channel != st.pianoChannel || !keyEvent {
		return skipChannelEvent(r, kind)
	}

	note, err := r.readByte()
	if err != nil {
		return err
	}
	velocity, err := r.readByte()
	if err != nil {
		return err
	}
	// Data bytes are seven-bit; a set high bit here is a stray status byte.
	if note&0x80 != 0 || velocity&0x80 != 0 {
		return fmt.Errorf("%w: note 0x%02X, velocity 0x%02X", ErrDataByte, note, velocity)
	}

	eventKind := NoteOn
	if kind == statusNoteOff || velocity == 0 {
		eventKind = NoteOff
	}
	st.events = append(st.events, Event{Kind: eventKind, Note: note, Tick: st.tick})
	return nil
}

func skipChannelEvent(r *reader, kind byte) error {
	var operands uint64
	switch kind {
	case statusNoteOff, statusNoteOn, statusNoteAftertouch, statusController, statusPitchBend:
		operands = 2
	case statusChannelPressure:
		operands = 1
	default:
		return fmt.Errorf("%w: status 0x%02X", ErrUnknownEvent, kind)
	}
	return r.skip(operands)
}

// resolveDelays converts per-event tick gaps into wall-clock waits. With
// metrical timing the gap depends on the tempo in force BEFORE the event, so
// a tempo change takes effect from the following event onward. Timecode
// delays are absolute and ignore tempo.
func resolveDelays(events []Event, division Division) {
	tempo := uint64(defaultTempo)
	var lastTick uint64
	for i := range events {
		dticks := events[i].Tick - lastTick
		lastTick = events[i].Tick

		if division.Metrical {
			events[i].Delay = time.Duration(dticks*tempo) * time.Microsecond /
				time.Duration(division.TicksPerQuarter)
		} else {
			events[i].Delay = time.Duration(dticks) * time.Second /
				time.Duration(uint64(division.FPS)*uint64(division.Subframes))
		}

		if events[i].Kind == TempoChange {
			tempo = uint64(events[i].Tempo)
		}
	}
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int { return len(r.data) - r.pos }

func (r *reader) readByte() (byte, error) {
	if r.remaining() < 1 {
		return 0, io.ErrUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// readBE reads an n-byte big-endian value, n at most 4.
func (r *reader) readBE(n int) (uint32, error) {
	if r.remaining() < n {
		return 0, io.ErrUnexpectedEOF
	}
	var v uint32
	for i := 0; i < n; i++ {
		v = v<<8 | uint32(r.data[r.pos+i])
	}
	r.pos += n
	return v, nil
}

// readVarLen reads a variable-length quantity: seven bits per byte, the high
// bit marking continuation.
func (r *reader) readVarLen() (uint64, error) {
	var v uint64
	for {
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		v = v<<7 | uint64(b&0x7F)
		if b&0x80 == 0 {
			return v, nil
		}
	}
}

func (r *reader) skip(n uint64) error {
	if uint64(r.remaining()) < n {
		return io.ErrUnexpectedEOF
	}
	r.pos += int(n)
	return nil
}

// scanChunk advances to the next chunk with the wanted identifier, stepping
// over foreign chunks by their declared length.
func (r *reader) scanChunk(id string) (uint32, error) {
	for {
		ident, err := r.readBytes(4)
		if err != nil {
			return 0, err
		}
		length, err := r.readBE(4)
		if err != nil {
			return 0, err
		}
		if string(ident) == id {
			return length, nil
		}
		if err := r.skip(uint64(length)); err != nil {
			return 0, err
		}
	}
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, io.ErrUnexpectedEOF
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}
