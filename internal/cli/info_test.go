package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/artemneskorodov/piano/internal/midi"
	"github.com/artemneskorodov/piano/internal/serial"
)

func TestDivisionString(t *testing.T) {
	tests := []struct {
		name string
		div  midi.Division
		want string
	}{
		{
			name: "metrical",
			div:  midi.Division{Metrical: true, TicksPerQuarter: 480},
			want: "metrical, 480 ticks per quarter note",
		},
		{
			name: "timecode",
			div:  midi.Division{FPS: 25, Subframes: 40},
			want: "timecode, 25 fps, 40 subframes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := divisionString(tt.div); got != tt.want {
				t.Errorf("divisionString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func sampleFile() *midi.File {
	return &midi.File{
		Format:   0,
		Tracks:   1,
		Division: midi.Division{Metrical: true, TicksPerQuarter: 100},
		Events: []midi.Event{
			{Kind: midi.TempoChange, Tempo: 250000, Tick: 0},
			{Kind: midi.NoteOn, Note: 60, Tick: 100, Delay: 250 * time.Millisecond},
			{Kind: midi.NoteOff, Note: 60, Tick: 200, Delay: 250 * time.Millisecond},
		},
	}
}

func TestPrintInfoTable(t *testing.T) {
	var out bytes.Buffer
	if err := printInfoTable(&out, sampleFile()); err != nil {
		t.Fatalf("printInfoTable() error = %v", err)
	}

	for _, want := range []string{
		"Format",
		"Division",
		"metrical, 100 ticks per quarter note",
		"1 on, 1 off",
		"500ms",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("table output missing %q:\n%s", want, out.String())
		}
	}
}

func TestPrintInfoJSON(t *testing.T) {
	var out bytes.Buffer
	if err := printInfoJSON(&out, sampleFile()); err != nil {
		t.Fatalf("printInfoJSON() error = %v", err)
	}

	var decoded fileJSON
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Events) != 3 {
		t.Fatalf("events = %d, want 3", len(decoded.Events))
	}
	if decoded.Events[0].Kind != "tempo" || decoded.Events[0].Tempo != 250000 {
		t.Errorf("first event = %+v, want the tempo change", decoded.Events[0])
	}
	if decoded.Events[1].DelayUS != 250000 {
		t.Errorf("delay_us = %d, want 250000", decoded.Events[1].DelayUS)
	}
}

func TestPrintPortsTable(t *testing.T) {
	var out bytes.Buffer
	if err := printPortsTable(&out, twoPorts()); err != nil {
		t.Fatalf("printPortsTable() error = %v", err)
	}
	if !strings.Contains(out.String(), "/dev/ttyUSB0") {
		t.Errorf("table output missing the device path:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "PID: 4292, NAME: ttyUSB0, MANUFACTURER: Silicon Labs") {
		t.Errorf("table output missing the label:\n%s", out.String())
	}
}

func TestPrintPortsTableEmpty(t *testing.T) {
	var out bytes.Buffer
	if err := printPortsTable(&out, nil); err != nil {
		t.Fatalf("printPortsTable() error = %v", err)
	}
	if out.String() != "No serial ports found.\n" {
		t.Errorf("output = %q, want the empty notice", out.String())
	}
}

func TestPrintPortsJSON(t *testing.T) {
	var out bytes.Buffer
	if err := printPortsJSON(&out, twoPorts()); err != nil {
		t.Fatalf("printPortsJSON() error = %v", err)
	}

	var decoded []portJSON
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("ports = %d, want 2", len(decoded))
	}
	if decoded[0].PID == nil || *decoded[0].PID != 4292 {
		t.Errorf("pid = %v, want 4292", decoded[0].PID)
	}
	if decoded[1].Manufacturer != nil {
		t.Errorf("manufacturer = %v, want omitted", decoded[1].Manufacturer)
	}
	if decoded[0].Label != serial.Labels(twoPorts())[0] {
		t.Errorf("label = %q, not aligned with Label()", decoded[0].Label)
	}
}
