//go:build integration

package integration

import (
	"os"
	"testing"
	"time"

	"github.com/artemneskorodov/piano/internal/config"
	"github.com/artemneskorodov/piano/internal/midi"
	"github.com/artemneskorodov/piano/internal/serial"
)

// pianoPort returns the board's serial device path from the environment,
// or skips the test if it is not set.
func pianoPort(t *testing.T) string {
	t.Helper()
	port := os.Getenv("PIANO_PORT")
	if port == "" {
		t.Skip("PIANO_PORT not set; skipping integration tests")
	}
	return port
}

// TestIntegrationListPorts enumerates the real ports and asserts the device
// from the environment is among them.
func TestIntegrationListPorts(t *testing.T) {
	port := pianoPort(t)

	descs, err := serial.ListPorts()
	if err != nil {
		t.Fatalf("ListPorts() error = %v", err)
	}
	for _, d := range descs {
		t.Logf("found %s: %s", d.Path, d.Label())
		if d.Path == port {
			return
		}
	}
	t.Fatalf("device %s not among the detected ports", port)
}

// TestIntegrationDispatch pushes the LED test command at the real board and
// asserts the session completes after the settle delay.
func TestIntegrationDispatch(t *testing.T) {
	port := pianoPort(t)

	cfg := config.Defaults()
	d := serial.NewDispatcher(cfg.BaudRate, cfg.ReadTimeout, cfg.SettleDelay)

	start := time.Now()
	if err := d.Dispatch(serial.Descriptor{Path: port}, []byte(config.Command)); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	elapsed := time.Since(start)

	t.Logf("dispatch took %s", elapsed)
	if elapsed < cfg.SettleDelay {
		t.Errorf("session finished in %s, before the %s settle delay", elapsed, cfg.SettleDelay)
	}
}

// TestIntegrationParseMidi parses a real MIDI file named by the environment
// and logs its summary.
func TestIntegrationParseMidi(t *testing.T) {
	path := os.Getenv("PIANO_MIDI")
	if path == "" {
		t.Skip("PIANO_MIDI not set; skipping integration tests")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	f, err := midi.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	t.Logf("format %d, %d tracks, %d events, %s", f.Format, f.Tracks, len(f.Events), f.Duration())
	if len(f.Events) == 0 {
		t.Fatal("expected a non-empty event stream")
	}
}
