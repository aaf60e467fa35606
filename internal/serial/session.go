package serial

import (
	"io"
	"os"
	"strings"
	"time"

	"go.bug.st/serial"
)

// Port is the slice of the underlying serial port the dispatcher touches.
// Tests substitute a recording fake.
type Port interface {
	io.Writer
	io.Closer
	SetReadTimeout(time.Duration) error
	Drain() error
}

// OpenFunc opens a device path in 8N1 mode at the given baud rate.
type OpenFunc func(path string, baudRate int) (Port, error)

func openPort(path string, baudRate int) (Port, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}
	return port, nil
}

// Dispatcher opens a freshly selected device and pushes a command out.
type Dispatcher struct {
	baudRate    int
	readTimeout time.Duration
	settleDelay time.Duration

	open OpenFunc
}

// NewDispatcher builds a dispatcher from session settings, normally the
// values in config.Defaults().
func NewDispatcher(baudRate int, readTimeout, settleDelay time.Duration) *Dispatcher {
	return &Dispatcher{
		baudRate:    baudRate,
		readTimeout: readTimeout,
		settleDelay: settleDelay,
		open:        openPort,
	}
}

// Dispatch opens the device, waits for it to settle, writes payload in a
// single call and flushes it down the wire. The port is released on every
// path once opened. Boards that reset on open are still booting during the
// settle delay; writing earlier loses the command.
func (d *Dispatcher) Dispatch(desc Descriptor, payload []byte) error {
	port, err := d.open(desc.Path, d.baudRate)
	if err != nil {
		if vanished(desc.Path) {
			err = ErrPortVanished
		}
		return &SessionError{Port: desc.Path, Op: "open", Err: err}
	}
	defer port.Close()

	if err := port.SetReadTimeout(d.readTimeout); err != nil {
		return &SessionError{Port: desc.Path, Op: "configure", Err: err}
	}

	time.Sleep(d.settleDelay)

	n, err := port.Write(payload)
	if err != nil {
		return &SessionError{Port: desc.Path, Op: "write", Err: err}
	}
	if n < len(payload) {
		return &SessionError{Port: desc.Path, Op: "write", Err: io.ErrShortWrite}
	}

	if err := port.Drain(); err != nil {
		return &SessionError{Port: desc.Path, Op: "flush", Err: err}
	}
	return nil
}

// vanished reports whether the device node behind a failed open is gone.
// Windows COM names are not paths and cannot be probed this way.
func vanished(path string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}
