package config

import "time"

const (
	// DefaultBaudRate matches the UART setup of the piano firmware.
	DefaultBaudRate = 115200

	// DefaultReadTimeout bounds reads on an opened port.
	DefaultReadTimeout = time.Second

	// DefaultSettleDelay gives a board that resets on open time to boot
	// before the command goes out.
	DefaultSettleDelay = 1500 * time.Millisecond

	// Command is the LED lighting test payload: one byte per color step.
	Command = "rgbgbr"
)

// Config holds the session settings for talking to the board. There is no
// config file; defaults are overridden per run through flags.
type Config struct {
	BaudRate    int
	ReadTimeout time.Duration
	SettleDelay time.Duration
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		BaudRate:    DefaultBaudRate,
		ReadTimeout: DefaultReadTimeout,
		SettleDelay: DefaultSettleDelay,
	}
}
