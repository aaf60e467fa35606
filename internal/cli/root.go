// Package cli wires the piano commands together.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/artemneskorodov/piano/internal/config"
	"github.com/artemneskorodov/piano/internal/picker"
	"github.com/artemneskorodov/piano/internal/serial"
)

// Overridden at build time via -ldflags.
var version = "dev"

var (
	flagPort   string
	flagBaud   int
	flagSettle time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "piano",
	Short: "Companion CLI for the ESP32 LED piano",
	Long: `piano finds the board's serial port, lets you pick it interactively and
sends the LED lighting test command. It also inspects MIDI files and plays
them as a terminal piano roll.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Defaults()
		cfg.BaudRate = flagBaud
		cfg.SettleDelay = flagSettle

		sender := serial.NewDispatcher(cfg.BaudRate, cfg.ReadTimeout, cfg.SettleDelay)
		return runSend(cmd.OutOrStdout(), serial.ListPorts, picker.TTY{}, sender, flagPort, []byte(config.Command))
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagPort, "port", "", "serial device path, skips the interactive prompt")
	rootCmd.Flags().IntVar(&flagBaud, "baud", config.DefaultBaudRate, "baud rate for the serial session")
	rootCmd.Flags().DurationVar(&flagSettle, "settle", config.DefaultSettleDelay, "wait between opening the port and writing")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
