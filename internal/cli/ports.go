package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/artemneskorodov/piano/internal/serial"
)

var portsJSON bool

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List detected serial ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		descs, err := serial.ListPorts()
		if err != nil {
			return fmt.Errorf("failed to list serial ports: %w", err)
		}
		if portsJSON {
			return printPortsJSON(cmd.OutOrStdout(), descs)
		}
		return printPortsTable(cmd.OutOrStdout(), descs)
	},
}

func init() {
	portsCmd.Flags().BoolVar(&portsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(portsCmd)
}

func printPortsTable(out io.Writer, descs []serial.Descriptor) error {
	if len(descs) == 0 {
		fmt.Fprintln(out, "No serial ports found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tLABEL")
	for _, d := range descs {
		fmt.Fprintf(w, "%s\t%s\n", d.Path, d.Label())
	}
	return w.Flush()
}

type portJSON struct {
	Path         string  `json:"path"`
	Name         *string `json:"name,omitempty"`
	PID          *int    `json:"pid,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Description  *string `json:"description,omitempty"`
	Label        string  `json:"label"`
}

func printPortsJSON(out io.Writer, descs []serial.Descriptor) error {
	ports := make([]portJSON, 0, len(descs))
	for _, d := range descs {
		ports = append(ports, portJSON{
			Path:         d.Path,
			Name:         d.Name,
			PID:          d.PID,
			Manufacturer: d.Manufacturer,
			Description:  d.Description,
			Label:        d.Label(),
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ports)
}
