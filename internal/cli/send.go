package cli

import (
	"fmt"
	"io"

	"github.com/artemneskorodov/piano/internal/picker"
	"github.com/artemneskorodov/piano/internal/serial"
)

// promptTitle is the question shown over the port list.
const promptTitle = "Choose ESP COM-port"

type portLister func() ([]serial.Descriptor, error)

type commandSender interface {
	Dispatch(desc serial.Descriptor, payload []byte) error
}

// runSend is the core flow from port enumeration to the dispatched command.
// A cancelled prompt is a clean exit, not an error.
func runSend(out io.Writer, list portLister, prompt picker.Prompter, sender commandSender, portPath string, payload []byte) error {
	descs, err := list()
	if err != nil {
		return fmt.Errorf("failed to list serial ports: %w", err)
	}
	if len(descs) == 0 {
		return serial.ErrNoPorts
	}

	if portPath != "" {
		for _, d := range descs {
			if d.Path == portPath {
				return sender.Dispatch(d, payload)
			}
		}
		return fmt.Errorf("port %s not among the detected devices", portPath)
	}

	labels := serial.Labels(descs)
	sel, err := prompt.Choose(promptTitle, labels)
	if err != nil {
		return err
	}
	if sel.Cancelled {
		fmt.Fprintln(out, "Cancel.")
		return nil
	}

	fmt.Fprintf(out, "Your chose: %s\n", labels[sel.Index])
	return sender.Dispatch(descs[sel.Index], payload)
}
