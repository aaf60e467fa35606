package serial

import (
	"path/filepath"
	"strconv"

	"go.bug.st/serial/enumerator"
)

// ListPorts enumerates the serial devices attached to the host.
func ListPorts() ([]Descriptor, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	descs := make([]Descriptor, 0, len(ports))
	for _, p := range ports {
		descs = append(descs, newDescriptor(p))
	}
	return descs, nil
}

func newDescriptor(p *enumerator.PortDetails) Descriptor {
	d := Descriptor{
		Path:         p.Name,
		Name:         optional(filepath.Base(p.Name)),
		Description:  optional(p.Product),
		Manufacturer: optional(manufacturer(p.Name)),
	}
	if p.IsUSB {
		d.PID = parsePID(p.PID)
	}
	return d
}

// parsePID converts the enumerator's hexadecimal product ID to its decimal
// value. Empty or malformed IDs resolve to absent.
func parsePID(raw string) *int {
	if raw == "" || raw == absentValue {
		return nil
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return nil
	}
	pid := int(v)
	return &pid
}
