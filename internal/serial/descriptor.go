package serial

import (
	"fmt"
	"strconv"
	"strings"
)

// absentValue is the marker some OS layers report for USB metadata they could
// not read. It doubles as the rendering for absent fields in labels.
const absentValue = "n/a"

// Descriptor identifies one serial device together with the USB metadata the
// OS reported for it. Optional fields are nil when nothing was reported;
// construction resolves the absent marker once so downstream code only ever
// checks for nil.
type Descriptor struct {
	Path         string
	Name         *string
	PID          *int
	Manufacturer *string
	Description  *string
}

func optional(raw string) *string {
	if raw == "" || raw == absentValue {
		return nil
	}
	return &raw
}

// Label renders the descriptor as the one-line form shown to the operator.
// PID and NAME always appear, even when unknown; MANUFACTURER and DESCRIPTION
// are appended only when the OS reported them, in that order.
func (d Descriptor) Label() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PID: %s, NAME: %s", fmtPID(d.PID), fmtField(d.Name))
	if d.Manufacturer != nil {
		b.WriteString(", MANUFACTURER: ")
		b.WriteString(*d.Manufacturer)
	}
	if d.Description != nil {
		b.WriteString(", DESCRIPTION: ")
		b.WriteString(*d.Description)
	}
	return b.String()
}

func fmtPID(v *int) string {
	if v == nil {
		return absentValue
	}
	return strconv.Itoa(*v)
}

func fmtField(v *string) string {
	if v == nil {
		return absentValue
	}
	return *v
}

// Labels renders one label per descriptor. The result is index-aligned with
// the input, so a choice made over the labels maps straight back to its
// descriptor.
func Labels(descs []Descriptor) []string {
	labels := make([]string, len(descs))
	for i, d := range descs {
		labels[i] = d.Label()
	}
	return labels
}
