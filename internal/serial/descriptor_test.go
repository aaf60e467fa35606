package serial

import (
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
		want string
	}{
		{
			name: "all fields known",
			desc: Descriptor{
				Path:         "/dev/ttyUSB0",
				Name:         strPtr("ttyUSB0"),
				PID:          intPtr(4292),
				Manufacturer: strPtr("Silicon Labs"),
				Description:  strPtr("CP2102N USB to UART Bridge Controller"),
			},
			want: "PID: 4292, NAME: ttyUSB0, MANUFACTURER: Silicon Labs, DESCRIPTION: CP2102N USB to UART Bridge Controller",
		},
		{
			name: "manufacturer only",
			desc: Descriptor{
				Path:         "/dev/ttyUSB0",
				Name:         strPtr("ttyUSB0"),
				PID:          intPtr(4292),
				Manufacturer: strPtr("Silicon Labs"),
			},
			want: "PID: 4292, NAME: ttyUSB0, MANUFACTURER: Silicon Labs",
		},
		{
			name: "description only",
			desc: Descriptor{
				Path:        "/dev/ttyACM0",
				Name:        strPtr("ttyACM0"),
				PID:         intPtr(2),
				Description: strPtr("USB JTAG/serial debug unit"),
			},
			want: "PID: 2, NAME: ttyACM0, DESCRIPTION: USB JTAG/serial debug unit",
		},
		{
			name: "bare platform port",
			desc: Descriptor{Path: "/dev/ttyS0", Name: strPtr("ttyS0")},
			want: "PID: n/a, NAME: ttyS0",
		},
		{
			name: "nothing known",
			desc: Descriptor{Path: "COM9"},
			want: "PID: n/a, NAME: n/a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.desc.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	tests := []struct {
		raw  string
		want *string
	}{
		{raw: "", want: nil},
		{raw: "n/a", want: nil},
		{raw: "Silicon Labs", want: strPtr("Silicon Labs")},
		{raw: "N/A", want: strPtr("N/A")}, // only the exact lowercase marker is absent
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := optional(tt.raw)
			switch {
			case got == nil && tt.want != nil:
				t.Errorf("optional(%q) = nil, want %q", tt.raw, *tt.want)
			case got != nil && tt.want == nil:
				t.Errorf("optional(%q) = %q, want nil", tt.raw, *got)
			case got != nil && tt.want != nil && *got != *tt.want:
				t.Errorf("optional(%q) = %q, want %q", tt.raw, *got, *tt.want)
			}
		})
	}
}

func TestLabelsAlignment(t *testing.T) {
	descs := []Descriptor{
		{Path: "/dev/ttyUSB0", Name: strPtr("ttyUSB0"), PID: intPtr(4292)},
		{Path: "/dev/ttyS0", Name: strPtr("ttyS0")},
		{Path: "/dev/ttyACM0", Name: strPtr("ttyACM0"), PID: intPtr(2), Manufacturer: strPtr("Espressif")},
	}

	labels := Labels(descs)
	if len(labels) != len(descs) {
		t.Fatalf("len(labels) = %d, want %d", len(labels), len(descs))
	}
	for i, d := range descs {
		if labels[i] != d.Label() {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], d.Label())
		}
	}
}

func TestLabelsEmpty(t *testing.T) {
	if got := Labels(nil); len(got) != 0 {
		t.Errorf("Labels(nil) = %v, want empty", got)
	}
}
