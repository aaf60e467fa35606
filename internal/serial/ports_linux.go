//go:build linux

package serial

import (
	"os"
	"path/filepath"
	"strings"
)

// manufacturer reads the USB manufacturer string from sysfs, which the
// enumerator does not expose. The attribute lives on the USB device node a
// few levels above the tty's device link, so walk upward until it appears.
func manufacturer(path string) string {
	device, err := filepath.EvalSymlinks(filepath.Join("/sys/class/tty", filepath.Base(path), "device"))
	if err != nil {
		return ""
	}
	for dir := device; strings.HasPrefix(dir, "/sys/"); dir = filepath.Dir(dir) {
		data, err := os.ReadFile(filepath.Join(dir, "manufacturer"))
		if err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}
