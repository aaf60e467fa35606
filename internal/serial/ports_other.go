//go:build !linux

package serial

// manufacturer has no portable source outside sysfs; other platforms make do
// with what the enumerator reports.
func manufacturer(string) string { return "" }
