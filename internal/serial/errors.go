package serial

import (
	"errors"
	"fmt"
)

// ErrNoPorts is returned when enumeration finds nothing to offer.
var ErrNoPorts = errors.New("no serial ports detected")

// ErrPortVanished marks a device that was listed but was gone by the time the
// session tried to open it, typically an unplugged cable.
var ErrPortVanished = errors.New("device disappeared after listing")

// SessionError reports which step of a dispatch failed on which port.
type SessionError struct {
	Port string
	Op   string
	Err  error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("port %s: %s: %v", e.Port, e.Op, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }
