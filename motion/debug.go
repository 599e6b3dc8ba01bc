package motion

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// DebugMode selects a category of controller diagnostics.
type DebugMode uint8

const (
	DebugModeState DebugMode = iota
	DebugModeVelocity
	DebugModeJump
	DebugModeSlide
	DebugModeCrouch
	debugModeCount
)

// DebugModeList holds the names of every debug mode, indexed by mode.
var DebugModeList = []string{
	"state",
	"velocity",
	"jump",
	"slide",
	"crouch",
}

func (m DebugMode) String() string {
	if int(m) < len(DebugModeList) {
		return DebugModeList[m]
	}
	return "unknown"
}

// ParseDebugMode returns the mode with the given name.
func ParseDebugMode(name string) (DebugMode, bool) {
	for i, n := range DebugModeList {
		if strings.EqualFold(n, name) {
			return DebugMode(i), true
		}
	}
	return 0, false
}

// Debugger writes controller diagnostics for the enabled modes. A nil Debugger is silent.
type Debugger struct {
	log     logrus.FieldLogger
	enabled [debugModeCount]bool
}

// NewDebugger returns a debugger logging to log with the given modes enabled.
func NewDebugger(log logrus.FieldLogger, modes ...DebugMode) *Debugger {
	d := &Debugger{log: log}
	for _, m := range modes {
		if m < debugModeCount {
			d.enabled[m] = true
		}
	}
	return d
}

// Toggle flips the given mode.
func (d *Debugger) Toggle(mode DebugMode) {
	if mode < debugModeCount {
		d.enabled[mode] = !d.enabled[mode]
	}
}

// Enabled reports whether mode is enabled.
func (d *Debugger) Enabled(mode DebugMode) bool {
	return d != nil && d.log != nil && mode < debugModeCount && d.enabled[mode]
}

// Notify logs the formatted message at debug level if mode is enabled and cond holds.
func (d *Debugger) Notify(mode DebugMode, cond bool, format string, args ...any) {
	if !cond || !d.Enabled(mode) {
		return
	}
	d.log.WithField("mode", mode.String()).Debugf(format, args...)
}

// with returns a debugger sharing d's modes but logging with an extra field.
func (d *Debugger) with(key string, value any) *Debugger {
	if d == nil || d.log == nil {
		return d
	}
	return &Debugger{log: d.log.WithField(key, value), enabled: d.enabled}
}
