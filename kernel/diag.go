package kernel

import "github.com/sirupsen/logrus"

// Diagnostics is the non-fatal debug channel of spec.md §7: pool sentinel
// mismatches, out-of-range recorded sizes, and late deliveries. A nil
// *Diagnostics silently drops everything, so callers that don't care about
// diagnostics can leave it unset without a nil check at every call site.
type Diagnostics struct {
	log *logrus.Logger
}

// NewDiagnostics wraps a *logrus.Logger as a kernel diagnostics sink.
func NewDiagnostics(log *logrus.Logger) *Diagnostics {
	return &Diagnostics{log: log}
}

// Warnf reports a non-fatal anomaly (sentinel mismatch, size out of range).
func (d *Diagnostics) Warnf(format string, args ...any) {
	if d == nil || d.log == nil {
		return
	}
	d.log.Warnf(format, args...)
}

// trace reports a routine delivery event (task, id, origin, lateness) at
// debug level, mirroring the original's DBG_TRACE delivery line.
func (d *Diagnostics) trace(task *Task, id int, src origin, lateness uint32) {
	if d == nil || d.log == nil {
		return
	}
	originName := "app"
	if src == originISR {
		originName = "isr"
	}
	d.log.WithFields(logrus.Fields{
		"task":     task,
		"id":       id,
		"origin":   originName,
		"lateness": lateness,
	}).Debug("delivered message")
}
