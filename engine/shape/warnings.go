package shape

import (
	"sync"

	"go.uber.org/zap"
)

// Warnings emits one-shot notices keyed by shape identifier. Deprecated
// entry points route through a shared Warnings instance so each notice is
// logged once per key instead of once per call, without every call site
// holding its own "already warned" flag.
type Warnings struct {
	mu     sync.Mutex
	logger *zap.Logger
	seen   map[string]struct{}
}

// NewWarnings creates a warning registry that logs through the given logger.
//
// Parameters:
//   - logger: destination for warning records; nil falls back to a no-op logger
//
// Returns:
//   - *Warnings: the newly created registry instance
func NewWarnings(logger *zap.Logger) *Warnings {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Warnings{
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// WarnOnce logs a warning for the given shape key. Repeat calls with the same
// key are silently dropped.
//
// Parameters:
//   - shape: identifier the one-shot state is keyed by
//   - msg: the warning message
//   - fields: optional structured fields appended to the record
func (w *Warnings) WarnOnce(shape, msg string, fields ...zap.Field) {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.seen[shape]; ok {
		return
	}
	w.seen[shape] = struct{}{}
	fields = append([]zap.Field{zap.String("shape", shape)}, fields...)
	w.logger.Warn(msg, fields...)
}

// Deprecated logs a deprecation notice for the given shape key. Repeat calls
// with the same key are silently dropped.
//
// Parameters:
//   - shape: identifier the one-shot state is keyed by
//   - oldCall: the deprecated entry point that was invoked
//   - newCall: the replacement the caller should migrate to
func (w *Warnings) Deprecated(shape, oldCall, newCall string) {
	w.WarnOnce(shape, "deprecated call",
		zap.String("deprecated", oldCall),
		zap.String("replacement", newCall),
	)
}

// Warned reports whether a notice has already been emitted for the key.
//
// Parameters:
//   - shape: identifier to check
//
// Returns:
//   - bool: true if a notice has fired for this key
func (w *Warnings) Warned(shape string) bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.seen[shape]
	return ok
}

// Reset clears all one-shot state, re-arming every key.
func (w *Warnings) Reset() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seen = make(map[string]struct{})
}
