// Package log provides the logging abstraction used by eqsolve components.
//
// The solver and watcher log through the [Logger] interface so they can be
// embedded without pulling a particular logging library into the caller.
// A zerolog-backed implementation and a no-op logger are provided.
//
// # Usage
//
//	logger := log.NewZerologAdapter(os.Stderr, zerolog.InfoLevel)
//	logger.Info("solved", log.String("target", "T"))
//
// Scope fields to a unit of work with With:
//
//	run := logger.With(log.String("solve_id", id.String()))
//
// Tests use the no-op logger:
//
//	logger := log.NewNoopLogger()
package log
