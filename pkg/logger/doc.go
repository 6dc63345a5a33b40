// Package logger provides a small factory around Go's slog package together
// with attribute helpers that keep key names consistent across micro-fleet
// libraries.
//
// New builds a *slog.Logger configured by Option functions:
//
//   - WithLevel – minimum level (default INFO)
//   - WithFormat / WithTextFormatter / WithJSONFormatter – output format
//   - WithOutput – destination writer (default os.Stdout)
//   - WithAttr – static attributes added to every record
//   - Discard – a logger that drops everything, handy in tests
//
// # Usage
//
//	log := logger.New(logger.WithTextFormatter(), logger.WithLevel(slog.LevelDebug))
//	log.Warn("type initializer replaced",
//	    logger.Component("validation"),
//	    logger.Class(class),
//	    logger.Property("name"),
//	)
//
// Helpers such as Error return an empty slog.Attr for nil input so they can be
// passed unconditionally.
package logger
