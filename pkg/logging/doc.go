// Package logging provides structured logging configuration for mockroute.
//
// It wraps log/slog so the engine, the transport and the CLI share one way of
// building loggers:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	logger.Debug("route matched", "pattern", "users/{id}")
//
// Components accept a *slog.Logger and fall back to Nop() when given nil.
// The CLI layers MOCKROUTE_LOG_LEVEL and MOCKROUTE_LOG_FORMAT over its
// defaults with FromEnv, and can mirror records as JSON into a log file.
package logging
