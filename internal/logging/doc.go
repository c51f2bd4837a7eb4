// Package logging configures structured logging for ec2ctl.
//
// Logs are JSON records written to stderr through log/slog, so they never
// mix with command output on stdout. Every record carries the module name
// and version. The level comes from the --log-level flag, falling back to
// the LOG_LEVEL environment variable, then to info. Debug records include
// the source location.
//
//	logging.SetDefaultStructuredLoggerWithLevel("ec2ctl", version, "debug")
//	slog.Debug("fetched instances page", "page", 1)
package logging
