package logging

import "log/slog"

// LevelTrace is a custom level below slog.LevelDebug for very verbose output
// such as per-file scan decisions.
const LevelTrace = slog.LevelDebug - 4

// LevelFromVerbosity maps a -v count to a slog level.
//
//	0 (default) -> Warn
//	1 (-v)      -> Info
//	2 (-vv)     -> Debug
//	3+ (-vvv)   -> Trace
//
// Negative counts are treated as zero.
func LevelFromVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	case verbosity == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}
