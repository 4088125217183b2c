// Package logger provides the leveled logger shared by all envlogger packages.
package logger

// Log levels accepted by New and the log_level setting.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Levels lists the accepted level names in increasing severity.
var Levels = []string{DebugLevel, InfoLevel, WarnLevel, ErrorLevel}

// ValidLevel reports whether s is one of the accepted level names.
func ValidLevel(s string) bool {
	for _, l := range Levels {
		if s == l {
			return true
		}
	}
	return false
}
