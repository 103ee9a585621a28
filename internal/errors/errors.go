package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/habitlit/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Report logs err and writes the formatted message to w. It returns false
// when err is nil.
func Report(w io.Writer, err error) bool {
	if err == nil {
		return false
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(w, Format(err))
	return true
}

// Fatal reports err on stderr and exits the program with exit code 1
func Fatal(err error) {
	if Report(os.Stderr, err) {
		os.Exit(1)
	}
}
