package logger

import (
	"log"
)

// StdLogger is a lightweight implementation backed by Go's log package.
type StdLogger struct {
	verbose bool
	tag     string
}

// NewStd creates a StdLogger.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose}
}

// WithTag returns a copy whose lines carry the tag, so one invocation's
// output can be told apart from another's.
func (l *StdLogger) WithTag(tag string) *StdLogger {
	return &StdLogger{verbose: l.verbose, tag: tag}
}

func (l *StdLogger) println(level, msg string, rest ...interface{}) {
	args := make([]interface{}, 0, len(rest)+3)
	args = append(args, level)
	if l.tag != "" {
		args = append(args, "["+l.tag+"]")
	}
	args = append(args, msg)
	args = append(args, rest...)
	log.Println(args...)
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.println("[DEBUG]", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.println("[INFO]", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.println("[WARN]", msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.println("[ERROR]", msg, err, fields)
}
