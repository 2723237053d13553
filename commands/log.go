package commands

import (
	"context"
	"fmt"
	"log"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// logger adapts the level-prefixed 'log' output used by the commands to the glog.Logger
// interface expected by the credential manager.
type logger struct {
	debug bool
}

var _ glog.Logger = logger{}

func newLogger(debug bool) glog.Logger {
	return logger{debug: debug}
}

func (l logger) Trace(msg string, args ...any) {
	if l.debug {
		l.print("TRACE", msg, args...)
	}
}

func (l logger) Debug(msg string, args ...any) {
	if l.debug {
		l.print("DEBUG", msg, args...)
	}
}

func (l logger) Info(msg string, args ...any) {
	l.print("INFO", msg, args...)
}

func (l logger) Warn(msg string, args ...any) {
	l.print("WARN", msg, args...)
}

func (l logger) Error(msg string, args ...any) {
	l.print("ERROR", msg, args...)
}

func (l logger) Fatal(msg string, args ...any) {
	log.Fatalf("%-5s %s%s", "FATAL", msg, fields(args...))
}

func (l logger) WithContext(context.Context) glog.Logger {
	return l
}

func (l logger) print(level, msg string, args ...any) {
	log.Printf("%-5s %s%s", level, msg, fields(args...))
}

// fields formats key/value pairs as '  key:value'.
func fields(args ...any) string {
	var b strings.Builder

	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, "  %v:%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, "  %v", args[i])
		}
	}

	return b.String()
}
