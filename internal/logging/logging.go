// Package logging provides structured JSON logging on stderr. Conversational
// replies never go through here; this is for adapters and wiring only.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type entry struct {
	Timestamp string         `json:"ts"`
	Level     Level          `json:"level"`
	Component string         `json:"component"`
	Event     string         `json:"event"`
	Error     string         `json:"error,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

type Logger struct {
	component string
	out       io.Writer
}

func New(component string) *Logger {
	return &Logger{component: component, out: os.Stderr}
}

// WithOutput returns a copy writing to w instead of stderr.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	return &Logger{component: l.component, out: w}
}

func (l *Logger) Debug(event string, extra map[string]any) {
	l.log(LevelDebug, event, extra, nil)
}

func (l *Logger) Info(event string, extra map[string]any) {
	l.log(LevelInfo, event, extra, nil)
}

func (l *Logger) Warn(event string, extra map[string]any, err error) {
	l.log(LevelWarn, event, extra, err)
}

func (l *Logger) Error(event string, extra map[string]any, err error) {
	l.log(LevelError, event, extra, err)
}

func (l *Logger) log(level Level, event string, extra map[string]any, err error) {
	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: l.component,
		Event:     event,
		Extra:     extra,
	}
	if err != nil {
		e.Error = err.Error()
	}

	data, marshalErr := json.Marshal(e)
	if marshalErr != nil {
		fmt.Fprintf(l.out, `{"level":"error","component":%q,"event":"log marshal failed"}`+"\n", l.component)
		return
	}

	fmt.Fprintln(l.out, string(data))
}
