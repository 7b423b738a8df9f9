package logger

import (
	"fmt"
	"sort"
	"strings"
	"testing"
)

// TestLogger writes through t.Logf so output only shows for failing or
// verbose tests. Fields are appended as key=value pairs.
type TestLogger struct {
	t      testing.TB
	fields map[string]interface{}
}

func NewTestLogger(t testing.TB) Logger {
	return &TestLogger{t: t}
}

func (l *TestLogger) log(level, msg string) {
	if l.t == nil {
		return
	}
	l.t.Helper()
	l.t.Logf("[%s] %s%s", level, msg, l.suffix())
}

func (l *TestLogger) suffix() string {
	if len(l.fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, l.fields[k])
	}
	return b.String()
}

func (l *TestLogger) Debug(msg string) { l.log("DEBUG", msg) }
func (l *TestLogger) Info(msg string)  { l.log("INFO", msg) }
func (l *TestLogger) Warn(msg string)  { l.log("WARN", msg) }
func (l *TestLogger) Error(msg string) { l.log("ERROR", msg) }
func (l *TestLogger) Fatal(msg string) { l.log("FATAL", msg) }

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &TestLogger{t: l.t, fields: merged}
}
