package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedLogger(buf *bytes.Buffer, level Level) *ConsoleLogger {
	l := NewConsoleLogger(buf, level)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestConsoleLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelDebug)

	l.Infof("scanning %s with %d workers", "/src", 8)

	assert.Equal(t, "[03:04:05] [INFO] scanning /src with 8 workers\n", buf.String())
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelWarn)

	l.Debugf("debug")
	l.Infof("info")
	l.Warnf("warn")
	l.Errorf("error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"[03:04:05] [WARN] warn",
		"[03:04:05] [ERROR] error",
	}, lines)
}

func TestConsoleLogger_Color(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelInfo)
	assert.False(t, IsTerminal(&buf))

	l.SetColor(true)
	l.Errorf("boom")

	assert.Contains(t, buf.String(), "\x1b[31mERROR\x1b[0m")
}

func TestConsoleLogger_NilWriter(t *testing.T) {
	l := NewConsoleLogger(nil, LevelDebug)
	assert.NotPanics(t, func() { l.Errorf("dropped") })

	var nilLogger *ConsoleLogger
	assert.NotPanics(t, func() { nilLogger.Infof("dropped") })
}

func TestConsoleLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelInfo)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			l.Infof("message %d", i)
		})
	}
	wg.Wait()

	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 20)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}
