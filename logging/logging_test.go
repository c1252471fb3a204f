package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestGetReturnsSameInstance(t *testing.T) {
	r := NewRegistry(&bytes.Buffer{})
	a := r.Get("canvas")
	b := r.Get("canvas")
	assert.Same(t, a, b)
	assert.NotSame(t, a, r.Get("shader"))
}

func TestLoggerCarriesPrefix(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry(&buf)
	r.SetLevel(log.InfoLevel)
	r.Get("encoder").Info("frame done")
	assert.Contains(t, buf.String(), "encoder")
	assert.Contains(t, buf.String(), "frame done")
}

func TestDefaultLevelSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry(&buf)
	r.Get("quiet").Info("hidden")
	assert.Empty(t, buf.String())
	r.Get("quiet").Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetLevelAppliesToExistingLoggers(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry(&buf)
	l := r.Get("late")
	r.SetLevel(log.DebugLevel)
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestResetDropsLoggers(t *testing.T) {
	r := NewRegistry(&bytes.Buffer{})
	a := r.Get("x")
	r.Reset()
	assert.NotSame(t, a, r.Get("x"))
}
