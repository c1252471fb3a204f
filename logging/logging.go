// Package logging hands out named loggers backed by a shared registry.
// The registry is an explicit service rather than package-level state so
// tests can construct isolated instances and reset them between cases.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Registry caches one logger per name. Loggers obtained from the same
// registry share the output writer and level.
type Registry struct {
	mu      sync.Mutex
	out     io.Writer
	level   log.Level
	loggers map[string]*log.Logger
}

// NewRegistry creates a registry writing to out. A nil out defaults to stderr.
func NewRegistry(out io.Writer) *Registry {
	if out == nil {
		out = os.Stderr
	}
	return &Registry{
		out:     out,
		level:   log.WarnLevel,
		loggers: make(map[string]*log.Logger),
	}
}

// SetLevel applies the level to every existing and future logger.
func (r *Registry) SetLevel(level log.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.level = level
	for _, l := range r.loggers {
		l.SetLevel(level)
	}
}

// Get returns the logger for name, creating it on first use.
func (r *Registry) Get(name string) *log.Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[name]; ok {
		return l
	}
	l := log.NewWithOptions(r.out, log.Options{Prefix: name})
	l.SetLevel(r.level)
	r.loggers[name] = l
	return l
}

// Reset drops all cached loggers.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loggers = make(map[string]*log.Logger)
}

var defaultRegistry = NewRegistry(os.Stderr)

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }
