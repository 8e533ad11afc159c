// Package logger holds the zerolog logger shared by the whole process.
// main calls Init once; packages without an injected logger call Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	// Level accepts zerolog level names plus "warning"; anything else is info.
	Level string
	// Pretty writes through zerolog.ConsoleWriter instead of JSON.
	Pretty  bool
	Service string
	Env     string
	Output  io.Writer // os.Stdout when nil
}

var (
	mu     sync.Mutex
	shared *zerolog.Logger
)

// New returns a logger configured by opts. It leaves the shared logger alone.
func New(opts Options) zerolog.Logger {
	var w io.Writer = os.Stdout
	if opts.Output != nil {
		w = opts.Output
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	fields := zerolog.New(w).Level(ParseLevel(opts.Level)).With().Timestamp()
	if opts.Service != "" {
		fields = fields.Str("service", opts.Service)
	}
	if opts.Env != "" {
		fields = fields.Str("env", opts.Env)
	}
	return fields.Logger()
}

// Init sets up the shared logger and returns it. Later calls return the
// logger built by the first one.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if shared == nil {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		zerolog.SetGlobalLevel(ParseLevel(opts.Level))
		l := New(opts)
		shared = &l
	}
	return *shared
}

// Get returns the shared logger and panics when Init has not run.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if shared == nil {
		panic("logger: Get called before Init")
	}
	return *shared
}

// Reset forgets the shared logger and restores the global level. Tests use it
// to call Init again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	shared = nil
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
