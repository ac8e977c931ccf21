package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/yuma/pkg/paths"
)

// sink is the writer behind every logger handed out by this package, so
// component loggers created at package init follow SetupLogger's choice
type sink struct {
	mu   sync.RWMutex
	w    io.Writer
	file *os.File
}

func (s *sink) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.Write(p)
}

// set swaps the destination and closes the log file it replaces
func (s *sink) set(w io.Writer, file *os.File) {
	s.mu.Lock()
	prev := s.file
	s.w, s.file = w, file
	s.mu.Unlock()
	if prev != nil && prev != file {
		_ = prev.Close()
	}
}

var output = &sink{w: os.Stderr}

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// levelFor maps the -v count to a level: warn, info, debug, then trace
func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger sets the global level from verbosity and sends output to
// stderr and to the log file in the state directory. It may be called
// again once configuration raises the verbosity.
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}}

	logPath := getLogFilePath()
	file, fileErr := openLogFile(logPath)
	if fileErr == nil {
		writers = append(writers, file)
	}
	output.set(io.MultiWriter(writers...), file)

	ctx := zerolog.New(output).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logPath).Msg("Log file unavailable, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", logPath).Msg("Logger initialized")
}

// GetLogger returns a logger tagged with the component name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// getLogFilePath follows the state directory rules of pkg/paths
func getLogFilePath() string {
	p, err := paths.New()
	if err != nil || !filepath.IsAbs(p.StateDir()) {
		return paths.LogFileName
	}
	return p.LogFilePath()
}

func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// LogCommand logs an external command about to run
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
