package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Version information for the kestrel tool
const (
	Version        = "0.3.0"
	GrammarVersion = "1.2.0"
	BuildDate      = "2026-10-17"
)

// CommitSHA is set during build with -ldflags
var CommitSHA = "unknown"

// VersionInfo contains version and build information
type VersionInfo struct {
	Version        string `json:"version"`
	GrammarVersion string `json:"grammar_version"`
	BuildDate      string `json:"build_date"`
	CommitSHA      string `json:"commit_sha"`
	GoVersion      string `json:"go_version"`
	Platform       string `json:"platform"`
	Arch           string `json:"arch"`
}

// GetVersionInfo returns structured version information
func GetVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:        Version,
		GrammarVersion: GrammarVersion,
		BuildDate:      BuildDate,
		CommitSHA:      CommitSHA,
		GoVersion:      runtime.Version(),
		Platform:       runtime.GOOS,
		Arch:           runtime.GOARCH,
	}
}

// PrintVersion writes version information in a consistent format
func PrintVersion(w io.Writer, toolName string, jsonOutput bool) error {
	info := GetVersionInfo()

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "%s v%s\n", toolName, info.Version)
	fmt.Fprintf(w, "Grammar: %s\n", info.GrammarVersion)
	fmt.Fprintf(w, "Build Date: %s\n", info.BuildDate)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Fprintf(w, "Commit: %s\n", info.CommitSHA)
	}
	fmt.Fprintf(w, "Go Version: %s\n", info.GoVersion)
	_, err := fmt.Fprintf(w, "Platform: %s/%s\n", info.Platform, info.Arch)
	return err
}

// Logger provides levelled logging for the CLI. Every line carries the run
// identifier so output from repeated watch passes can be told apart.
type Logger struct {
	Verbose   bool
	DebugMode bool
	RunID     string
	Out       io.Writer

	mu  *sync.Mutex
	now func() time.Time
}

// NewLogger creates a logger writing to stderr with a fresh run identifier
func NewLogger(verbose, debug bool) *Logger {
	return &Logger{
		Verbose:   verbose,
		DebugMode: debug,
		RunID:     uuid.NewString(),
		Out:       os.Stderr,
		mu:        &sync.Mutex{},
		now:       time.Now,
	}
}

// WithRun returns a copy of the logger tagged with a new run identifier.
// The copy shares the output lock.
func (l *Logger) WithRun() *Logger {
	next := *l
	next.RunID = uuid.NewString()
	return &next
}

func (l *Logger) log(level, format string, args ...interface{}) {
	out := l.Out
	if out == nil {
		out = os.Stderr
	}
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	fmt.Fprintf(out, "[%s] %s %s: %s\n", level, now().Format("15:04:05"), shortRun(l.RunID), fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose || l.DebugMode {
		l.log("INFO", format, args...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		l.log("DEBUG", format, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log("WARN", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

func shortRun(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ErrReported marks an error whose details were already shown to the user.
// HandleError only sets the exit status for it.
var ErrReported = errors.New("already reported")

// exit is replaced in tests
var exit = os.Exit

// HandleError logs err and exits with status 1. A nil error returns normally.
func HandleError(err error, logger *Logger) {
	if err == nil {
		return
	}
	if !errors.Is(err, ErrReported) {
		if logger != nil {
			logger.Error("%v", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	exit(1)
}
