package core

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
)

// Finisher restores the host surface (tcell screen) to a sane state
type Finisher interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashFinisher Finisher
	crashLogger   *slog.Logger
	crashOut      io.Writer = os.Stderr

	// exitFunc is swapped in tests
	exitFunc = os.Exit
)

// SetCrashFinisher registers the surface to restore before a crash report
// Pass nil to clear
func SetCrashFinisher(f Finisher) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashFinisher = f
}

// SetCrashLogger registers a logger that also receives the crash report
func SetCrashLogger(l *slog.Logger) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashLogger = l
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	fin, logger, out, exit := crashFinisher, crashLogger, crashOut, exitFunc
	crashMu.Unlock()

	// Restore terminal first so the report is readable
	if fin != nil {
		fin.Fini()
	}

	stack := debug.Stack()
	if logger != nil {
		logger.Error("crash", "panic", fmt.Sprint(r), "stack", string(stack))
	}

	// \r\n keeps the report straight if the terminal is still in raw mode
	fmt.Fprintf(out, "\r\n\x1b[31mSHOTDROP CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(out, "Stack Trace:\r\n%s\r\n", stack)

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
