// Command shotdrop files new screenshots by dragging a floating token onto
// folder zones in the terminal
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lixenwraith/shotdrop/config"
)

// folderFlag collects repeated -folder NAME=DIR arguments
type folderFlag []folderArg

type folderArg struct {
	name string
	dir  string
}

func (f *folderFlag) String() string {
	parts := make([]string, len(*f))
	for i, a := range *f {
		parts[i] = a.name + "=" + a.dir
	}
	return strings.Join(parts, ",")
}

func (f *folderFlag) Set(v string) error {
	name, dir, ok := strings.Cut(v, "=")
	if !ok {
		dir, name = v, ""
	}
	if dir == "" {
		return fmt.Errorf("folder %q: missing directory", v)
	}
	*f = append(*f, folderArg{name: name, dir: dir})
	return nil
}

func main() {
	var (
		configPath = flag.String("config", "", "Config file (.toml, .yaml, .json); default "+config.Path())
		debug      = flag.Bool("debug", false, "Log at debug level")
		captureDir = flag.String("capture-dir", "", "Directory watched for new screenshots")
		dbPath     = flag.String("db", "", "Folder database path")
		folders    folderFlag
	)
	flag.Var(&folders, "folder", "Add a destination folder as NAME=DIR (repeatable)")
	flag.Parse()

	loader := config.NewLoader(*configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *captureDir != "" {
		cfg.Paths.CaptureDir = *captureDir
	}
	if *dbPath != "" {
		cfg.Paths.Database = *dbPath
	}
	if *debug {
		cfg.Log.Level = "debug"
	}

	log, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(cfg, loader, log, folders)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "shotdrop: %v\n", err)
		os.Exit(1)
	}
}
