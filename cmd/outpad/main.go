// Package main is the entry point for the outpad editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"outpad/internal/app"
	"outpad/internal/config"
	"outpad/internal/engine/buffer"
	"outpad/internal/renderer/backend"
	"outpad/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	scriptPath string
	batch      bool
	file       string

	wordWrap       bool
	showWhitespace bool
	wordWrapSet    bool
	whitespaceSet  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.wordWrapSet {
		cfg.WordWrap = opts.wordWrap
	}
	if opts.whitespaceSet {
		cfg.ShowWhitespace = opts.showWhitespace
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	ed, err := openEditor(opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	ed.Buffer().SetTabWidth(cfg.TabWidth)

	if opts.scriptPath != "" {
		if err := runScript(ed, cfg, opts.scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.batch {
		return finishBatch(ed)
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		term.PostEvent(backend.Event{Type: backend.EventInterrupt})
	}()

	application := app.New(cfg, term, ed, logger)
	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openEditor loads the named file, binds a fresh buffer to a name that
// does not exist yet, or starts unnamed.
func openEditor(path string) (*app.Editor, error) {
	if path == "" {
		return app.NewEditor(buffer.NewBuffer()), nil
	}

	ed, err := app.LoadFile(path)
	if err == nil {
		return ed, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		ed = app.NewEditor(buffer.NewBuffer())
		ed.SetPath(path)
		return ed, nil
	}
	return nil, err
}

func openLogger(cfg config.Config) (*app.Logger, func(), error) {
	if cfg.LogFile == "" {
		return app.NullLogger, func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := app.NewLogger(f, app.ParseLogLevel(cfg.LogLevel))
	return logger, func() { _ = f.Close() }, nil
}

func runScript(ed *app.Editor, cfg config.Config, path string) error {
	sel := ed.Selection()
	state := &script.State{
		Buffer:    ed.Buffer(),
		Tracker:   ed.Tracker(),
		Selection: &sel,
		MatchCase: cfg.MatchCase,
	}
	host := script.NewHost(state)
	defer host.Close()

	if err := host.RunFile(path); err != nil {
		return err
	}
	ed.SetSelection(sel)
	return nil
}

// finishBatch writes the script result back: to the bound file when there
// is one, to stdout otherwise.
func finishBatch(ed *app.Editor) int {
	if ed.Path() != "" {
		if err := ed.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	if _, err := io.WriteString(os.Stdout, ed.Buffer().Text()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&opts.scriptPath, "script", "", "Run a Lua script against the buffer on startup")
	flag.BoolVar(&opts.batch, "batch", false, "Run the script and exit without opening the UI")
	flag.BoolVar(&opts.wordWrap, "wrap", true, "Soft-wrap long lines")
	flag.BoolVar(&opts.showWhitespace, "whitespace", false, "Draw whitespace and line-break glyphs")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "outpad - scoped find/replace text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: outpad [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  outpad                         Open with an empty buffer\n")
		fmt.Fprintf(os.Stderr, "  outpad notes.txt               Open a file\n")
		fmt.Fprintf(os.Stderr, "  outpad -script fix.lua -batch notes.txt\n")
		fmt.Fprintf(os.Stderr, "                                 Apply a script and save\n")
	}

	flag.Parse()

	// Boolean flags only override the config file when given explicitly.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "wrap":
			opts.wordWrapSet = true
		case "whitespace":
			opts.whitespaceSet = true
		}
	})

	if showVersion {
		fmt.Printf("outpad %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", opts.logLevel)
			os.Exit(2)
		}
	}
	if opts.batch && opts.scriptPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -batch requires -script")
		os.Exit(2)
	}

	opts.file = flag.Arg(0)
	return opts
}
