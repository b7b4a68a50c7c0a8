package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gopxl/beep/v2"
	"github.com/kvmet/tanukioke/internal/audio"
	"github.com/kvmet/tanukioke/internal/config"
	"github.com/kvmet/tanukioke/internal/lrx"
	"github.com/kvmet/tanukioke/internal/tui"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Command line flags
	var (
		configFlag = flag.String("config", config.DefaultPath(), "Path to config file")
		logFlag    = flag.String("log", "", "Log file (overrides config)")
		noWatch    = flag.Bool("no-watch", false, "Do not reload lyrics when the file changes")
	)

	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("tanukioke - Karaoke player for LRX lyric files")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  tanukioke [options] <song.lrx>")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := flag.Arg(0)

	// Load config
	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *logFlag != "" {
		settings.LogFile = *logFlag
	}
	if *noWatch {
		settings.WatchLyrics = false
	}

	logFile, err := settings.SetupLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	doc, err := lrx.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := audio.NewBeepBackend(beep.SampleRate(settings.SampleRate), settings.BufferSize())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio output: %v\n", err)
		os.Exit(1)
	}

	transport := audio.NewTransport(backend, audio.WithConcurrency(settings.LoadConcurrency))
	defer transport.Close()

	log.WithFields(log.Fields{"path": path, "tracks": len(doc.Tracks), "lines": len(doc.Lines)}).Info("Starting player")

	if err := tui.Run(ctx, transport, doc, path, settings); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
