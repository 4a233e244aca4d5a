// ricecooker is a rice cooker simulator driven from a terminal menu.
//
// Usage:
//
//	ricecooker [-config ricecooker.yaml] [-verbose] [-quiet] [-tick 1m]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/ricecooker/internal/chime"
	"github.com/hammamikhairi/ricecooker/internal/config"
	"github.com/hammamikhairi/ricecooker/internal/console"
	"github.com/hammamikhairi/ricecooker/internal/cooker"
	"github.com/hammamikhairi/ricecooker/internal/display"
	"github.com/hammamikhairi/ricecooker/internal/domain"
	"github.com/hammamikhairi/ricecooker/internal/logger"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", config.DefaultPath, "YAML config file (optional)")
	writeConfig := flag.String("write-config", "", "write the effective config to this file and exit")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	noChime := flag.Bool("no-chime", false, "disable the completion chime")
	tick := flag.Duration("tick", 0, "countdown period, one simulated minute (default from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Flags win over the file and the environment.
	if *tick > 0 {
		cfg.Cooker.TickInterval = *tick
	}
	if *logFile != "" {
		cfg.Logger.File = *logFile
	}
	if *verbose {
		cfg.Logger.Level = logger.LevelVerbose.String()
	}
	if *quiet {
		cfg.Logger.Level = logger.LevelOff.String()
	}
	if *noChime {
		cfg.Chime.Enabled = false
	}

	if *writeConfig != "" {
		if err := cfg.Save(*writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("config written to %s\n", *writeConfig)
		return
	}

	logLevel, err := logger.ParseLevel(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Direct logs to a file by default so the menu stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.Logger.File != "" && cfg.Logger.File != "stderr" {
		f, err := logger.OpenFile(cfg.Logger.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (falling back to stderr)\n", err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by the audio backend) to the
	// same output so it doesn't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)
	defer log.Sync()

	// Cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The cooker and the UI reference each other through the notifier, so
	// the UI is built against a late-bound status source.
	src := &lateStatus{}
	ui := display.NewUI(src)

	var notifier domain.Notifier = console.NewCLINotifier(log, ui)
	var chimeDone <-chan struct{} // nil when no bell is running
	if cfg.Chime.Enabled {
		notifier, chimeDone = withChime(ctx, notifier, cfg.Chime, log)
	}

	ck := cooker.New(notifier, log,
		cooker.WithTickInterval(cfg.Cooker.TickInterval),
	)
	src.cooker = ck

	log.Info("ricecooker starting (tick=%s, log=%s)", cfg.Cooker.TickInterval, logLevel)

	app := &cliApp{
		console: console.New(ck, ui, log),
		log:     log,
		ui:      ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Pick a menu number and press enter. Ctrl+C quits."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal and blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()

	// Ctrl+C ends the program without going through the Exit action.
	if !app.exited.Load() {
		fmt.Println(console.LineGoodbye)
	}

	// Stop any running cycle so its countdown goroutine exits cleanly.
	if ck.Status().Cooking() {
		if _, err := ck.StopCooking(context.Background()); err != nil {
			log.Warn("stopping cycle on exit: %v", err)
		}
	}

	// Let a chime that is still sounding finish before the process ends.
	if chimeDone != nil {
		select {
		case <-chimeDone:
		case <-time.After(2 * time.Second):
			log.Warn("chime did not shut down in time")
		}
	}
}

// withChime wraps notifier so cycles that end on their own also ring. When
// no audio device is available the plain notifier and a nil channel are
// returned; otherwise the channel closes once the bell has shut down.
func withChime(ctx context.Context, notifier domain.Notifier, cfg config.ChimeConfig, log *logger.Logger) (domain.Notifier, <-chan struct{}) {
	pcm := chime.Tone(cfg.FrequencyHz, cfg.Duration)
	if cfg.File != "" {
		loaded, err := chime.LoadWAV(cfg.File)
		if err != nil {
			log.Error("chime file unusable, using tone: %v", err)
		} else {
			pcm = loaded
		}
	}

	player, err := chime.NewPlayer(log)
	if err != nil {
		log.Error("audio player init failed, chime disabled: %v", err)
		return notifier, nil
	}

	bell := chime.NewBell(player, pcm, log)
	bell.Start(ctx)
	log.Info("chime enabled (%s)", chimeSource(cfg))
	return chime.NewNotifier(notifier, bell, log), bell.Done()
}

func chimeSource(cfg config.ChimeConfig) string {
	if cfg.File != "" {
		return cfg.File
	}
	return fmt.Sprintf("%gHz for %s", cfg.FrequencyHz, cfg.Duration.Round(time.Millisecond))
}

// lateStatus lets the UI be built before the cooker it displays.
type lateStatus struct {
	cooker *cooker.Cooker
}

func (l *lateStatus) Status() domain.Snapshot {
	if l.cooker == nil {
		return domain.Snapshot{}
	}
	return l.cooker.Status()
}

type cliApp struct {
	console *console.Console
	log     *logger.Logger
	ui      *display.UI
	exited  atomic.Bool // set when the operator chose Exit
}

func (a *cliApp) run(ctx context.Context) {
	a.console.Start()

	uiCh := a.ui.InputChan()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.ui.QuitChan():
			return
		case input, ok := <-uiCh:
			if !ok {
				return
			}
			if a.console.Handle(ctx, input) {
				a.log.Info("operator exit")
				a.exited.Store(true)
				return
			}
		}
	}
}
