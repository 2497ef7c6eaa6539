package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/wishlist/internal/cli"
	"github.com/idilsaglam/wishlist/internal/config"
	"github.com/idilsaglam/wishlist/internal/logger"
	"github.com/idilsaglam/wishlist/internal/store"
	"github.com/idilsaglam/wishlist/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand); they override the environment.
	backend := flag.String("store", "", "storage backend: json, sqlite or memory")
	path := flag.String("path", "", "data file for the json or sqlite backend")
	theme := flag.String("theme", "", "output theme: classic, neon or mono")
	noColor := flag.Bool("no-color", false, "disable ANSI colors in command output")
	flag.Parse()

	p := ui.Printer{}
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(p)
		return cli.ExitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		p.Fail("config: " + err.Error())
		return cli.ExitUsage
	}
	if *backend != "" {
		cfg.Storage.Backend = *backend
		if *path == "" && os.Getenv("WISHLIST_PATH") == "" {
			cfg.Storage.Path = ""
		}
	}
	if *path != "" {
		cfg.Storage.Path = *path
	}
	if *theme != "" {
		cfg.UI.Theme = *theme
	}
	cfg.Storage.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		p.Fail("config: " + err.Error())
		return cli.ExitUsage
	}

	closeLog, err := setupLogging(cfg.Log, args[0] == "ui")
	if err != nil {
		p.Fail("log: " + err.Error())
		return cli.ExitError
	}
	defer closeLog()
	ui.SetTheme(cfg.UI.Theme)
	if *noColor {
		// after SetTheme, which resets color state
		ui.SetColorForcing(false, true)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := store.OpenRepository(cfg.Storage)
	if err != nil {
		p.Fail("open store: " + err.Error())
		return cli.ExitError
	}
	st, err := store.Open(ctx, repo)
	if err != nil {
		_ = repo.Close()
		p.Fail("load: " + err.Error())
		return cli.ExitError
	}
	log := logger.WithContext(map[string]interface{}{
		"backend": cfg.Storage.Backend,
		"command": args[0],
	})
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("Failed to close store", err)
		}
	}()

	log.Debug("Store ready", map[string]interface{}{
		"path":  cfg.Storage.Path,
		"count": st.Count(),
	})

	code := cli.Run(ctx, args, cli.Env{Store: st, Printer: p})
	if ctx.Err() != nil {
		log.Warn("Interrupted by signal")
	}
	log.Info("Command finished", map[string]interface{}{"exit_code": code})
	if code != cli.ExitOK {
		fmt.Fprintln(os.Stderr)
	}
	return code
}

// setupLogging initializes the global logger. While the full-screen UI owns
// the terminal, logs only go to a file.
func setupLogging(cfg config.Log, interactive bool) (func(), error) {
	lc := logger.Config{Level: cfg.Level, Format: cfg.Format, EnableColor: true}
	closeFn := func() {}
	switch {
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		lc.Output = f
		lc.EnableColor = false
		closeFn = func() { _ = f.Close() }
	case interactive:
		lc.Level = "disabled"
	}
	logger.Initialize(lc)
	return closeFn, nil
}
