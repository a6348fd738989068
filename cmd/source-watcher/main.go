package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gumcheck/internal/config"
	"gumcheck/internal/sources"
	"gumcheck/internal/storage"
	"gumcheck/internal/tabular"
	"gumcheck/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	must(err)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	instants, err := sources.ParseInstants(cfg.RefreshTimes)
	must(err)

	files := sources.NewDirStore(cfg.DataDir, cfg.MaxUploadBytes)
	slots := map[sources.Slot]string{
		sources.SlotActivity:  cfg.ActivityFileName,
		sources.SlotContact:   cfg.ContactFileName,
		sources.SlotDirectory: cfg.DirectoryFileName,
	}
	sched := sources.NewScheduler(db, files, tabular.Decode, slots, instants)

	svc := watcher.NewService(sched, cfg)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
