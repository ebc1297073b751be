package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"today/internal/config"
	"today/internal/logging"
	"today/internal/storage"
	"today/internal/task"
	"today/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogPath)
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	slot, err := storage.Open(cfg.Backend, cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer slot.Close()

	log.Info("starting",
		zap.String("config", configPath),
		zap.String("backend", cfg.Backend),
		zap.String("db", cfg.DBPath),
	)

	adapter := storage.NewAdapter(slot, log.Named("storage"))
	tasks, err := adapter.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrCorrupt) {
			fmt.Printf("failed to load tasks: %v\n", err)
			os.Exit(1)
		}
		// Keep going with an empty list; the next save replaces the bad value.
		log.Warn("starting with an empty task list", zap.Error(err))
	}

	store := task.NewStore(tasks, task.NewClock(nil))
	ctrl := ui.NewController(store, adapter, log.Named("controller"))
	if err := ui.Run(ctrl, cfg, log.Named("ui")); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
