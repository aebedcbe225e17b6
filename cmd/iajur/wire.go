package main

import (
	"context"
	"fmt"
	"path/filepath"

	configfile "github.com/custodia-labs/iajur-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driven/remote"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driven"
	"github.com/custodia-labs/iajur-cli/internal/core/render"
	"github.com/custodia-labs/iajur-cli/internal/core/services"
	"github.com/custodia-labs/iajur-cli/internal/logger"
)

// bootstrap wires adapters and services for configDir.
func bootstrap(_ context.Context, configDir string) (*cli.Services, error) {
	if configDir == "" {
		dir, err := configfile.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("config store: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	if err := settingsService.Validate(); err != nil {
		logger.Warn("invalid settings, some commands may fail: %v", err)
	}

	dataDir := settings.History.Dir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}

	store, watcher, closeStore, err := openHistory(settings.History.Backend, dataDir)
	if err != nil {
		return nil, err
	}

	client := remote.NewClientFromSettings(settings.Server)
	history := services.NewHistoryService(store, client)
	metrics := services.NewMetricsService(client)
	controller := services.NewQueryController(client, history, metrics)
	if watcher != nil {
		controller.SetWatcher(watcher)
	}

	identity := render.Identity{AppName: settings.App.Name, SystemName: settings.App.SystemName}
	actions := services.NewHistoryActionService(
		history, controller, client, services.SystemClipboard{}, identity, settings.Download.Dir,
	)

	logger.Debug("history backend %s in %s", settings.History.Backend, dataDir)

	return &cli.Services{
		Controller: controller,
		History:    history,
		Metrics:    metrics,
		Actions:    actions,
		Settings:   settingsService,
		AppName:    settings.App.Name,
		Close:      closeStore,
	}, nil
}

// openHistory opens the configured history backend. Only the file backend
// has a change feed.
func openHistory(
	backend domain.HistoryBackend,
	dataDir string,
) (driven.HistoryStore, driven.HistoryWatcher, func() error, error) {
	switch backend {
	case domain.HistoryBackendSQLite:
		db, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sqlite history: %w", err)
		}
		return db.HistoryStore(), nil, db.Close, nil

	default:
		store, err := file.NewHistoryStore(dataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("file history: %w", err)
		}
		w, err := file.NewWatcher(store.Path())
		if err != nil {
			logger.Warn("history watcher disabled: %v", err)
			return store, nil, store.Close, nil
		}
		return store, w, store.Close, nil
	}
}

