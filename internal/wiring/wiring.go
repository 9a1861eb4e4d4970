// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/modlock/internal/adapters/config"
	_ "go.trai.ch/modlock/internal/adapters/curseforge"
	_ "go.trai.ch/modlock/internal/adapters/httpclient"
	_ "go.trai.ch/modlock/internal/adapters/lockfile"
	_ "go.trai.ch/modlock/internal/adapters/logger"
	_ "go.trai.ch/modlock/internal/adapters/store"
	_ "go.trai.ch/modlock/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/modlock/internal/app"
)
