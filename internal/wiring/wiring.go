// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/critpath/internal/adapters/cas"
	_ "go.trai.ch/critpath/internal/adapters/config"
	_ "go.trai.ch/critpath/internal/adapters/fs"
	_ "go.trai.ch/critpath/internal/adapters/logger"
	_ "go.trai.ch/critpath/internal/adapters/report"
	_ "go.trai.ch/critpath/internal/adapters/telemetry"
	_ "go.trai.ch/critpath/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/critpath/internal/app"
)
