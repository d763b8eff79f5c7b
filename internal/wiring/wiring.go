// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lal/internal/adapters/archive"
	_ "go.trai.ch/lal/internal/adapters/artifact"
	_ "go.trai.ch/lal/internal/adapters/config"
	_ "go.trai.ch/lal/internal/adapters/fs"
	_ "go.trai.ch/lal/internal/adapters/logger"
	_ "go.trai.ch/lal/internal/adapters/manifest"
	_ "go.trai.ch/lal/internal/adapters/sandbox"
	_ "go.trai.ch/lal/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/lal/internal/app"
	_ "go.trai.ch/lal/internal/engine/pipeline"
)
