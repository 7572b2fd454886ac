package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/critpath/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/critpath/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/critpath/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/critpath/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/critpath/internal/adapters/report"             //nolint:depguard // Wired in app layer
	"go.trai.ch/critpath/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/critpath/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/critpath/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			progrock.NodeID,
			report.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ReportStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	renderers, err := graft.Dep[ports.Renderers](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, hasher, store, log, tracer, tel, renderers), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, tel), nil
}
