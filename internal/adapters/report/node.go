package report

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/critpath/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the renderers Graft node.
	NodeID graft.ID = "adapter.report"

	// FormatText is the name of the text format.
	FormatText = "text"
	// FormatJSON is the name of the JSON format.
	FormatJSON = "json"
)

func init() {
	graft.Register(graft.Node[ports.Renderers]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Renderers, error) {
			return ports.Renderers{
				FormatText: NewTextRenderer(),
				FormatJSON: NewJSONRenderer(),
			}, nil
		},
	})
}
