package ports

import (
	"io"

	"go.trai.ch/critpath/internal/core/domain"
)

// Renderer writes analysis reports in one output format.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render writes the reports to w, in the given order.
	// When all is false only critical tasks are listed.
	Render(w io.Writer, reports []domain.Report, all bool) error
}

// Renderers maps a format name to its Renderer.
type Renderers map[string]Renderer
