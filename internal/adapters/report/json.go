package report

import (
	"encoding/json"
	"io"

	"go.trai.ch/critpath/internal/core/domain"
	"go.trai.ch/critpath/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*JSONRenderer)(nil)

// JSONRenderer writes reports as an indented JSON array.
type JSONRenderer struct{}

// NewJSONRenderer creates a new JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render encodes the reports. Unless all is set, only critical task rows are kept.
func (r *JSONRenderer) Render(w io.Writer, reports []domain.Report, all bool) error {
	out := make([]domain.Report, len(reports))
	for i, rep := range reports {
		if !all {
			rep.Tasks = criticalRows(rep.Tasks)
		}
		out[i] = rep
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return zerr.Wrap(err, "failed to encode report")
	}
	return nil
}

func criticalRows(rows []domain.TaskRow) []domain.TaskRow {
	out := make([]domain.TaskRow, 0, len(rows))
	for _, row := range rows {
		if row.Critical {
			out = append(out, row)
		}
	}
	return out
}
