package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mikeboe/guia-procesos/pkg/presentation"
)

// Exporter snapshots a result into a paginated document.
type Exporter struct {
	Rasterizer Rasterizer
	Writer     DocumentWriter
	Logger     *slog.Logger
}

// New wires the canvas rasterizer and PDF writer. If the rasterizer
// cannot be prepared the exporter is returned without it and Export
// becomes a logged no-op.
func New() *Exporter {
	e := &Exporter{Writer: NewPDFWriter(), Logger: slog.Default()}
	r, err := NewCanvasRasterizer()
	if err != nil {
		e.Logger.Error("Failed to prepare export rasterizer", "error", err)
		return e
	}
	e.Rasterizer = r
	return e
}

// Available reports whether Export can produce a document.
func (e *Exporter) Available() bool {
	return e != nil && e.Rasterizer != nil && e.Writer != nil
}

// Export writes the document for view to w. It returns false, without an
// error, when the rendering dependencies are unavailable.
func (e *Exporter) Export(w io.Writer, view presentation.ResultView) (bool, error) {
	if !e.Available() {
		logger := slog.Default()
		if e != nil && e.Logger != nil {
			logger = e.Logger
		}
		logger.Error("PDF generation libraries not found.")
		return false, nil
	}

	img, err := e.Rasterizer.Rasterize(view)
	if err != nil {
		return false, fmt.Errorf("failed to rasterize result: %w", err)
	}
	if err := e.Writer.Write(w, img); err != nil {
		return false, err
	}

	e.Logger.Info("Exported result", "query", view.Query, "filename", Filename(view.Query))
	return true, nil
}
