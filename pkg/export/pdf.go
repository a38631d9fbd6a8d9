package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"
)

// DocumentWriter turns a raster of the print region into a document.
type DocumentWriter interface {
	Write(w io.Writer, img image.Image) error
}

// PDFWriter paginates a raster into a portrait PDF.
type PDFWriter struct {
	Page PageFormat
}

func NewPDFWriter() *PDFWriter {
	return &PDFWriter{Page: Letter}
}

func (p *PDFWriter) Write(w io.Writer, img image.Image) error {
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		return fmt.Errorf("failed to encode raster: %w", err)
	}

	bounds := img.Bounds()
	placements := Layout(bounds.Dx(), bounds.Dy(), p.Page)
	if len(placements) == 0 {
		return fmt.Errorf("empty raster")
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		SizeStr:        p.Page.Name,
		Size:           fpdf.SizeType{Wd: p.Page.Width, Ht: p.Page.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("region", opts, &encoded)
	for _, pl := range placements {
		pdf.AddPage()
		pdf.ImageOptions("region", pl.X, pl.Y, pl.Width, pl.Height, false, opts, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
