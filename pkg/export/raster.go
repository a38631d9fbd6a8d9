package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/mikeboe/guia-procesos/pkg/markup"
	"github.com/mikeboe/guia-procesos/pkg/presentation"
)

// PanelBackground matches the result panel colour.
const PanelBackground = "#374151"

// Rasterizer draws the print region of a result.
type Rasterizer interface {
	Rasterize(view presentation.ResultView) (image.Image, error)
}

// CanvasRasterizer lays the print region out on a fixed-width canvas.
// Sizes are in CSS pixels and multiplied by Scale.
type CanvasRasterizer struct {
	Scale   float64
	Width   float64
	Padding float64
	Logger  *slog.Logger

	regular *truetype.Font
	bold    *truetype.Font
}

func NewCanvasRasterizer() (*CanvasRasterizer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &CanvasRasterizer{
		Scale:   2,
		Width:   760,
		Padding: 16,
		Logger:  slog.Default(),
		regular: regular,
		bold:    bold,
	}, nil
}

var (
	colorWhite   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorText    = color.RGBA{0xd1, 0xd5, 0xdb, 0xff}
	colorBright  = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}
	colorCyan    = color.RGBA{0x22, 0xd3, 0xee, 0xff}
	colorRule    = color.RGBA{0x4b, 0x55, 0x63, 0xff}
	colorWarnBg  = color.RGBA{0x71, 0x3f, 0x12, 0xff}
	colorWarnTxt = color.RGBA{0xfd, 0xe0, 0x47, 0xff}
)

// span is a run of text drawn in one face.
type span struct {
	text string
	bold bool
}

// block is one laid-out piece of the region. Labelled items carry spans
// instead of lines.
type block struct {
	lines      []string
	spans      [][]span
	face       font.Face
	boldFace   font.Face
	color      color.Color
	lineHeight float64
	before     float64
	after      float64
	indent     float64
	bullet     bool
	rule       bool
	warning    bool
	image      image.Image
}

func (b block) height() float64 {
	if b.image != nil {
		return b.before + float64(b.image.Bounds().Dy()) + b.after
	}
	h := b.before + float64(len(b.lines)+len(b.spans))*b.lineHeight + b.after
	if b.warning {
		h += b.lineHeight
	}
	return h
}

func (r *CanvasRasterizer) face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size * r.Scale, DPI: 72})
}

// Rasterize renders the title, the formatted text and the illustration
// (or its warning). Sources are not part of the print region.
func (r *CanvasRasterizer) Rasterize(view presentation.ResultView) (image.Image, error) {
	s := r.Scale
	width := r.Width * s
	pad := r.Padding * s
	inner := width - 2*pad

	measure := gg.NewContext(1, 1)
	wrap := func(text string, face font.Face, w float64) []string {
		measure.SetFontFace(face)
		if strings.TrimSpace(text) == "" {
			return []string{""}
		}
		return measure.WordWrap(text, w)
	}
	textBlock := func(text string, f *truetype.Font, size float64, c color.Color, before, after, indent float64) block {
		face := r.face(f, size)
		return block{
			lines:      wrap(text, face, inner-indent*s),
			face:       face,
			color:      c,
			lineHeight: size * 1.5 * s,
			before:     before * s,
			after:      after * s,
			indent:     indent * s,
		}
	}

	blocks := []block{textBlock(view.Title, r.bold, 26, colorWhite, 0, 16, 0)}

	for _, n := range view.Nodes {
		switch n.Kind {
		case markup.Heading1:
			blocks = append(blocks, textBlock(n.Text, r.bold, 28, colorWhite, 16, 12, 0))
		case markup.Heading2:
			b := textBlock(n.Text, r.bold, 22, colorCyan, 20, 12, 0)
			b.rule = true
			blocks = append(blocks, b)
		case markup.Emphasis:
			blocks = append(blocks, textBlock(n.Text, r.bold, 17, colorBright, 12, 4, 0))
		case markup.NumberedItem:
			if n.Body == "" {
				blocks = append(blocks, textBlock(n.Label, r.bold, 15, colorWhite, 0, 8, 0))
				continue
			}
			b := textBlock("", r.regular, 15, colorText, 0, 8, 0)
			b.boldFace = r.face(r.bold, 15)
			b.lines = nil
			b.spans = wrapLabeled(measure, n.Label, n.Body, b.boldFace, b.face, inner)
			blocks = append(blocks, b)
		case markup.Bullet:
			b := textBlock(n.Text, r.regular, 15, colorText, 0, 8, 32)
			b.bullet = true
			blocks = append(blocks, b)
		case markup.Blank:
			blocks = append(blocks, block{before: 15 * 1.5 * s})
		default:
			blocks = append(blocks, textBlock(n.Text, r.regular, 15, colorText, 0, 8, 0))
		}
	}

	blocks = append(blocks, textBlock(presentation.SectionIllustration, r.bold, 22, colorCyan, 32, 16, 0))
	if img := r.illustration(view.ImageURL, inner); img != nil {
		blocks = append(blocks, block{image: img})
	} else if view.ImageError != "" {
		b := textBlock(view.ImageError, r.regular, 15, colorWarnTxt, 0, 0, 16)
		b.warning = true
		blocks = append(blocks, b)
	}

	total := 2 * pad
	for _, b := range blocks {
		total += b.height()
	}

	dc := gg.NewContext(int(width), int(total))
	dc.SetHexColor(PanelBackground)
	dc.Clear()

	y := pad
	for _, b := range blocks {
		y += b.before
		switch {
		case b.image != nil:
			x := pad + (inner-float64(b.image.Bounds().Dx()))/2
			dc.DrawImage(b.image, int(x), int(y))
			y += float64(b.image.Bounds().Dy())
		default:
			if b.warning {
				dc.SetColor(colorWarnBg)
				dc.DrawRoundedRectangle(pad, y, inner, b.height(), 8*s)
				dc.Fill()
				y += b.lineHeight / 2
			}
			for i, line := range b.lines {
				baseline := y + b.lineHeight*0.75
				x := pad + b.indent
				if b.bullet && i == 0 {
					dc.SetFontFace(b.face)
					dc.SetColor(colorCyan)
					dc.DrawString("•", pad+12*s, baseline)
				}
				dc.SetFontFace(b.face)
				dc.SetColor(b.color)
				dc.DrawString(line, x, baseline)
				y += b.lineHeight
			}
			for _, line := range b.spans {
				baseline := y + b.lineHeight*0.75
				x := pad + b.indent
				for _, sp := range line {
					if sp.bold {
						dc.SetFontFace(b.boldFace)
						dc.SetColor(colorWhite)
					} else {
						dc.SetFontFace(b.face)
						dc.SetColor(b.color)
					}
					dc.DrawString(sp.text, x, baseline)
					w, _ := dc.MeasureString(sp.text)
					x += w
				}
				y += b.lineHeight
			}
			if b.warning {
				y += b.lineHeight / 2
			}
			if b.rule {
				dc.SetColor(colorRule)
				dc.SetLineWidth(s)
				dc.DrawLine(pad, y+2*s, pad+inner, y+2*s)
				dc.Stroke()
			}
		}
		y += b.after
	}

	return dc.Image(), nil
}

// wrapLabeled word-wraps a bold label followed by a regular body. The
// label keeps its weight even when it spans several lines.
func wrapLabeled(measure *gg.Context, label, body string, boldFace, regularFace font.Face, width float64) [][]span {
	type word struct {
		text string
		bold bool
	}
	var words []word
	for _, w := range strings.Fields(label) {
		words = append(words, word{w, true})
	}
	for _, w := range strings.Fields(body) {
		words = append(words, word{w, false})
	}

	widthOf := func(text string, bold bool) float64 {
		if bold {
			measure.SetFontFace(boldFace)
		} else {
			measure.SetFontFace(regularFace)
		}
		w, _ := measure.MeasureString(text)
		return w
	}

	var (
		lines [][]span
		line  []span
		lineW float64
	)
	for _, w := range words {
		text := w.text
		if len(line) > 0 {
			text = " " + text
		}
		ww := widthOf(text, w.bold)
		if len(line) > 0 && lineW+ww > width {
			lines = append(lines, line)
			line, lineW = nil, 0
			text = w.text
			ww = widthOf(text, w.bold)
		}
		if n := len(line); n > 0 && line[n-1].bold == w.bold {
			line[n-1].text += text
		} else {
			line = append(line, span{text: text, bold: w.bold})
		}
		lineW += ww
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

// illustration decodes a data URI and draws it at the canvas density,
// shrunk to maxWidth when it would not fit.
func (r *CanvasRasterizer) illustration(uri string, maxWidth float64) image.Image {
	if uri == "" {
		return nil
	}
	img, err := decodeDataURI(uri)
	if err != nil {
		r.Logger.Warn("Skipping illustration in export", "error", err)
		return nil
	}

	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	w := math.Min(float64(b.Dx())*r.Scale, maxWidth)
	h := math.Round(float64(b.Dy()) * w / float64(b.Dx()))
	if int(w) == b.Dx() && int(h) == b.Dy() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func decodeDataURI(uri string) (image.Image, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("not a base64 data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
