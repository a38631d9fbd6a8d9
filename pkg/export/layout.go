package export

import (
	"regexp"
	"strings"
)

// PageFormat describes a portrait page in points.
type PageFormat struct {
	Name   string
	Width  float64
	Height float64
	Margin float64
}

// Letter is US Letter with a half inch margin.
var Letter = PageFormat{Name: "Letter", Width: 612, Height: 792, Margin: 36}

// UsableWidth is the page width inside the margins.
func (p PageFormat) UsableWidth() float64 { return p.Width - 2*p.Margin }

// UsableHeight is the page height inside the margins.
func (p PageFormat) UsableHeight() float64 { return p.Height - 2*p.Margin }

// Placement positions the full raster on one page. Y is negative-shifted
// on continuation pages so each page shows the next window of the image.
type Placement struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Layout scales an imgW x imgH raster to the usable page width and returns
// one placement per page needed to show all of it.
func Layout(imgW, imgH int, page PageFormat) []Placement {
	if imgW <= 0 || imgH <= 0 {
		return nil
	}

	width := page.UsableWidth()
	height := width * float64(imgH) / float64(imgW)
	usable := page.UsableHeight()

	placements := []Placement{{X: page.Margin, Y: page.Margin, Width: width, Height: height}}
	left := height - usable
	position := 0.0
	for left > 0 {
		position -= usable
		placements = append(placements, Placement{X: page.Margin, Y: position + page.Margin, Width: width, Height: height})
		left -= usable
	}
	return placements
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename is the exported document name for query.
func Filename(query string) string {
	return "proceso_" + strings.ToLower(whitespaceRun.ReplaceAllString(query, "_")) + ".pdf"
}
