package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"Muro de contención", "proceso_muro_de_contención.pdf"},
		{"  Viga   de\tCimentación ", "proceso__viga_de_cimentación_.pdf"},
		{"LOSA", "proceso_losa.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.query))
		})
	}
}

func TestLetterUsableArea(t *testing.T) {
	assert.Equal(t, 540.0, Letter.UsableWidth())
	assert.Equal(t, 720.0, Letter.UsableHeight())
}

func TestLayoutSinglePage(t *testing.T) {
	got := Layout(1080, 1000, Letter)

	require.Len(t, got, 1)
	assert.Equal(t, Placement{X: 36, Y: 36, Width: 540, Height: 500}, got[0])
}

func TestLayoutExactlyOnePageHeight(t *testing.T) {
	got := Layout(540, 720, Letter)
	assert.Len(t, got, 1)
}

func TestLayoutPansAcrossPages(t *testing.T) {
	// Scales to 540 x 1600: needs ceil(1600/720) = 3 pages.
	got := Layout(1080, 3200, Letter)

	require.Len(t, got, 3)
	for _, p := range got {
		assert.Equal(t, 540.0, p.Width)
		assert.Equal(t, 1600.0, p.Height)
		assert.Equal(t, 36.0, p.X)
	}
	assert.Equal(t, 36.0, got[0].Y)
	assert.Equal(t, -720.0+36, got[1].Y)
	assert.Equal(t, -1440.0+36, got[2].Y)
}

func TestLayoutEmptyRaster(t *testing.T) {
	assert.Nil(t, Layout(0, 100, Letter))
	assert.Nil(t, Layout(100, 0, Letter))
}
