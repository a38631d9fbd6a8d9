package tui

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeboe/guia-procesos/pkg/export"
	"github.com/mikeboe/guia-procesos/pkg/presentation"
	"github.com/mikeboe/guia-procesos/pkg/search"
)

type fakeText struct {
	err     error
	queries []string
}

func (f *fakeText) FetchProcessText(ctx context.Context, query string) (search.SearchResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return search.SearchResult{}, f.err
	}
	return search.SearchResult{Text: "# " + query + "\n1. Paso: detalle"}, nil
}

type fakeImage struct{}

func (fakeImage) GenerateProcessImage(ctx context.Context, query string) (string, error) {
	return "", nil
}

type stubRasterizer struct{}

func (stubRasterizer) Rasterize(presentation.ResultView) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

type stubWriter struct{}

func (stubWriter) Write(w io.Writer, img image.Image) error {
	_, err := w.Write([]byte("%PDF"))
	return err
}

func newTestModel(t *testing.T, text *fakeText, exporter *export.Exporter) Model {
	t.Helper()
	m := NewModel(search.NewController(text, fakeImage{}), exporter, t.TempDir())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func typeQuery(m Model, query string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(query)})
	return updated.(Model)
}

// settle runs the search the way the program would and feeds the result back.
func settle(t *testing.T, m Model, run func() tea.Msg) Model {
	t.Helper()
	msg := run()
	done, ok := msg.(SearchDoneMsg)
	require.True(t, ok, "expected SearchDoneMsg, got %T", msg)
	updated, _ := m.Update(done)
	return updated.(Model)
}

func TestEnterStartsSearchAndBlursInput(t *testing.T) {
	m := newTestModel(t, &fakeText{}, &export.Exporter{})
	m = typeQuery(m, "Muro")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.False(t, m.input.Focused())
	assert.Equal(t, search.Loading, m.state.Status)
	assert.Contains(t, m.View(), presentation.LoadingTitle)

	// Keys are ignored while loading
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "Muro", updated.(Model).input.Value())
}

func TestEmptyQueryIsIgnored(t *testing.T) {
	m := newTestModel(t, &fakeText{}, &export.Exporter{})
	m = typeQuery(m, "   ")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, updated.(Model).loading)
}

func TestSearchDoneShowsResult(t *testing.T) {
	text := &fakeText{}
	m := newTestModel(t, text, &export.Exporter{})

	m = settle(t, m, m.search("Muro"))

	assert.False(t, m.loading)
	assert.True(t, m.input.Focused())
	assert.Equal(t, []string{"Muro"}, []string(m.state.History))
	view := m.View()
	assert.Contains(t, view, "Paso:")
	assert.Contains(t, view, search.MsgImageEmpty)
	assert.Contains(t, view, "F1")
}

func TestSearchFailureShowsError(t *testing.T) {
	m := newTestModel(t, &fakeText{err: errors.New("503")}, &export.Exporter{})

	m = settle(t, m, m.search("Losa"))

	assert.Equal(t, search.Failed, m.state.Status)
	assert.Contains(t, m.View(), search.MsgTextFailed)
	assert.Empty(t, m.state.History)
}

func TestHistoryKeyRerunsQuery(t *testing.T) {
	text := &fakeText{}
	m := newTestModel(t, text, &export.Exporter{})
	m = settle(t, m, m.search("Muro"))
	m = settle(t, m, m.search("Viga"))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF2})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Equal(t, "Muro", m.input.Value())

	m = settle(t, m, m.rerun(1))
	assert.Equal(t, []string{"Muro", "Viga", "Muro"}, text.queries)
	assert.Equal(t, []string{"Muro", "Viga"}, []string(m.state.History))

	// No entry behind F3
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyF3})
	assert.Nil(t, cmd)
}

func TestExportWritesDocument(t *testing.T) {
	m := newTestModel(t, &fakeText{}, &export.Exporter{Rasterizer: stubRasterizer{}, Writer: stubWriter{}})
	m = settle(t, m, m.search("Muro de contención"))

	cmd := m.export()
	require.NotNil(t, cmd)
	done := cmd().(ExportDoneMsg)
	require.NoError(t, done.Err)
	assert.True(t, done.Written)
	assert.Equal(t, filepath.Join(m.dir, "proceso_muro_de_contención.pdf"), done.Path)

	data, err := os.ReadFile(done.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	updated, _ := m.Update(done)
	assert.Contains(t, updated.(Model).View(), "PDF guardado en")
}

func TestExportUnavailable(t *testing.T) {
	m := newTestModel(t, &fakeText{}, &export.Exporter{})
	assert.Nil(t, m.export(), "nothing to export before a result")

	m = settle(t, m, m.search("Muro"))
	done := m.export()().(ExportDoneMsg)
	assert.False(t, done.Written)
	assert.NoError(t, done.Err)

	entries, err := os.ReadDir(m.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
