package presentation

import (
	"github.com/mikeboe/guia-procesos/pkg/history"
	"github.com/mikeboe/guia-procesos/pkg/markup"
	"github.com/mikeboe/guia-procesos/pkg/search"
)

const (
	SectionIllustration = "Esquema Ilustrativo"
	SectionSources      = "Fuentes Consultadas"
	HistoryLabel        = "Búsquedas recientes:"
	EmptyPrompt         = "Ingrese una actividad de construcción para comenzar."
	EmptyExample        = `Ej: "Instalación de una viga de cimentación"`
	LoadingTitle        = "Procesando su solicitud..."
	LoadingDetail       = "Consultando normativas y generando el esquema. Esto puede tardar un momento."
)

// SourceLink is a citation ready for display.
type SourceLink struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// ResultView is the laid-out result panel. The print region is everything
// except Sources.
type ResultView struct {
	Query      string        `json:"query"`
	Title      string        `json:"title"`
	Nodes      []markup.Node `json:"nodes"`
	ImageURL   string        `json:"image_url,omitempty"`
	ImageError string        `json:"image_error,omitempty"`
	Sources    []SourceLink  `json:"sources,omitempty"`
}

// Page is the whole screen for one state.
type Page struct {
	Query   string
	Loading bool
	Error   string
	History history.List
	Result  *ResultView
	Empty   bool
}

// BuildResult lays out the result panel. It reports false when the state
// has nothing to display.
func BuildResult(st search.State) (ResultView, bool) {
	if !st.Displayable() {
		return ResultView{}, false
	}

	view := ResultView{
		Query:      st.Query,
		Title:      "Proceso Constructivo: " + st.Query,
		Nodes:      markup.Render(st.Result.Text),
		ImageURL:   st.ImageURL,
		ImageError: st.ImageError,
	}
	for _, c := range st.Result.Sources {
		view.Sources = append(view.Sources, SourceLink{URL: c.URI, Label: c.Label()})
	}
	return view, true
}

// BuildPage derives the full screen from st.
func BuildPage(st search.State) Page {
	p := Page{
		Query:   st.Query,
		Loading: st.Loading(),
		Error:   st.Error,
		History: st.History,
	}
	if view, ok := BuildResult(st); ok {
		p.Result = &view
	}
	p.Empty = !p.Loading && p.Result == nil && p.Error == ""
	return p
}
