package search

import (
	"github.com/mikeboe/guia-procesos/pkg/history"
)

// Status is the lifecycle of the current search.
type Status string

const (
	Idle    Status = "idle"
	Loading Status = "loading"
	Loaded  Status = "loaded"
	Failed  Status = "failed"
)

// User-facing messages.
const (
	MsgTextFailed   = "Ocurrió un error al obtener los detalles del proceso."
	MsgImageEmpty   = "No se pudo generar la ilustración para este proceso."
	MsgImageFailed  = "Ocurrió un error al generar la ilustración."
	MsgRequestError = "Ocurrió un error al procesar la solicitud. Por favor, intente de nuevo."
)

// State is everything the front-ends display. Transitions return a new
// value and never modify the receiver's slices.
type State struct {
	Query      string        `json:"query"`
	Status     Status        `json:"status"`
	Result     *SearchResult `json:"result,omitempty"`
	ImageURL   string        `json:"image_url,omitempty"`
	ImageError string        `json:"image_error,omitempty"`
	Error      string        `json:"error,omitempty"`
	History    history.List  `json:"history"`
}

// Loading reports whether a search is in flight.
func (s State) Loading() bool {
	return s.Status == Loading
}

// Displayable reports whether a result should be shown.
func (s State) Displayable() bool {
	return !s.Loading() && s.Error == "" && s.Result != nil
}

// Begin starts a search for query and clears the previous outcome.
func (s State) Begin(query string) State {
	s.Query = query
	s.Status = Loading
	s.Error = ""
	s.ImageError = ""
	s.Result = nil
	s.ImageURL = ""
	return s
}

// ApplyText merges the text branch outcome.
func (s State) ApplyText(o Outcome[SearchResult]) State {
	if !o.Ok() {
		s.Status = Failed
		s.Error = MsgTextFailed
		return s
	}
	res := o.Value
	s.Result = &res
	s.Status = Loaded
	s.History = s.History.Record(s.Query)
	return s
}

// ApplyImage merges the image branch outcome. It is ignored once the
// text branch has failed since no result will be shown.
func (s State) ApplyImage(o Outcome[string]) State {
	if s.Status == Failed {
		return s
	}
	switch {
	case !o.Ok():
		s.ImageError = MsgImageFailed
	case o.Value == "":
		s.ImageError = MsgImageEmpty
	default:
		s.ImageURL = o.Value
	}
	return s
}

// Finish ends the search. A search that never reached Loaded or Failed
// is reported as failed.
func (s State) Finish() State {
	if s.Status == Loading {
		s.Status = Failed
		s.Error = MsgRequestError
	}
	return s
}

func (s State) clone() State {
	if s.Result != nil {
		res := *s.Result
		res.Sources = append([]Citation(nil), res.Sources...)
		s.Result = &res
	}
	s.History = append(history.List(nil), s.History...)
	return s
}
