package tui

import "github.com/mikeboe/guia-procesos/pkg/search"

type SearchDoneMsg struct {
	State search.State
	Err   error
}

type ExportDoneMsg struct {
	Path    string
	Written bool
	Err     error
}
