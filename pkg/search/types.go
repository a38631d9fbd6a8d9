package search

import "context"

// Citation is a grounding source attached to generated text.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// Label is the text shown for the citation link.
func (c Citation) Label() string {
	if c.Title != "" {
		return c.Title
	}
	return c.URI
}

// SearchResult is the outcome of a successful text generation call.
type SearchResult struct {
	Text    string     `json:"text"`
	Sources []Citation `json:"sources"`
}

// TextGenerator produces the process description for a query.
type TextGenerator interface {
	FetchProcessText(ctx context.Context, query string) (SearchResult, error)
}

// ImageGenerator produces an illustration for a query as a data URI.
// An empty string with a nil error means the call succeeded without an image.
type ImageGenerator interface {
	GenerateProcessImage(ctx context.Context, query string) (string, error)
}
