package presentation

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplate is the name of the main page template.
const PageTemplate = "index.html"

// Templates parses the embedded HTML templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"imageSrc":            imageSrc,
		"historyLabel":        func() string { return HistoryLabel },
		"loadingTitle":        func() string { return LoadingTitle },
		"loadingDetail":       func() string { return LoadingDetail },
		"emptyPrompt":         func() string { return EmptyPrompt },
		"emptyExample":        func() string { return EmptyExample },
		"sectionIllustration": func() string { return SectionIllustration },
		"sectionSources":      func() string { return SectionSources },
	}).ParseFS(templateFS, "templates/*.html")
}

// imageSrc lets generated image data URIs through the URL sanitizer.
// Anything else is escaped as usual.
func imageSrc(uri string) any {
	if strings.HasPrefix(uri, "data:image/") {
		return template.URL(uri)
	}
	return uri
}
