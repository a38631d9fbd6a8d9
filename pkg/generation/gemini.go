package generation

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/mikeboe/guia-procesos/pkg/search"
)

var ErrEmptyResponse = errors.New("model returned no content")

// contentGenerator is the part of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini implements the text and image collaborators on top of the
// Gemini API.
type Gemini struct {
	models     contentGenerator
	textModel  string
	imageModel string
	Logger     *slog.Logger
}

var (
	_ search.TextGenerator  = (*Gemini)(nil)
	_ search.ImageGenerator = (*Gemini)(nil)
)

func NewGemini(client *genai.Client, textModel, imageModel string) *Gemini {
	return &Gemini{
		models:     client.Models,
		textModel:  textModel,
		imageModel: imageModel,
		Logger:     slog.Default(),
	}
}

// FetchProcessText asks the text model for a grounded description of the
// construction process named by query.
func (g *Gemini) FetchProcessText(ctx context.Context, query string) (search.SearchResult, error) {
	resp, err := g.models.GenerateContent(ctx, g.textModel, []*genai.Content{
		genai.NewContentFromText(processPrompt(query), genai.RoleUser),
	}, &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return search.SearchResult{}, fmt.Errorf("text generation failed: %w", err)
	}

	result, err := resultFromResponse(resp)
	if err != nil {
		return search.SearchResult{}, err
	}

	g.Logger.Info("Text generated", "model", g.textModel, "length", len(result.Text), "sources", len(result.Sources))
	return result, nil
}

// GenerateProcessImage asks the image model for an illustration. It
// returns "" when the model answered without image data.
func (g *Gemini) GenerateProcessImage(ctx context.Context, query string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.imageModel, []*genai.Content{
		genai.NewContentFromText(illustrationPrompt(query), genai.RoleUser),
	}, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}

	uri := imageFromResponse(resp)
	if uri == "" {
		g.Logger.Warn("Image model returned no inline data", "model", g.imageModel)
	}
	return uri, nil
}

func resultFromResponse(resp *genai.GenerateContentResponse) (search.SearchResult, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return search.SearchResult{}, ErrEmptyResponse
	}
	candidate := resp.Candidates[0]

	var text strings.Builder
	for _, p := range candidate.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		text.WriteString(p.Text)
	}
	if text.Len() == 0 {
		return search.SearchResult{}, ErrEmptyResponse
	}

	sources := []search.Citation{}
	if gm := candidate.GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			sources = append(sources, search.Citation{URI: chunk.Web.URI, Title: chunk.Web.Title})
		}
	}

	return search.SearchResult{Text: text.String(), Sources: sources}, nil
}

func imageFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.InlineData == nil || len(p.InlineData.Data) == 0 {
			continue
		}
		mime := p.InlineData.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(p.InlineData.Data)
	}
	return ""
}
