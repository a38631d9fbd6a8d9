package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

var (
	ErrEmptyQuery          = errors.New("query is empty")
	ErrSearchInFlight      = errors.New("a search is already in progress")
	ErrUnknownHistoryEntry = errors.New("history entry not found")
)

// Controller owns the application state and coordinates the text and
// image collaborators for each search.
type Controller struct {
	Text   TextGenerator
	Image  ImageGenerator
	Logger *slog.Logger

	// OnStateUpdate is called with a copy of the state after every settled search.
	OnStateUpdate func(state State)

	mu    sync.Mutex
	state State
}

func NewController(text TextGenerator, image ImageGenerator) *Controller {
	return &Controller{
		Text:   text,
		Image:  image,
		Logger: slog.Default(),
		state:  State{Status: Idle},
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// RunSearch runs a search for query and returns the resulting state.
// Calls already dispatched are not cancelled when ctx is.
func (c *Controller) RunSearch(ctx context.Context, query string) (final State, err error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Snapshot(), ErrEmptyQuery
	}

	c.mu.Lock()
	if c.state.Loading() {
		c.mu.Unlock()
		return c.Snapshot(), ErrSearchInFlight
	}
	c.state = c.state.Begin(query)
	c.mu.Unlock()

	c.Logger.Info("Starting search", "query", query)

	var text Outcome[SearchResult]
	var image Outcome[string]
	defer func() {
		c.mu.Lock()
		c.state = c.state.ApplyText(text).ApplyImage(image).Finish()
		final = c.state.clone()
		c.mu.Unlock()

		if c.OnStateUpdate != nil {
			c.OnStateUpdate(final)
		}
	}()

	detached := context.WithoutCancel(ctx)
	text, image = Settle(detached, func(ctx context.Context) (SearchResult, error) {
		return c.Text.FetchProcessText(ctx, query)
	}, func(ctx context.Context) (string, error) {
		return c.Image.GenerateProcessImage(ctx, query)
	})

	if !text.Ok() {
		c.Logger.Error("Error fetching process details", "query", query, "error", text.Err)
	} else {
		c.Logger.Info("Process details received", "query", query, "sources", len(text.Value.Sources))
	}
	if !image.Ok() {
		c.Logger.Error("Error generating image", "query", query, "error", image.Err)
	}

	return final, nil
}

// RerunHistory repeats the search stored at index in the history.
func (c *Controller) RerunHistory(ctx context.Context, index int) (State, error) {
	c.mu.Lock()
	query, ok := c.state.History.At(index)
	c.mu.Unlock()
	if !ok {
		return c.Snapshot(), ErrUnknownHistoryEntry
	}
	return c.RunSearch(ctx, query)
}
