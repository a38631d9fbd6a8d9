package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikeboe/guia-procesos/pkg/history"
)

func TestBeginClearsPreviousOutcome(t *testing.T) {
	s := State{
		Status:     Loaded,
		Result:     &SearchResult{Text: "viejo"},
		ImageURL:   "data:image/png;base64,AA==",
		ImageError: "x",
		Error:      "y",
		History:    history.List{"muro"},
	}

	got := s.Begin("losa")

	assert.Equal(t, Loading, got.Status)
	assert.True(t, got.Loading())
	assert.Nil(t, got.Result)
	assert.Empty(t, got.ImageURL)
	assert.Empty(t, got.ImageError)
	assert.Empty(t, got.Error)
	assert.Equal(t, "losa", got.Query)
	assert.Equal(t, history.List{"muro"}, got.History)
}

func TestApplyText(t *testing.T) {
	base := State{History: history.List{"Muro"}}.Begin("muro")

	t.Run("success records history", func(t *testing.T) {
		got := base.ApplyText(Outcome[SearchResult]{Value: SearchResult{Text: "ok"}})
		assert.Equal(t, Loaded, got.Status)
		assert.Equal(t, "ok", got.Result.Text)
		assert.Equal(t, history.List{"muro"}, got.History)
	})

	t.Run("failure keeps history", func(t *testing.T) {
		got := base.ApplyText(Outcome[SearchResult]{Err: errors.New("down")})
		assert.Equal(t, Failed, got.Status)
		assert.Equal(t, MsgTextFailed, got.Error)
		assert.Nil(t, got.Result)
		assert.Equal(t, history.List{"Muro"}, got.History)
	})
}

func TestApplyImage(t *testing.T) {
	loaded := State{}.Begin("q").ApplyText(Outcome[SearchResult]{Value: SearchResult{Text: "t"}})

	tests := []struct {
		name      string
		outcome   Outcome[string]
		wantURL   string
		wantError string
	}{
		{"image", Outcome[string]{Value: "data:image/png;base64,AA=="}, "data:image/png;base64,AA==", ""},
		{"empty payload", Outcome[string]{}, "", MsgImageEmpty},
		{"failure", Outcome[string]{Err: errors.New("quota")}, "", MsgImageFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loaded.ApplyImage(tt.outcome)
			assert.Equal(t, tt.wantURL, got.ImageURL)
			assert.Equal(t, tt.wantError, got.ImageError)
			assert.Equal(t, Loaded, got.Status)
		})
	}
}

func TestApplyImageIgnoredAfterTextFailure(t *testing.T) {
	failed := State{}.Begin("q").ApplyText(Outcome[SearchResult]{Err: errors.New("x")})

	got := failed.ApplyImage(Outcome[string]{Value: "data:image/png;base64,AA=="})

	assert.Empty(t, got.ImageURL)
	assert.Empty(t, got.ImageError)
}

func TestFinishNeverLeavesLoading(t *testing.T) {
	got := State{}.Begin("q").Finish()

	assert.False(t, got.Loading())
	assert.Equal(t, Failed, got.Status)
	assert.Equal(t, MsgRequestError, got.Error)

	loaded := State{}.Begin("q").ApplyText(Outcome[SearchResult]{Value: SearchResult{}}).Finish()
	assert.Equal(t, Loaded, loaded.Status)
	assert.Empty(t, loaded.Error)
}

func TestCitationLabel(t *testing.T) {
	assert.Equal(t, "NSR-10", Citation{URI: "https://x", Title: "NSR-10"}.Label())
	assert.Equal(t, "https://x", Citation{URI: "https://x"}.Label())
}
