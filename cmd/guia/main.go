package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mikeboe/guia-procesos/pkg/clients"
	"github.com/mikeboe/guia-procesos/pkg/config"
	"github.com/mikeboe/guia-procesos/pkg/export"
	"github.com/mikeboe/guia-procesos/pkg/generation"
	"github.com/mikeboe/guia-procesos/pkg/presentation"
	"github.com/mikeboe/guia-procesos/pkg/search"
	"github.com/mikeboe/guia-procesos/pkg/tui"
)

var (
	writePDF bool
	outDir   string
)

func main() {
	// Load .env file; plain environment variables work as well
	_ = godotenv.Load()

	// Logs go to stderr so results can be piped
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	slog.SetDefault(slog.New(handler))

	rootCmd := &cobra.Command{
		Use:   "guia",
		Short: "Guía de procesos constructivos",
		Long:  `guia describes construction processes under Colombian norms (NSR-10, NTC) and illustrates them, from the terminal.`,
	}

	searchCmd := &cobra.Command{
		Use:   "search <actividad>",
		Short: "Run one query and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newController(cmd.Context())
			if err != nil {
				return err
			}

			st, err := ctrl.RunSearch(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			view, ok := presentation.BuildResult(st)
			if !ok {
				return errors.New(st.Error)
			}
			fmt.Println(presentation.RenderTerminal(view, 100))

			if !writePDF {
				return nil
			}
			var buf bytes.Buffer
			written, err := export.New().Export(&buf, view)
			if err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}
			if !written {
				return nil
			}
			path := filepath.Join(outDir, export.Filename(view.Query))
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Printf("PDF guardado en %s\n", path)
			return nil
		},
	}
	searchCmd.Flags().BoolVar(&writePDF, "pdf", false, "Also export the result as PDF")
	searchCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory for the exported PDF")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive query screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}

			// Keep log output from drawing over the screen
			slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

			ctrl, err := newController(cmd.Context())
			if err != nil {
				return err
			}

			p := tea.NewProgram(tui.NewModel(ctrl, export.New(), dir), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	rootCmd.AddCommand(searchCmd, tuiCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

func newController(ctx context.Context) (*search.Controller, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := clients.NewGenAI(ctx, cfg.GoogleApiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	gemini := generation.NewGemini(client, cfg.TextModel, cfg.ImageModel)
	return search.NewController(gemini, gemini), nil
}
