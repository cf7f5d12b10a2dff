package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/bindz"
	"github.com/zoobzio/bindz/hn"
	"github.com/zoobzio/bindz/internal/app"
	"github.com/zoobzio/bindz/internal/config"
	"github.com/zoobzio/bindz/internal/observability"
)

func newSearchCmd(f *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "search [text...]",
		Short: "Print one page of results and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f, cmd.Flags())
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Search.Query = strings.Join(args, " ")
			}
			if cfg.Search.Query == "" {
				return fmt.Errorf("search: query must not be empty")
			}

			level, err := observability.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cmd.ErrOrStderr(), level)

			snap, err := searchOnce(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

// searchOnce runs the session pipeline until the first search result.
func searchOnce(ctx context.Context, cfg *config.Config, logger *slog.Logger) (app.Snapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := cfg.Search.Timeout.Duration
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout+time.Second)
	defer cancel()
	obs := observability.NewSlogObserver(logger)

	client := hn.NewClient(cfg.Search.Endpoint,
		hn.WithTimeout(cfg.Search.Timeout.Duration),
		hn.WithUserAgent("hnz/"+version),
		hn.WithObserver(obs),
	)
	channels := app.NewChannels(cfg.Search.Query, cfg.Subject(), cfg.Search.Page)
	session := app.NewSession(channels, client, app.Options{
		Debounce: time.Millisecond,
		Context:  ctx,
		Observer: obs,
		Logger:   logger,
	})

	ready := bindz.NewFilter(func(s app.Snapshot) bool { return s.Fetched }).
		WithName("ready").
		Process(session.Snapshots())

	done := make(chan app.Snapshot, 1)
	sub := bindz.NewTake[app.Snapshot](1).Process(ready).Subscribe(func(s app.Snapshot) {
		done <- s
	})
	defer sub.Unsubscribe()

	select {
	case snap := <-done:
		if snap.Err != nil {
			return snap, fmt.Errorf("search: %w", errorCause(snap.Err))
		}
		return snap, nil
	case <-ctx.Done():
		return app.Snapshot{}, fmt.Errorf("search: %w", ctx.Err())
	}
}

func errorCause(err error) error {
	var se *bindz.StreamError
	if errors.As(err, &se) && se.Err != nil {
		return se.Err
	}
	return err
}

type storyOutput struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Author   string `json:"author,omitempty" yaml:"author,omitempty"`
	Points   int    `json:"points" yaml:"points"`
	Comments int    `json:"comments" yaml:"comments"`
	Created  string `json:"created,omitempty" yaml:"created,omitempty"`
}

type searchOutput struct {
	Query   string        `json:"query" yaml:"query"`
	Subject string        `json:"subject" yaml:"subject"`
	Page    int           `json:"page" yaml:"page"`
	Stories []storyOutput `json:"stories" yaml:"stories"`
}

func toOutput(s app.Snapshot) searchOutput {
	out := searchOutput{
		Query:   s.Query,
		Subject: s.Subject.Label(),
		Page:    s.Page,
		Stories: make([]storyOutput, 0, len(s.Stories)),
	}
	for _, story := range s.Stories {
		so := storyOutput{
			ID:       story.ObjectID,
			Title:    story.DisplayTitle(),
			URL:      story.Link(),
			Author:   story.Author,
			Points:   story.Points,
			Comments: story.NumComments,
		}
		if created := story.Created(); !created.IsZero() {
			so.Created = created.UTC().Format(time.RFC3339)
		}
		out.Stories = append(out.Stories, so)
	}
	return out
}

func printSnapshot(w io.Writer, s app.Snapshot, format string) error {
	out := toOutput(s)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case "", "text":
		fmt.Fprintf(w, "%s · %s · page %d\n\n", out.Query, out.Subject, out.Page+1)
		for i, story := range out.Stories {
			fmt.Fprintf(w, "%2d. %s\n", i+1, story.Title)
			if story.URL != "" {
				fmt.Fprintf(w, "    %s\n", story.URL)
			}
			fmt.Fprintf(w, "    %s · %d points · %d comments\n", orUnknown(story.Author), story.Points, story.Comments)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
