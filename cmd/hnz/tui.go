package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zoobzio/bindz"
	"github.com/zoobzio/bindz/hn"
	"github.com/zoobzio/bindz/internal/app"
	"github.com/zoobzio/bindz/internal/observability"
	"github.com/zoobzio/bindz/internal/tui"
)

func runTUI(cmd *cobra.Command, f *rootFlags) error {
	cfg, err := loadConfig(f, cmd.Flags())
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	loop := bindz.NewLoop()
	go func() {
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("event loop stopped", "error", err)
		}
	}()

	var program *tea.Program
	send := func(msg tea.Msg) {
		program.Send(msg)
	}

	logs := observability.NewSlogObserver(logger)
	client := hn.NewClient(cfg.Search.Endpoint,
		hn.WithTimeout(cfg.Search.Timeout.Duration),
		hn.WithUserAgent("hnz/"+version),
		hn.WithObserver(observability.NewMultiObserver(logs, tui.NewStatusObserver(send))),
	)

	channels := app.NewChannels(cfg.Search.Query, cfg.Subject(), cfg.Search.Page)
	session := app.NewSession(channels, client, app.Options{
		Debounce:     cfg.Search.Debounce.Duration,
		LatestOnly:   cfg.Search.LatestOnly,
		Context:      ctx,
		Clock:        bindz.RealClock,
		Scheduler:    loop,
		Observer:     logs,
		Logger:       logger,
		OnPageChange: func() { send(tui.ScrollTopMsg{}) },
	})

	dispatch := tui.Scheduled(session, loop, func(err error) {
		logger.Warn("dispatch failed", "error", err)
	})
	model := tui.New(dispatch, tui.Options{Initial: channels.Snapshot()})
	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	loop.Schedule(func() {
		err := session.Attach(func(s app.Snapshot) {
			program.Send(tui.SnapshotMsg(s))
		})
		if err != nil {
			logger.Error("attach failed", "error", err)
		}
	})

	logger.Info("hnz started",
		"endpoint", cfg.Search.Endpoint,
		"query", cfg.Search.Query,
		"subject", cfg.Subject().Label(),
		"latest_only", cfg.Search.LatestOnly,
	)

	_, runErr := program.Run()

	detachCtx, cancelDetach := context.WithTimeout(ctx, time.Second)
	defer cancelDetach()
	if err := loop.Do(detachCtx, func() { _ = session.Detach() }); err != nil {
		logger.Warn("detach did not complete", "error", err)
	}
	logger.Info("hnz stopped", "in_flight", session.InFlight())

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("running tui: %w", runErr)
	}
	return nil
}
