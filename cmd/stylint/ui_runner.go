package main

import (
	"bytes"
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"stylint/internal/driver"
	"stylint/internal/report"
	"stylint/internal/ui"
)

// runLintWithUI shows the progress view on out while the batch runs. Reports
// are buffered and written to out after the view exits, so the two never mix.
func runLintWithUI(ctx context.Context, out io.Writer, linter *driver.Linter, files []string, jobs int, build func(io.Writer) *report.Sink) (*report.Sink, error) {
	var buf bytes.Buffer
	sink := build(&buf)
	if err := sink.Begin(); err != nil {
		return sink, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan error, 1)
	go func() {
		err := linter.LintFiles(ctx, files, driver.BatchOptions{
			Jobs:     jobs,
			Emit:     sink.Emit,
			Progress: driver.ChannelSink{Ch: events},
		})
		close(events)
		outcomeCh <- err
	}()

	model := ui.NewProgressModel("linting", files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	final, uiErr := program.Run()
	if uiErr != nil || !ui.Finished(final) {
		// UI ушёл раньше времени (ошибка или Ctrl+C): отменяем линтинг
		cancel()
	}
	// дочитываем события, чтобы воркеры не застряли на полном канале
	go func() {
		for range events {
		}
	}()
	err := <-outcomeCh
	if closeErr := sink.Close(); err == nil {
		err = closeErr
	}
	if _, werr := out.Write(buf.Bytes()); err == nil {
		err = werr
	}
	if err == nil {
		err = uiErr
	}
	return sink, err
}
