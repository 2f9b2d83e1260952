package driver

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"stylint/internal/diag"
	"stylint/internal/report"
	"stylint/internal/source"
)

// BatchOptions configures LintFiles.
type BatchOptions struct {
	// Jobs bounds the worker pool; <= 0 means GOMAXPROCS.
	Jobs int
	// Emit receives reports in input order. It is never called concurrently.
	// An error stops the batch.
	Emit func(*report.Report) error
	// Progress receives per-file events; may be nil.
	Progress ProgressSink
	// BaseDir is the file set base for relative display paths.
	BaseDir string
}

// LintFiles lints files in parallel and streams reports to opts.Emit in the
// order of files. On cancellation unfinished files are dropped, reports that
// were already emitted stay, and the context error is returned.
func (l *Linter) LintFiles(ctx context.Context, files []string, opts BatchOptions) error {
	if len(files) == 0 {
		return ErrNoInput
	}

	// Создаём FileSet и предзагружаем все файлы
	fileSet := source.NewFileSetWithBase(opts.BaseDir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			// Сохраняем ошибку загрузки: станет io failure в отчёте
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	order := newReorder(len(files), opts.Emit)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emit(opts.Progress, Event{File: path, Status: StatusWorking})
			start := time.Now()

			var (
				rep    *report.Report
				cached bool
			)
			display := fileSet.DisplayPath(path)
			if loadErr, hadError := loadErrors[path]; hadError {
				rep = ioFailure(display, loadErr)
			} else {
				rep, cached = l.lint(display, fileSet.Get(fileIDs[path]))
			}

			evt := Event{File: path, Status: StatusDone, Cached: cached, Elapsed: time.Since(start)}
			if rep.Fatal() {
				evt.Status = StatusError
				evt.Err = fatalCause(rep)
			}
			emit(opts.Progress, evt)

			return order.put(i, rep)
		})
	}

	return g.Wait()
}

// reorder releases results in index order as soon as the prefix is complete.
type reorder struct {
	mu    sync.Mutex
	slots []*report.Report
	next  int
	emit  func(*report.Report) error
	err   error
}

func newReorder(n int, emit func(*report.Report) error) *reorder {
	return &reorder{slots: make([]*report.Report, n), emit: emit}
}

func (o *reorder) put(i int, rep *report.Report) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.slots[i] = rep
	for o.next < len(o.slots) && o.slots[o.next] != nil {
		r := o.slots[o.next]
		o.slots[o.next] = nil // отданный отчёт больше не держим
		o.next++
		if o.emit == nil {
			continue
		}
		if err := o.emit(r); err != nil {
			o.err = err
			return err
		}
	}
	return nil
}

type fileError struct {
	path string
	msg  string
}

func (e *fileError) Error() string { return e.path + ": " + e.msg }

func fatalCause(rep *report.Report) error {
	if len(rep.Failures) > 0 {
		return &fileError{path: rep.Path, msg: rep.Failures[0].Message}
	}
	for _, v := range rep.Violations {
		if v.RuleID == diag.ScanRuleID {
			return &fileError{path: rep.Path, msg: v.Message}
		}
	}
	return nil
}
