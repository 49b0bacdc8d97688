// Package runner executes an executable option's actions one at a time on a
// worker goroutine and streams progress back to the caller.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-launcher/pkg/launcher"
	"github.com/mattsolo1/grove-launcher/pkg/models"
)

// DefaultStepDelay gives launched programs time to come up before the next action.
const DefaultStepDelay = 500 * time.Millisecond

// Runner dispatches action sequences through a Launcher.
type Runner struct {
	launcher  launcher.Launcher
	stepDelay time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
	logger    *logrus.Entry
}

// Option configures a Runner.
type Option func(*Runner)

// WithStepDelay sets the pause after each action. Zero disables it.
func WithStepDelay(d time.Duration) Option {
	return func(r *Runner) { r.stepDelay = d }
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Entry) Option {
	return func(r *Runner) { r.logger = l }
}

// WithSleep replaces the context-aware sleep used for waits and pacing.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(r *Runner) { r.sleep = fn }
}

// New creates a runner that launches through l.
func New(l launcher.Launcher, opts ...Option) *Runner {
	r := &Runner{
		launcher:  l,
		stepDelay: DefaultStepDelay,
		sleep:     Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logrus.NewEntry(logrus.New())
	}
	return r
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run starts executing actions against basePath and returns immediately.
// The action slice is copied, so later changes by the caller have no effect.
func (r *Runner) Run(ctx context.Context, basePath string, actions []models.Action) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		updates: make(chan Status, len(actions)),
		done:    make(chan struct{}),
		cancel:  cancel,
	}
	job := append([]models.Action(nil), actions...)
	go r.work(ctx, h, basePath, job)
	return h
}

func (r *Runner) work(ctx context.Context, h *Handle, basePath string, actions []models.Action) {
	defer h.cancel()

	total := len(actions)
	log := r.logger.WithFields(logrus.Fields{"base": basePath, "total": total})
	outcome := Outcome{State: Succeeded}

	for i, action := range actions {
		if ctx.Err() != nil {
			outcome = Outcome{State: Cancelled, Steps: i, Err: ctx.Err()}
			break
		}
		stepLog := log.WithFields(logrus.Fields{"index": i + 1, "kind": action.Kind()})

		if err := r.step(ctx, h, basePath, i, total, action); err != nil {
			if ctx.Err() != nil {
				outcome = Outcome{State: Cancelled, Steps: i, Err: ctx.Err()}
				break
			}
			stepLog.WithError(err).Warn("action failed")
			outcome = Outcome{State: Failed, Steps: i, Err: &StepError{Index: i, Action: action, Err: err}}
			break
		}
		stepLog.Debug("action dispatched")
		outcome.Steps = i + 1

		if err := r.sleep(ctx, r.stepDelay); err != nil && ctx.Err() != nil && i < total-1 {
			outcome = Outcome{State: Cancelled, Steps: i + 1, Err: ctx.Err()}
			break
		}
	}

	log.WithField("state", outcome.State).Info("run finished")
	h.finish(outcome)
}

func (r *Runner) step(ctx context.Context, h *Handle, basePath string, i, total int, action models.Action) error {
	var dir string
	if pa, ok := action.(models.PathAction); ok {
		resolved, err := ResolvePath(basePath, pa.RelativePath())
		if err != nil {
			return err
		}
		dir = resolved
	}

	h.updates <- Status{Index: i + 1, Total: total, Kind: action.Kind(), Description: action.Describe()}

	switch a := action.(type) {
	case models.OpenEditor:
		return r.launcher.OpenEditor(dir)
	case models.OpenTool:
		return r.launcher.OpenTool(a.Tool)
	case models.OpenTerminal:
		return r.launcher.OpenTerminal(dir)
	case models.RunCommand:
		return r.launcher.RunCommand(dir, a.Command)
	case models.RunInSubsystem:
		return r.launcher.RunInSubsystem(dir, a.CommandLine())
	case models.Wait:
		return r.sleep(ctx, a.Duration())
	default:
		return fmt.Errorf("unsupported action %T", action)
	}
}

// ResolvePath joins rel onto base and checks that the result exists.
func ResolvePath(base, rel string) (string, error) {
	full := base
	if rel != "" {
		full = filepath.Join(base, rel)
	}
	if _, err := os.Stat(full); err != nil {
		return "", &PathError{Path: full, Err: ErrPathNotFound}
	}
	return full, nil
}
