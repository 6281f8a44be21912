package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// settle is how long the configuration must stay unchanged before a run.
const settle = 300 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "watch [installation.yaml]",
		Short: "Regenerate whenever the installation configuration changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()
			path := configPath(args)
			return watch(cmd.Context(), path, logger, func(ctx context.Context) error {
				return o.run(ctx, path, logger)
			})
		},
	}
	o.register(cmd)
	return cmd
}

// watch calls run once, then after every change of the file at path,
// until ctx is cancelled. Failed runs are logged and do not stop watching.
func watch(ctx context.Context, path string, logger *slog.Logger, run func(context.Context) error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// Editors replace files on save, so watch the directory.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	changed := make(chan struct{}, 1)
	changed <- struct{}{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var timer <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) == abs && ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					timer = time.After(settle)
				}
			case <-timer:
				timer = nil
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return err
			}
		}
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-changed:
				if err := run(ctx); err != nil && ctx.Err() == nil {
					logger.Error("update failed", "error", err)
					continue
				}
				logger.Info("waiting for changes", "file", abs)
			}
		}
	})
	return g.Wait()
}
