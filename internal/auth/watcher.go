package auth

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-reads the session whenever the credentials file changes, so a
// login or logout from another process reaches a running TUI.
type Watcher struct {
	session *Session
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	changes chan bool
}

// NewWatcher watches the directory holding the session's credentials file.
func NewWatcher(session *Session, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := session.Store().Dir
	if err := os.MkdirAll(dir, 0o700); err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		session: session,
		watcher: fsw,
		logger:  logger,
		changes: make(chan bool, 1),
	}, nil
}

// Changes delivers the new logged-in value each time it flips.
func (w *Watcher) Changes() <-chan bool { return w.changes }

// Run processes events until ctx is done. It closes Changes on exit.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.changes)
	credName := filepath.Base(w.session.Store().Path())
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != credName {
				continue
			}
			changed, err := w.session.Refresh()
			if err != nil {
				w.logger.Warn("credentials reload failed", slog.String("error", err.Error()))
				continue
			}
			if !changed {
				continue
			}
			select {
			case w.changes <- w.session.LoggedIn():
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("credentials watcher error", slog.String("error", err.Error()))
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
