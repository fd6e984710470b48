package load

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/nexus"
)

// watchSettle is how long Watch waits after the last file event before
// reloading, so editors that save in multiple steps trigger one reload.
const watchSettle = 50 * time.Millisecond

// Watch reloads the given manifest files whenever one of them changes
// and hands each successfully rebuilt registry to fn. Reload failures
// are logged and leave the previous registry in effect. Watch blocks
// until ctx is canceled or the underlying watcher is closed.
func Watch(ctx context.Context, fn func(*nexus.Registry), paths ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("load: start watcher: %w", err)
	}
	defer watcher.Close()
	watched := make(map[string]bool, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("load: resolve %s: %w", path, err)
		}
		watched[abs] = true
		// Watch the directory rather than the file itself. Editors
		// often replace files on save, which drops file-level watches.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("load: watch %s: %w", path, err)
		}
	}
	settle := time.NewTimer(watchSettle)
	settle.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				settle.Reset(watchSettle)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("manifest watcher error", "err", err)
		case <-settle.C:
			registry, err := Load(paths...)
			if err != nil {
				slog.Warn("manifest reload failed", "err", err)
				continue
			}
			slog.Info("manifests reloaded", "collections", len(registry.Collections()), "relations", len(registry.Relations()))
			fn(registry)
		}
	}
}
