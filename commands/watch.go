package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"tagvis/internal/analyzer"
	"tagvis/internal/config"
	"tagvis/internal/util"

	"github.com/fsnotify/fsnotify"
)

// watchAndRun renders once, then re-runs the full batch whenever the log
// file changes. The watcher observes the directory so editors that replace
// the file on save are still caught.
func watchAndRun(cfg *config.Config) error {
	if err := analyzer.New(cfg).Run(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	logPath, err := filepath.Abs(cfg.LogFile)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(logPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(logPath), err)
	}
	util.LogInfo(fmt.Sprintf("Watching %s for changes", cfg.LogFile))

	// Writes arrive in bursts; the timer coalesces them into one re-run.
	const debounce = 500 * time.Millisecond
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != logPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.LogWarnf("Watcher error: %v", err)
		case <-timer.C:
			util.LogInfo("Log file changed, re-rendering")
			if err := analyzer.New(cfg).Run(); err != nil {
				util.LogErrorf("Re-render failed: %v", err)
			}
		}
	}
}
