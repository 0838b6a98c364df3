package cli

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chmouel/cgc/internal/config"
	log "github.com/chmouel/cgc/internal/log"
	"github.com/chmouel/cgc/internal/utils"
	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is used when the configured debounce is not positive.
const DefaultWatchDebounce = 600 * time.Millisecond

// watcher tracks the directories of a working tree.
type watcher struct {
	root    string
	fsw     *fsnotify.Watcher
	mu      sync.Mutex
	paths   map[string]struct{}
	ignored map[string]struct{}
}

func newWatcher(root string, ignoredFiles ...string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{
		root:    root,
		fsw:     fsw,
		paths:   make(map[string]struct{}),
		ignored: make(map[string]struct{}),
	}
	for _, f := range ignoredFiles {
		w.ignored[filepath.Clean(f)] = struct{}{}
	}
	w.addWatchTree(root)
	// the index changes on add, restore and commit
	w.addWatchDir(filepath.Join(root, ".git"))
	return w, nil
}

func (w *watcher) close() {
	_ = w.fsw.Close()
}

func (w *watcher) addWatchDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[path]; ok {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		log.Printf("watch: add failed for %s: %v", path, err)
		return
	}
	w.paths[path] = struct{}{}
}

func (w *watcher) addWatchTree(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		w.addWatchDir(path)
		return nil
	})
}

// relevant reports whether an event should trigger a regeneration.
func (w *watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	if _, ok := w.ignored[name]; ok {
		return false
	}
	gitDir := filepath.Join(w.root, ".git")
	if strings.HasPrefix(name, gitDir+string(filepath.Separator)) {
		base := filepath.Base(name)
		return filepath.Dir(name) == gitDir && (base == "index" || base == "HEAD")
	}
	return true
}

// Watch regenerates the scaffold whenever the working tree or the index
// changes, coalescing bursts of events. It returns when ctx is done.
func Watch(ctx context.Context, gitSvc gitService, cfg *config.AppConfig, root string, out *Output) error {
	if _, err := Generate(ctx, gitSvc, cfg, root, out); err != nil {
		return err
	}

	w, err := newWatcher(root, utils.ResolveIn(root, cfg.CommitMessageFile))
	if err != nil {
		return err
	}
	defer w.close()

	debounce := time.Duration(cfg.WatchDebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	out.Printf("Watching %s, press Ctrl+C to stop", root)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.addWatchTree(event.Name)
			}
			log.Printf("watch: %s %s", event.Op, event.Name)
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
			pending = true
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: watcher error: %v", err)
		case <-timer.C:
			pending = false
			if _, err := Generate(ctx, gitSvc, cfg, root, out); err != nil {
				out.Errorf("Error: %v", err)
			}
		}
	}
}
