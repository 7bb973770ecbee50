package content

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce window for editors that write files in several events.
const settleDelay = 300 * time.Millisecond

// Watch re-invokes onChange whenever a markdown file in dir is created,
// written, renamed or removed. It returns a stop function. Events are
// debounced so a burst of writes triggers a single sync.
func Watch(dir string, onChange func()) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	var mu sync.Mutex
	var pending *time.Timer

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevant(ev) {
					continue
				}
				mu.Lock()
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(settleDelay, onChange)
				mu.Unlock()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("content watch: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}

func relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(ev.Name))
	return ext == ".md" || ext == ".mdx" || ext == ".yaml" || ext == ".yml"
}
