package knowledge

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever its backing file is rewritten. Editors and
// deploy tooling often replace the file, so Create is handled alongside Write.
// The returned stop function closes the watcher.
func (s *Store) Watch() (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: file replacement would otherwise drop the watch.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(s.path)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
					log.Printf("🔄 [KNOWLEDGE] %s changed, reloading", s.path)
					if err := s.Reload(); err != nil {
						log.Printf("⚠️ [KNOWLEDGE] Reload failed: %v", err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("⚠️ [KNOWLEDGE] Watcher error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
