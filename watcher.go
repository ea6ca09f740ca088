package vector3d

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher calls back when watched files change. Bursts of events for one
// file are collapsed into a single call after the debounce delay.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	callbacks map[string]func(string)
	debounce  time.Duration
	timers    map[string]*time.Timer
	dirs      map[string]bool
}

func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &FileWatcher{
		watcher:   w,
		callbacks: make(map[string]func(string)),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
		dirs:      make(map[string]bool),
	}, nil
}

// Watch registers files. Their directories are watched rather than the files
// themselves, so editors that save by renaming a temp file are still seen.
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("resolve path %s: %w", file, err)
		}
		dir := filepath.Dir(absPath)
		if !fw.dirs[dir] {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			fw.dirs[dir] = true
		}
		fw.callbacks[absPath] = callback
	}
	return nil
}

// Start handles events on a new goroutine until Close.
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					fw.handleFileChange(filepath.Clean(event.Name))
				}
			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Watcher error: %v", err)
			}
		}
	}()
}

func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, ok := fw.callbacks[filePath]
	if !ok {
		return
	}
	if t, ok := fw.timers[filePath]; ok {
		t.Stop()
	}
	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		callback(filePath)
	})
}

func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	for _, t := range fw.timers {
		t.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}

// SceneReloader rebuilds the viewer whenever the scene or config file
// changes. The frame loop picks the new viewer up with Take.
type SceneReloader struct {
	ScenePath  string
	ConfigPath string

	fw      *FileWatcher
	mu      sync.Mutex
	pending *Viewer
	lastErr error
}

func NewSceneReloader(scenePath, configPath string, debounce time.Duration) (*SceneReloader, error) {
	fw, err := NewFileWatcher(debounce)
	if err != nil {
		return nil, err
	}
	r := &SceneReloader{ScenePath: scenePath, ConfigPath: configPath, fw: fw}
	files := []string{scenePath}
	if configPath != "" {
		files = append(files, configPath)
	}
	if err := fw.Watch(files, func(string) { r.Reload() }); err != nil {
		fw.Close()
		return nil, err
	}
	fw.Start()
	return r, nil
}

// Reload loads both files now. On failure the running scene is kept.
func (r *SceneReloader) Reload() {
	cfg, err := LoadConfig(r.ConfigPath)
	if err == nil {
		var v *Viewer
		v, err = LoadSceneFile(r.ScenePath, cfg)
		if err == nil {
			r.mu.Lock()
			r.pending = v
			r.lastErr = nil
			r.mu.Unlock()
			log.Printf("Reloaded scene %s", r.ScenePath)
			return
		}
	}
	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()
	log.Printf("Reload failed: %v", err)
}

// Take returns the newest loaded viewer, or nil if nothing changed since the
// last call.
func (r *SceneReloader) Take() *Viewer {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.pending
	r.pending = nil
	return v
}

func (r *SceneReloader) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

func (r *SceneReloader) Close() error {
	return r.fw.Close()
}
