package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// reloadDebounce coalesces the bursts of events a single save produces
const reloadDebounce = 100 * time.Millisecond

// Watcher re-loads tuning whenever a tuning file in the loader's directory
// changes. Reloaded configs arrive on Updates; the consumer applies them on
// its own frame.
type Watcher struct {
	watcher *fsnotify.Watcher
	loader  *Loader
	log     logrus.FieldLogger
	Updates chan *TuningConfig
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the loader's base directory
func NewWatcher(loader *Loader, log logrus.FieldLogger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(loader.BasePath()); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		loader:  loader,
		log:     log,
		Updates: make(chan *TuningConfig, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes its channels
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Updates)
	defer close(w.Errors)

	// Reload once the file has been quiet for reloadDebounce
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		changed string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !IsTuningFile(event.Name) {
				continue
			}
			changed = event.Name
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload(changed)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.publishError(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload(name string) {
	cfg, err := w.loader.LoadTuning()
	if err != nil {
		w.log.WithError(err).WithField("file", name).Error("tuning reload failed")
		w.publishError(err)
		return
	}
	w.log.WithField("file", name).Info("tuning reloaded")

	// Keep only the newest config if the consumer has not caught up
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- cfg:
	case <-w.closeCh:
	}
}

func (w *Watcher) publishError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

// IsTuningFile reports whether path names a tuning config file
func IsTuningFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	switch base {
	case "tuning.yaml", "tuning.yml", "tuning.json":
		return true
	}
	return false
}
