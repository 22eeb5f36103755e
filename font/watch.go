// SPDX-License-Identifier: Unlicense OR MIT

package font

import (
	"context"
	"log"
	"os"
	"time"
)

// Watcher polls the versions file and, on change, replaces the update
// map's source and bumps its epoch. Watching is best effort: stat or parse
// failures are logged and the previous source stays in effect.
type Watcher struct {
	Path     string
	Interval time.Duration
	Updates  *UpdateMap

	lastMod  time.Time
	lastSize int64
}

// Run polls until ctx is done. The first successful poll always loads the
// source.
func (w *Watcher) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	info, err := os.Stat(w.Path)
	if err != nil {
		log.Printf("font watcher: stat %s: %v", w.Path, err)
		return
	}
	if info.ModTime().Equal(w.lastMod) && info.Size() == w.lastSize {
		return
	}
	source, err := ReadVersions(w.Path)
	if err != nil {
		log.Printf("font watcher: %v", err)
		return
	}
	w.lastMod = info.ModTime()
	w.lastSize = info.Size()
	w.Updates.SetSource(source)
	log.Printf("font watcher: versions reloaded, %d families", len(source))
}
