// SPDX-License-Identifier: Unlicense OR MIT

package font

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type loadedVersion struct {
	epoch   int
	version uint32
}

// UpdateMap tracks which loaded fonts are stale relative to the versions
// file. The watcher replaces the source map and bumps the epoch; requests
// then see affected fonts as not latest until they are reloaded.
type UpdateMap struct {
	mu     sync.Mutex
	source map[string]uint32
	epoch  int
	loaded map[string]loadedVersion
}

// NewUpdateMap returns an empty map: every font is stale until loaded.
func NewUpdateMap() *UpdateMap {
	return &UpdateMap{
		source: make(map[string]uint32),
		loaded: make(map[string]loadedVersion),
	}
}

// IsLatest reports whether the named font was loaded at the current epoch,
// or matches the version the source file advertises.
func (u *UpdateMap) IsLatest(name string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.isLatestLocked(name)
}

func (u *UpdateMap) isLatestLocked(name string) bool {
	lv, ok := u.loaded[name]
	if !ok {
		return false
	}
	if lv.epoch == u.epoch {
		return true
	}
	version, ok := u.source[name]
	if !ok {
		return false
	}
	return version == lv.version
}

// Update records that the named font is now loaded at the current epoch
// and source version. It is a no-op when the font is already latest or the
// source does not list it.
func (u *UpdateMap) Update(name string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.isLatestLocked(name) {
		return
	}
	version, ok := u.source[name]
	if !ok {
		return
	}
	u.loaded[name] = loadedVersion{epoch: u.epoch, version: version}
}

// SetSource replaces the authoritative version map and bumps the epoch.
func (u *UpdateMap) SetSource(source map[string]uint32) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if source == nil {
		source = make(map[string]uint32)
	}
	u.source = source
	u.epoch++
}

// Epoch returns the current update epoch.
func (u *UpdateMap) Epoch() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.epoch
}

// Families returns the names listed by the current source.
func (u *UpdateMap) Families() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	names := make([]string, 0, len(u.source))
	for name := range u.source {
		names = append(names, name)
	}
	return names
}

// ReadVersions loads a versions file: a JSON object mapping font family to
// integer version.
func ReadVersions(path string) (map[string]uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read versions file: %w", err)
	}
	var raw map[string]uint32
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse versions file: %w", err)
	}
	return raw, nil
}
