// SPDX-License-Identifier: Unlicense OR MIT

package font

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader reloads font binaries from a directory where each file is named
// exactly by its family.
type Loader struct {
	Dir     string
	Cache   *Cache
	Updates *UpdateMap
}

// LoadFont loads the named family from disk unless the update map already
// considers it latest. The update map is marked regardless of parse
// success once the file was read, so a broken binary is not retried on
// every request; requests fall through to the default family instead.
func (l *Loader) LoadFont(name string) error {
	if l.Updates.IsLatest(name) {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(l.Dir, name))
	if err != nil {
		return fmt.Errorf("open font file %q: %w", name, err)
	}
	defer l.Updates.Update(name)
	format, compressed := Sniff(data)
	if format == FormatUnknown {
		return fmt.Errorf("font %q: unrecognized signature", name)
	}
	if compressed {
		return fmt.Errorf("font %q: woff decompression not supported", name)
	}
	if err := l.Cache.Load(name, data); err != nil {
		return err
	}
	return nil
}
