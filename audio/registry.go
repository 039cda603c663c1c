// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Registry maps file extensions (e.g. ".wav", ".ogg") to formats. It is only
// a hint for opening by path; content sniffing stays authoritative.
type Registry struct {
	exts map[string]Format

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		exts: make(map[string]Format),
		mtx:  &sync.RWMutex{},
	}
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}

// Register associates each of exts with f, replacing earlier entries.
func (r *Registry) Register(f Format, exts ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, ext := range exts {
		if ext = normalizeExt(ext); ext != "" {
			r.exts[ext] = f
		}
	}
}

// Get returns the format registered for ext.
func (r *Registry) Get(ext string) (Format, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	f, ok := r.exts[normalizeExt(ext)]
	return f, ok
}

// ForPath looks up the extension of path.
func (r *Registry) ForPath(path string) (Format, bool) {
	return r.Get(filepath.Ext(path))
}

// Extensions lists the extensions registered for f in sorted order.
func (r *Registry) Extensions(f Format) []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	var out []string
	for ext, got := range r.exts {
		if got == f {
			out = append(out, ext)
		}
	}
	slices.Sort(out)

	return out
}
