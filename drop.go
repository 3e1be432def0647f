package corkboard

import (
	"io/fs"
	"sort"
)

// Drop places every regular file at the root of fsys, in name order. The
// first drop initializes the board; an empty drop still does.
func (b *Board) Drop(fsys fs.FS) {
	b.markInitialized()
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		b.log.Warn("read dropped files", "err", err)
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		b.AddItemFS(fsys, e.Name())
	}
}

// DropPaths places items for paths as if they had been dropped on the
// window, in the order given.
func (b *Board) DropPaths(paths ...string) {
	b.markInitialized()
	for _, p := range paths {
		b.AddItem(p)
	}
}
