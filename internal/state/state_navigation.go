package state

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// CanonicalPath resolves path to an absolute path with symlinks evaluated.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", abs, err)
	}
	return resolved, nil
}

// ancestorsOf returns every parent of path from the filesystem root down,
// each with a zero cursor and viewport.
func ancestorsOf(path string) []Ancestor {
	var parents []Ancestor
	for p := path; ; {
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		parents = append(parents, Ancestor{Path: parent})
		p = parent
	}
	for i, j := 0, len(parents)-1; i < j; i, j = i+1, j-1 {
		parents[i], parents[j] = parents[j], parents[i]
	}
	return parents
}

// sortNames orders names by their composed lowercase form, so decomposed
// names sort beside their composed spelling. Names that fold to the same
// key keep a deterministic byte order.
func sortNames(names []string) []string {
	caser := cases.Lower(language.Und)
	type keyed struct {
		name string
		key  string
	}
	items := make([]keyed, len(names))
	for i, n := range names {
		items[i] = keyed{name: n, key: caser.String(norm.NFC.String(n))}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].key != items[j].key {
			return items[i].key < items[j].key
		}
		return items[i].name < items[j].name
	})
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.name
	}
	return out
}

// readSorted lists path through the reader. Failures degrade to an empty
// listing.
func (r *StateReducer) readSorted(path string) []string {
	names, err := r.reader.ReadNames(path)
	if err != nil {
		log.Printf("listing %s: %v", path, err)
		return nil
	}
	return sortNames(names)
}

func (r *StateReducer) loadContent(state *AppState) {
	state.Content = r.readSorted(state.CurrentPath)
}

func (r *StateReducer) descend(state *AppState) {
	name := state.SelectedName()
	if name == "" {
		return
	}
	child := filepath.Join(state.CurrentPath, name)
	if !r.reader.IsDir(child) {
		return
	}

	state.Ancestors = append(state.Ancestors, Ancestor{
		Path:          state.CurrentPath,
		Cursor:        state.Cursor,
		ViewportStart: state.ViewportStart,
	})
	state.CurrentPath = child
	r.loadContent(state)
	state.Cursor = 0
	state.ViewportStart = 0
}

func (r *StateReducer) ascend(state *AppState) {
	current := state.CurrentPath
	if filepath.Dir(current) == current {
		return
	}

	var top Ancestor
	if n := len(state.Ancestors); n > 0 {
		top = state.Ancestors[n-1]
		state.Ancestors = state.Ancestors[:n-1]
	} else {
		top = Ancestor{Path: filepath.Dir(current)}
	}

	left := filepath.Base(current)
	state.CurrentPath = top.Path
	r.loadContent(state)
	state.Cursor = top.Cursor
	state.ViewportStart = top.ViewportStart

	// The saved cursor may be stale (seeded as zero at startup), so locate
	// the directory we just left.
	for i, name := range state.Content {
		if name == left {
			state.centerOn(i)
			return
		}
	}
	state.clampCursor()
}
