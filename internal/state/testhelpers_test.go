package state

import (
	"errors"
	"fmt"
	"testing"
)

// fakeReader serves an in-memory tree. Every key of dirs is a directory.
type fakeReader struct {
	dirs map[string][]string
	errs map[string]error
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		dirs: make(map[string][]string),
		errs: make(map[string]error),
	}
}

func (f *fakeReader) addDir(path string, names ...string) *fakeReader {
	f.dirs[path] = names
	return f
}

func (f *fakeReader) failDir(path string) *fakeReader {
	f.dirs[path] = nil
	f.errs[path] = errors.New("permission denied")
	return f
}

func (f *fakeReader) ReadNames(path string) ([]string, error) {
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	names, ok := f.dirs[path]
	if !ok {
		return nil, fmt.Errorf("%s: not a directory", path)
	}
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

func (f *fakeReader) IsDir(path string) bool {
	_, ok := f.dirs[path]
	return ok
}

func names(prefix string, count int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = fmt.Sprintf("%s%03d", prefix, i)
	}
	return out
}

func newListingState(content []string, height int) *AppState {
	return &AppState{
		CurrentPath:  "/test",
		OriginalPath: "/test",
		Content:      content,
		ScreenWidth:  80,
		ScreenHeight: height,
	}
}

func mustReduce(t *testing.T, reducer *StateReducer, state *AppState, actions ...Action) {
	t.Helper()
	for _, action := range actions {
		if _, err := reducer.Reduce(state, action); err != nil {
			t.Fatalf("Reduce(%T) failed: %v", action, err)
		}
	}
}

func typeQuery(t *testing.T, reducer *StateReducer, state *AppState, query string) {
	t.Helper()
	for _, r := range query {
		mustReduce(t, reducer, state, SearchCharAction{Char: r})
	}
}
