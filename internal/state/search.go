package state

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// matchNothing stands in for a pattern that does not compile yet.
var matchNothing = regexp.MustCompile(`[^\x00-\x{10FFFF}]`)

// CompilePattern builds the matcher for a search buffer. Matching is case
// insensitive unless the buffer ends in an unescaped `\C`, which is
// stripped. A `\C` is unescaped when the run of backslashes directly before
// the C has odd length. Buffers that are not valid expressions match
// nothing.
func CompilePattern(buffer []rune) (re *regexp.Regexp, caseSensitive bool) {
	pattern := string(buffer)
	if n := len(buffer); n >= 2 && buffer[n-1] == 'C' {
		run := 0
		for i := n - 2; i >= 0 && buffer[i] == '\\'; i-- {
			run++
		}
		if run%2 == 1 {
			pattern = string(buffer[:n-2])
			caseSensitive = true
		}
	}
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return matchNothing, caseSensitive
	}
	return compiled, caseSensitive
}

// scan looks for the first entry matching re, starting at start and
// wrapping once around the listing. Entries are matched in composed form.
// It returns -1 when nothing matches.
func scan(content []string, re *regexp.Regexp, start int, forward bool) int {
	n := len(content)
	if n == 0 {
		return -1
	}
	if start < 0 {
		start = 0
	}
	if start >= n {
		start = n - 1
	}
	for k := 0; k < n; k++ {
		var i int
		if forward {
			i = (start + k) % n
		} else {
			i = (start - k + n) % n
		}
		if re.MatchString(norm.NFC.String(content[i])) {
			return i
		}
	}
	return -1
}

// jumpToMatch centers the cursor on the first match from start. The cursor
// is left alone when nothing matches.
func (s *AppState) jumpToMatch(buffer []rune, start int, forward bool) bool {
	re, _ := CompilePattern(buffer)
	idx := scan(s.Content, re, start, forward)
	if idx < 0 {
		return false
	}
	s.centerOn(idx)
	return true
}

// incrementalMatch re-runs the live buffer from the cursor, inclusive.
func (s *AppState) incrementalMatch() {
	if len(s.SearchBuffer) == 0 {
		return
	}
	s.jumpToMatch(s.SearchBuffer, s.Cursor, s.Mode != ModeReverseSearch)
}

// findNext repeats the last committed query from the entry after (or
// before) the cursor. Reverse searches invert the direction.
func (s *AppState) findNext(previous bool) {
	n := len(s.Content)
	if s.LastQuery == "" || n == 0 {
		return
	}
	forward := !previous
	if s.LastSearchMode == ModeReverseSearch {
		forward = !forward
	}
	start := (s.Cursor + 1) % n
	if !forward {
		start = (s.Cursor - 1 + n) % n
	}
	s.jumpToMatch([]rune(s.LastQuery), start, forward)
}

// ===== SEARCH BUFFER EDITING =====

func (s *AppState) startSearch(reverse bool) {
	s.Mode = ModeSearch
	if reverse {
		s.Mode = ModeReverseSearch
	}
	s.SearchBuffer = nil
	s.EditCursor = 0
	s.HistoryIndex = len(s.SearchHistory)
}

func (s *AppState) insertRunes(runes []rune) {
	if len(runes) == 0 {
		return
	}
	pos := s.EditCursor
	if pos < 0 || pos > len(s.SearchBuffer) {
		pos = len(s.SearchBuffer)
	}
	buf := make([]rune, 0, len(s.SearchBuffer)+len(runes))
	buf = append(buf, s.SearchBuffer[:pos]...)
	buf = append(buf, runes...)
	buf = append(buf, s.SearchBuffer[pos:]...)
	s.SearchBuffer = buf
	s.EditCursor = pos + len(runes)
}

func (s *AppState) backspace() bool {
	if s.EditCursor <= 0 || len(s.SearchBuffer) == 0 {
		return false
	}
	pos := s.EditCursor
	if pos > len(s.SearchBuffer) {
		pos = len(s.SearchBuffer)
	}
	s.SearchBuffer = append(s.SearchBuffer[:pos-1], s.SearchBuffer[pos:]...)
	s.EditCursor = pos - 1
	return true
}

func (s *AppState) moveEditCursor(direction string) {
	switch direction {
	case "left":
		if s.EditCursor > 0 {
			s.EditCursor--
		}
	case "right":
		if s.EditCursor < len(s.SearchBuffer) {
			s.EditCursor++
		}
	case "home":
		s.EditCursor = 0
	case "end":
		s.EditCursor = len(s.SearchBuffer)
	}
}

func (s *AppState) browsingHistory() bool {
	return s.HistoryIndex < len(s.SearchHistory)
}

// historyStep pages through SearchHistory. Browsing only starts from an
// empty live buffer; Down past the newest entry returns to an empty live
// buffer. It reports whether the buffer was replaced.
func (s *AppState) historyStep(direction string) bool {
	atLiveEdge := len(s.SearchBuffer) == 0 && s.HistoryIndex >= len(s.SearchHistory)
	if !atLiveEdge && !s.browsingHistory() {
		return false
	}
	switch direction {
	case "up":
		if s.HistoryIndex == 0 {
			return false
		}
		s.HistoryIndex--
	case "down":
		if !s.browsingHistory() {
			return false
		}
		s.HistoryIndex++
	default:
		return false
	}
	if s.HistoryIndex >= len(s.SearchHistory) {
		s.HistoryIndex = len(s.SearchHistory)
		s.SearchBuffer = nil
		s.EditCursor = 0
		return true
	}
	s.SearchBuffer = []rune(s.SearchHistory[s.HistoryIndex])
	s.EditCursor = len(s.SearchBuffer)
	return true
}

// commitSearch records the buffer in history and makes it the query n/N
// repeat. An empty buffer is not recorded.
func (s *AppState) commitSearch() {
	text := string(s.SearchBuffer)
	if text != "" {
		if s.browsingHistory() && s.SearchHistory[s.HistoryIndex] == text {
			s.SearchHistory = append(s.SearchHistory[:s.HistoryIndex], s.SearchHistory[s.HistoryIndex+1:]...)
		}
		if len(s.SearchHistory) >= HistoryCapacity {
			drop := len(s.SearchHistory) - HistoryCapacity + 1
			s.SearchHistory = append(s.SearchHistory[:0], s.SearchHistory[drop:]...)
		}
		s.SearchHistory = append(s.SearchHistory, text)
		s.LastQuery = text
		s.LastSearchMode = s.Mode
	}
	s.leaveSearch()
}

func (s *AppState) leaveSearch() {
	s.Mode = ModeNormal
	s.SearchBuffer = nil
	s.EditCursor = 0
	s.HistoryIndex = len(s.SearchHistory)
}
