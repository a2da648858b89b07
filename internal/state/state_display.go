package state

// centerOn selects index and places it in the middle of the viewport.
func (s *AppState) centerOn(index int) {
	if len(s.Content) == 0 {
		s.Cursor = 0
		s.ViewportStart = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(s.Content) {
		index = len(s.Content) - 1
	}
	s.Cursor = index
	s.ViewportStart = index - s.VisibleHeight()/2
	if s.ViewportStart < 0 {
		s.ViewportStart = 0
	}
}

func (s *AppState) moveUp() {
	if len(s.Content) == 0 {
		return
	}
	if s.Cursor > 0 {
		s.Cursor--
	}
	if s.Cursor < s.ViewportStart {
		s.ViewportStart--
	}
}

func (s *AppState) moveDown() {
	if len(s.Content) == 0 {
		return
	}
	if s.Cursor < len(s.Content)-1 {
		s.Cursor++
	}
	if s.Cursor > s.ViewportStart+s.VisibleHeight()-1 {
		s.ViewportStart++
	}
}

func (s *AppState) pageBy(delta int) {
	if len(s.Content) == 0 {
		return
	}
	s.centerOn(s.Cursor + delta)
}

func (s *AppState) pageStep() int {
	step := s.VisibleHeight() / 2
	if step < 1 {
		step = 1
	}
	return step
}

// clampCursor pulls a stale cursor back into the listing and makes sure it
// is visible.
func (s *AppState) clampCursor() {
	if len(s.Content) == 0 {
		s.Cursor = 0
		s.ViewportStart = 0
		return
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= len(s.Content) {
		s.Cursor = len(s.Content) - 1
	}
	s.ensureVisible()
}

// ensureVisible recenters only when the cursor fell outside the viewport.
func (s *AppState) ensureVisible() {
	if s.ViewportStart < 0 || s.ViewportStart > s.Cursor || s.Cursor >= s.ViewportStart+s.VisibleHeight() {
		s.centerOn(s.Cursor)
	}
}
