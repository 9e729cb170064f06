package wm

type barCells struct {
	tags   []int // right edge of each tag label
	symbol int   // right edge of the layout symbol
	status int   // left edge of the status text
}

func (m *Manager) lrpad() int {
	return m.surface.FontHeight()
}

func (m *Manager) textWidth(text string) int {
	return m.surface.TextWidth(text) + m.lrpad()
}

func (m *Manager) statusWidth() int {
	if !m.state.Current().ShowBar {
		return 0
	}
	return m.surface.TextWidth(m.state.StatusText) + 2
}

func (m *Manager) barCells() barCells {
	var cells barCells
	x := 0
	for _, ws := range m.state.Workspaces {
		x += m.textWidth(ws.Name)
		cells.tags = append(cells.tags, x)
	}
	cells.symbol = x + m.textWidth(m.state.Current().Layout.Symbol())
	cells.status = m.state.SW - m.statusWidth()
	return cells
}

// drawBar renders tags, layout symbol, master title and status text.
func (m *Manager) drawBar() {
	if m.surface == nil {
		return
	}

	s := m.surface
	bh := m.state.BH
	ws := m.state.Current()
	cells := m.barCells()

	boxs := s.FontHeight() / 9
	boxw := s.FontHeight()/6 + 2

	tw := m.statusWidth()
	if tw > 0 {
		s.SetScheme(SchemeNorm)
		s.Text(m.state.SW-tw, 0, tw, bh, 0, m.state.StatusText, false)
	}

	x := 0
	for i, w := range m.state.Workspaces {
		tag := i + 1
		right := cells.tags[i]
		scheme := SchemeNorm
		if tag == m.state.Selected {
			scheme = SchemeSel
		}
		urgent := m.state.Urgent(tag)

		s.SetScheme(scheme)
		s.Text(x, 0, right-x, bh, m.lrpad()/2, w.Name, urgent)
		if m.state.Occupied(tag) {
			s.Rect(x+boxs, boxs, boxw, boxw, tag == m.state.Selected, urgent)
		}
		x = right
	}

	s.SetScheme(SchemeNorm)
	x = s.Text(x, 0, cells.symbol-x, bh, m.lrpad()/2, ws.Layout.Symbol(), false)

	if w := m.state.SW - tw - x; w > bh {
		if len(ws.Clients) > 0 {
			head := ws.Clients[0]
			s.SetScheme(SchemeSel)
			s.Text(x, 0, w, bh, m.lrpad()/2, head.Name, false)
			if head.Floating {
				s.Rect(x+boxs, boxs, boxw, boxw, head.Fixed, false)
			}
		} else {
			s.SetScheme(SchemeNorm)
			s.Rect(x, 0, w, bh, true, true)
		}
	}

	s.Flush(0, 0, m.state.SW, bh)
}
