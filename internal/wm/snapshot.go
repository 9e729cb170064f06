package wm

// Snapshot is a copy of the state that can leave the event loop.
type Snapshot struct {
	Selected   int                 `json:"selected"`
	Previous   int                 `json:"previous"`
	Running    bool                `json:"running"`
	Status     string              `json:"status"`
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	Workspaces []WorkspaceSnapshot `json:"workspaces"`
}

type WorkspaceSnapshot struct {
	Tag     int              `json:"tag"`
	Name    string           `json:"name"`
	Layout  string           `json:"layout"`
	Symbol  string           `json:"symbol"`
	Mfact   float64          `json:"mfact"`
	Nmaster int              `json:"nmaster"`
	ShowBar bool             `json:"show_bar"`
	Clients []ClientSnapshot `json:"clients"`
}

type ClientSnapshot struct {
	Window     uint32 `json:"window"`
	Name       string `json:"name"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	W          int    `json:"w"`
	H          int    `json:"h"`
	BW         int    `json:"bw"`
	Floating   bool   `json:"floating"`
	Fullscreen bool   `json:"fullscreen"`
	Urgent     bool   `json:"urgent"`
}

func (m *Manager) Snapshot() Snapshot {
	snap := Snapshot{
		Selected:   m.state.Selected,
		Previous:   m.state.Previous,
		Running:    m.state.Running,
		Status:     m.state.StatusText,
		Width:      m.state.SW,
		Height:     m.state.SH,
		Workspaces: make([]WorkspaceSnapshot, 0, len(m.state.Workspaces)),
	}
	for i, ws := range m.state.Workspaces {
		wsSnap := WorkspaceSnapshot{
			Tag:     i + 1,
			Name:    ws.Name,
			Layout:  ws.Layout.String(),
			Symbol:  ws.Layout.Symbol(),
			Mfact:   ws.Mfact,
			Nmaster: ws.Nmaster,
			ShowBar: ws.ShowBar,
			Clients: make([]ClientSnapshot, 0, len(ws.Clients)),
		}
		for _, c := range ws.Clients {
			wsSnap.Clients = append(wsSnap.Clients, ClientSnapshot{
				Window:     uint32(c.Window),
				Name:       c.Name,
				X:          c.X,
				Y:          c.Y,
				W:          c.W,
				H:          c.H,
				BW:         c.BW,
				Floating:   c.Floating,
				Fullscreen: c.Fullscreen,
				Urgent:     c.Urgent,
			})
		}
		snap.Workspaces = append(snap.Workspaces, wsSnap)
	}
	return snap
}
