package wm

import (
	"slices"

	"github.com/ItsNotGoodName/xtagwm/internal/layout"
)

// Workspace is one tag. The head of Clients is the master.
type Workspace struct {
	Name       string
	Clients    []Client
	Layout     layout.Kind
	PrevLayout layout.Kind
	Mfact      float64
	Nmaster    int
	ShowBar    bool
	TopBar     bool
	BarY       int
}

func (ws *Workspace) index(win Window) int {
	return slices.IndexFunc(ws.Clients, func(c Client) bool { return c.Window == win })
}

func (ws *Workspace) push(c Client) {
	ws.Clients = slices.Insert(ws.Clients, 0, c)
}

func (ws *Workspace) remove(i int) Client {
	c := ws.Clients[i]
	ws.Clients = slices.Delete(ws.Clients, i, i+1)
	return c
}

// State is everything the window manager knows. Tags are numbered from 1.
type State struct {
	Workspaces  []Workspace
	Selected    int
	Previous    int
	Running     bool
	StatusText  string
	NumlockMask uint16
	SW          int
	SH          int
	BH          int
	BarWindow   Window
	Root        Window
}

func (s *State) TagCount() int {
	return len(s.Workspaces)
}

func (s *State) ValidTag(tag int) bool {
	return tag >= 1 && tag <= len(s.Workspaces)
}

// Workspace returns the workspace for tag. Tag must be valid.
func (s *State) Workspace(tag int) *Workspace {
	return &s.Workspaces[tag-1]
}

func (s *State) Current() *Workspace {
	return s.Workspace(s.Selected)
}

// Find returns the tag and list position holding win.
func (s *State) Find(win Window) (tag int, index int, ok bool) {
	for i := range s.Workspaces {
		if idx := s.Workspaces[i].index(win); idx != -1 {
			return i + 1, idx, true
		}
	}
	return 0, -1, false
}

// Client returns the managed client for win.
func (s *State) Client(win Window) (*Client, bool) {
	tag, idx, ok := s.Find(win)
	if !ok {
		return nil, false
	}
	return &s.Workspace(tag).Clients[idx], true
}

// Windows lists every managed window in workspace then list order.
func (s *State) Windows() []Window {
	var wins []Window
	for i := range s.Workspaces {
		for _, c := range s.Workspaces[i].Clients {
			wins = append(wins, c.Window)
		}
	}
	return wins
}

// Occupied reports whether tag holds any client.
func (s *State) Occupied(tag int) bool {
	return len(s.Workspace(tag).Clients) > 0
}

// Urgent reports whether tag holds an urgent client.
func (s *State) Urgent(tag int) bool {
	return slices.ContainsFunc(s.Workspace(tag).Clients, func(c Client) bool { return c.Urgent })
}
