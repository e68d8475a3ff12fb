package nav

import "sync"

// State is a snapshot of the sidebar.
type State struct {
	Current Page `json:"current"`
	Open    bool `json:"drawer_open"`
	Mobile  bool `json:"mobile"`
}

// Sidebar tracks the current page and the mobile navigation drawer. Drawer
// transitions are plain assignments: opening an open drawer is allowed.
type Sidebar struct {
	mu    sync.RWMutex
	state State
}

func NewSidebar() *Sidebar {
	return &Sidebar{state: State{Current: Dashboard}}
}

func (s *Sidebar) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Sidebar) Current() Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Current
}

// Select makes p the current page. On a mobile viewport the drawer closes.
func (s *Sidebar) Select(p Page) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Current = p
	if s.state.Mobile {
		s.state.Open = false
	}
	return s.state
}

func (s *Sidebar) Open() State   { return s.setOpen(true) }
func (s *Sidebar) Close() State  { return s.setOpen(false) }
func (s *Sidebar) Toggle() State { return s.update(func(st *State) { st.Open = !st.Open }) }

// SetMobile records the viewport class. Leaving the mobile layout closes the
// drawer.
func (s *Sidebar) SetMobile(mobile bool) State {
	return s.update(func(st *State) {
		st.Mobile = mobile
		if !mobile {
			st.Open = false
		}
	})
}

// Items lists the navigation entries with the current page marked.
func (s *Sidebar) Items() []Item {
	cur := s.Current()

	pages := Pages()
	out := make([]Item, 0, len(pages))
	for _, p := range pages {
		out = append(out, Item{Page: p, Active: p == cur})
	}
	return out
}

func (s *Sidebar) setOpen(open bool) State {
	return s.update(func(st *State) { st.Open = open })
}

func (s *Sidebar) update(fn func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	return s.state
}
