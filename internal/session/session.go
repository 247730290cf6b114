// Package session is the root state holder for one explorer client: current
// selection, active tab, filter, and the conversation thread.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/longevitylab/gerograph/internal/chat"
	"github.com/longevitylab/gerograph/internal/graph"
)

var ErrNotFound = errors.New("session: not found")

type Tab string

const (
	TabGraph Tab = "graph"
	TabChat  Tab = "chat"
)

// State is a read-only snapshot of a session.
type State struct {
	ID             string       `json:"id"`
	SelectedNodeID string       `json:"selected_node_id,omitempty"`
	SelectedGapID  string       `json:"selected_gap_id,omitempty"`
	ActiveTab      Tab          `json:"active_tab"`
	Filter         graph.Filter `json:"filter"`
}

// Session owns cross-component state. At most one of node/gap is selected;
// selecting either clears the other and switches the active tab to chat.
type Session struct {
	mu             sync.Mutex
	id             string
	selectedNodeID string
	selectedGapID  string
	activeTab      Tab
	filter         graph.Filter

	Thread *chat.Thread
}

func (s *Session) ID() string { return s.id }

func (s *Session) SelectNode(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedNodeID = nodeID
	s.selectedGapID = ""
	s.activeTab = TabChat
}

func (s *Session) SelectGap(gapID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedGapID = gapID
	s.selectedNodeID = ""
	s.activeTab = TabChat
}

func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedNodeID = ""
	s.selectedGapID = ""
}

func (s *Session) SetFilter(f graph.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f.Normalize()
}

func (s *Session) SetActiveTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:             s.id,
		SelectedNodeID: s.selectedNodeID,
		SelectedGapID:  s.selectedGapID,
		ActiveTab:      s.activeTab,
		Filter:         s.filter,
	}
}

// Store tracks live sessions. Threads are created through the injected
// factory so the store stays ignorant of assistant wiring.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	newThread func() *chat.Thread

	// Overridable for deterministic tests.
	NewID func() string
}

func NewStore(newThread func() *chat.Thread) *Store {
	return &Store{
		sessions:  make(map[string]*Session),
		newThread: newThread,
		NewID:     func() string { return uuid.New().String() },
	}
}

func (st *Store) Create() *Session {
	s := &Session{
		id:        st.NewID(),
		activeTab: TabGraph,
		filter:    graph.DefaultFilter(),
		Thread:    st.newThread(),
	}
	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete tears a session down, cancelling any pending reply.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.Thread.Close()
	return nil
}
