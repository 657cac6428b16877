package session

import (
	"net"
	"testing"
	"time"

	"github.com/footyguess/gameserver/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	sent []uint16
}

func (m *MockConnection) Send(msgID uint16, data []byte) error {
	m.sent = append(m.sent, msgID)
	return nil
}
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func TestSession_BindPlayerAndRoom(t *testing.T) {
	s := NewSession("sess1", &MockConnection{})

	s.BindPlayer("alice", "Alice")
	id, name := s.Player()
	if id != "alice" || name != "Alice" {
		t.Errorf("Expected alice/Alice, got %s/%s", id, name)
	}

	s.BindRoom("room1")
	if s.CurrentRoom() != "room1" {
		t.Errorf("Expected room1, got %s", s.CurrentRoom())
	}

	s.BindRoom("")
	if s.CurrentRoom() != "" {
		t.Error("Empty BindRoom should detach the session")
	}
}

func TestSession_SendTouchesActivity(t *testing.T) {
	conn := &MockConnection{}
	s := NewSession("sess1", conn)
	before := s.LastActive

	time.Sleep(5 * time.Millisecond)
	if err := s.Send(301, []byte(`{}`)); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if !s.LastActive.After(before) {
		t.Error("Send should refresh LastActive")
	}
	if len(conn.sent) != 1 || conn.sent[0] != 301 {
		t.Errorf("Expected one message with ID 301, got %v", conn.sent)
	}
}

func TestManager_AddGetRemove(t *testing.T) {
	m := NewManager()
	s := NewSession("sess1", &MockConnection{})

	m.Add(s)
	if m.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Count())
	}

	got, exists := m.Get("sess1")
	if !exists || got != s {
		t.Error("Get should return the added session")
	}

	m.Remove("sess1")
	if _, exists := m.Get("sess1"); exists {
		t.Error("Removed session should be gone")
	}
}

func TestManager_GetByRoomID(t *testing.T) {
	m := NewManager()

	inRoom := NewSession("sess1", &MockConnection{})
	inRoom.BindRoom("room1")
	other := NewSession("sess2", &MockConnection{})
	other.BindRoom("room2")
	unbound := NewSession("sess3", &MockConnection{})

	m.Add(inRoom)
	m.Add(other)
	m.Add(unbound)

	got := m.GetByRoomID("room1")
	if len(got) != 1 || got[0].GetID() != "sess1" {
		t.Errorf("Expected only sess1 in room1, got %d sessions", len(got))
	}
}

func TestManager_GetByPlayerID(t *testing.T) {
	m := NewManager()

	first := NewSession("sess1", &MockConnection{})
	first.BindPlayer("alice", "Alice")
	second := NewSession("sess2", &MockConnection{})
	second.BindPlayer("alice", "Alice")

	m.Add(first)
	m.Add(second)

	if got := m.GetByPlayerID("alice"); len(got) != 2 {
		t.Errorf("Expected both of alice's sessions, got %d", len(got))
	}
	if got := m.GetByPlayerID("bob"); len(got) != 0 {
		t.Errorf("Expected no sessions for bob, got %d", len(got))
	}
}
