package broadcast

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/footyguess/gameserver/game"
	"github.com/footyguess/gameserver/logger"
	"github.com/footyguess/gameserver/models"
	"github.com/footyguess/gameserver/network"
	"github.com/footyguess/gameserver/session"
)

func init() {
	logger.Init(true)
}

// MockConnection records every message sent through it.
type MockConnection struct {
	mutex sync.Mutex
	sent  []uint16
}

func (m *MockConnection) Send(msgID uint16, data []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sent = append(m.sent, msgID)
	return nil
}
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func (m *MockConnection) Sent() []uint16 {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]uint16(nil), m.sent...)
}

func roomSession(m *session.Manager, id, roomID string) *MockConnection {
	conn := &MockConnection{}
	s := session.NewSession(id, conn)
	s.BindRoom(roomID)
	m.Add(s)
	return conn
}

func TestBroadcastToRoom_OnlyReachesBoundSessions(t *testing.T) {
	sessions := session.NewManager()
	inRoom := roomSession(sessions, "sess1", "room1")
	elsewhere := roomSession(sessions, "sess2", "room2")

	b := NewRoomBroadcaster(sessions)
	if err := b.BroadcastToRoom("room1", network.MsgTypeRoomUpdated, []byte(`{}`)); err != nil {
		t.Fatalf("BroadcastToRoom failed: %v", err)
	}

	if got := inRoom.Sent(); len(got) != 1 || got[0] != network.MsgTypeRoomUpdated {
		t.Errorf("Expected one RoomUpdated for the bound session, got %v", got)
	}
	if got := elsewhere.Sent(); len(got) != 0 {
		t.Errorf("Session in another room received %v", got)
	}
}

func TestDispatchEvents_MapsAndOrders(t *testing.T) {
	sessions := session.NewManager()
	conn := roomSession(sessions, "sess1", "room1")

	b := NewRoomBroadcaster(sessions)
	r := &models.Room{ID: "room1", State: models.StateFinished}
	b.DispatchEvents("room1", []game.Event{
		game.CardsEliminated{PlayerID: "alice", EliminatedIDs: []string{"f02"}},
		game.GameOver{WinnerID: "alice", Reason: game.ReasonGuess},
		game.RoomUpdated{Room: r},
	})

	want := []uint16{
		network.MsgTypeCardsEliminated,
		network.MsgTypeGameOver,
		network.MsgTypeRoomUpdated,
	}
	got := conn.Sent()
	if len(got) != len(want) {
		t.Fatalf("Expected %d messages, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Message %d: expected ID %d, got %d", i, want[i], got[i])
		}
	}
}
