package broadcast

import (
	"encoding/json"

	"github.com/footyguess/gameserver/game"
	"github.com/footyguess/gameserver/logger"
	"github.com/footyguess/gameserver/network"
	"github.com/footyguess/gameserver/session"
)

// Broadcaster is the notification bus the game loop emits events to.
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgID uint16, data []byte) error
	DispatchEvents(roomID string, events []game.Event)
}

// RoomBroadcaster fans messages out to every session bound to a room.
type RoomBroadcaster struct {
	sessions *session.Manager
}

func NewRoomBroadcaster(sessions *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{sessions: sessions}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomID string, msgID uint16, data []byte) error {
	for _, s := range b.sessions.GetByRoomID(roomID) {
		if err := s.Send(msgID, data); err != nil {
			// A dead connection is the reader loop's problem; keep
			// delivering to the rest of the room.
			continue
		}
	}
	return nil
}

// DispatchEvents maps engine events onto wire messages and broadcasts
// them in order.
func (b *RoomBroadcaster) DispatchEvents(roomID string, events []game.Event) {
	for _, ev := range events {
		msgID, payload, err := encodeEvent(ev)
		if err != nil {
			logger.Log.Errorf("Failed to encode event for room %s: %v", roomID, err)
			continue
		}
		if err := b.BroadcastToRoom(roomID, msgID, payload); err != nil {
			logger.Log.Errorf("Broadcast to room %s failed: %v", roomID, err)
		}
	}
}

func encodeEvent(ev game.Event) (uint16, []byte, error) {
	switch e := ev.(type) {
	case game.RoomUpdated:
		data, err := json.Marshal(e.Room)
		return network.MsgTypeRoomUpdated, data, err
	case game.TurnChanged:
		data, err := json.Marshal(map[string]string{"player_id": e.PlayerID})
		return network.MsgTypeTurnChanged, data, err
	case game.CardsEliminated:
		data, err := json.Marshal(map[string]interface{}{
			"player_id":      e.PlayerID,
			"eliminated_ids": e.EliminatedIDs,
		})
		return network.MsgTypeCardsEliminated, data, err
	case game.GameOver:
		data, err := json.Marshal(map[string]string{
			"winner_id": e.WinnerID,
			"reason":    e.Reason,
		})
		return network.MsgTypeGameOver, data, err
	case game.RematchStarted:
		data, err := json.Marshal(e.Room)
		return network.MsgTypeRematchStarted, data, err
	}
	data, err := json.Marshal(ev)
	return network.MsgTypeRoomUpdated, data, err
}
