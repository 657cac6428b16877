// The action pipeline: take the room's single-flight lock, run the
// engine, persist the result, then broadcast, drive the AI and manage
// timers outside the lock.
package server

import (
	"errors"
	"time"

	"github.com/footyguess/gameserver/game"
	"github.com/footyguess/gameserver/logger"
	"github.com/footyguess/gameserver/models"
	"github.com/footyguess/gameserver/room"
	"github.com/footyguess/gameserver/session"
)

func (s *GameServer) applyAction(roomID string, act game.Action, sess *session.Session) error {
	start := time.Now()

	var (
		events []game.Event
		next   *models.Room
	)
	err := s.rooms.WithRoom(roomID, func(r *models.Room) error {
		var applyErr error
		next, events, applyErr = s.engine.Apply(r, act)
		if applyErr != nil {
			return applyErr
		}
		s.rooms.Put(next)
		return nil
	})

	s.mon.ObserveActionLatency(time.Since(start))

	if err != nil {
		s.rejectAction(roomID, act, err, sess)
		return err
	}

	s.mon.ActionProcessed(act.Kind())
	s.afterApply(next, events)
	return nil
}

func (s *GameServer) rejectAction(roomID string, act game.Action, err error, sess *session.Session) {
	var gameErr *game.Error
	code := "INTERNAL"
	if errors.As(err, &gameErr) {
		code = string(gameErr.Code)
	} else if errors.Is(err, room.ErrRoomNotFound) {
		code = string(game.CodeNotFound)
	}
	s.mon.ActionRejected(code)
	logger.Log.Debugf("Rejected %s on room %s for %s: %v", act.Kind(), roomID, act.ActorID(), err)
	if sess != nil {
		s.sendError(sess, code, err.Error())
	}
}

// afterApply handles everything that follows a successful transition:
// rematch room swap, event fanout, archival, timers and the AI.
func (s *GameServer) afterApply(r *models.Room, events []game.Event) {
	// Fan out before any room swap so rematch notifications still reach
	// the sessions bound to the finished room.
	s.broadcaster.DispatchEvents(r.ID, events)

	for _, ev := range events {
		switch e := ev.(type) {
		case game.RematchStarted:
			s.startRematch(r, e.Room)
		case game.GameOver:
			s.finishGame(r, e)
		case game.TurnChanged:
			s.scheduleTurnDeadline(r, e.PlayerID)
		}
	}

	s.snapshot(r)
	s.mon.SetActiveRooms(len(s.rooms.ListActive()))
	s.driveAI(r.ID)
}

// startRematch registers the fresh room and moves every session from
// the finished one across, so the same socket keeps playing without a
// new join round-trip.
func (s *GameServer) startRematch(old *models.Room, fresh *models.Room) {
	s.rooms.Put(fresh)
	for _, sess := range s.sessions.GetByRoomID(old.ID) {
		sess.BindRoom(fresh.ID)
	}
	s.rooms.Remove(old.ID)
	logger.Log.Infof("Rematch: room %s replaced by %s (code %s)", old.ID, fresh.ID, fresh.RoomCode)
	s.snapshot(fresh)
}

func (s *GameServer) finishGame(r *models.Room, e game.GameOver) {
	s.cancelTurnDeadline(r.ID)
	s.mon.GameFinished(e.Reason)
	logger.Log.Infof("Room %s finished, winner %s (%s)", r.ID, e.WinnerID, e.Reason)

	go func() {
		if err := s.stats.RecordFinishedGame(r, e.Reason); err != nil {
			logger.Log.Errorf("Failed to archive game %s: %v", r.ID, err)
		}
	}()
}

// snapshot persists the room state off the action path. Snapshots are
// diagnostic, so failures only warn.
func (s *GameServer) snapshot(r *models.Room) {
	go func() {
		if err := s.store.SaveRoomSnapshot(r); err != nil {
			logger.Log.Warnf("Failed to snapshot room %s: %v", r.ID, err)
		}
	}()
}

// driveAI lets the machine participant act whenever the room is waiting
// on it: answering a pending human question, or taking its own turn.
// Applying the AI's action runs afterApply again, which re-drives until
// the room is waiting on the human. Every AI move strictly advances the
// turn state, so the chain always terminates.
func (s *GameServer) driveAI(roomID string) {
	r, ok := s.rooms.Get(roomID)
	if !ok || r.Mode != models.ModeSinglePlayer || r.State != models.StateInProgress {
		return
	}

	aiPlayer := aiSession(r)
	if aiPlayer == nil {
		return
	}

	// The human asked and the AI must answer truthfully.
	if r.PendingQuestionID != "" && r.CurrentTurnPlayerID != aiPlayer.ID {
		answer, err := s.ai.Answer(r, aiPlayer.ID)
		if err != nil {
			logger.Log.Errorf("AI failed to answer in room %s: %v", roomID, err)
			return
		}
		s.applyAction(roomID, game.AnswerQuestion{PlayerID: aiPlayer.ID, Answer: answer}, nil)
		return
	}

	// The AI holds the turn: ask or guess.
	if r.CurrentTurnPlayerID == aiPlayer.ID && r.PendingQuestionID == "" {
		act, err := s.ai.NextAction(r, aiPlayer.ID)
		if err != nil {
			logger.Log.Errorf("AI failed to pick a move in room %s: %v", roomID, err)
			return
		}
		s.applyAction(roomID, act, nil)
	}
}

func aiSession(r *models.Room) *models.PlayerSession {
	for _, p := range r.Players {
		if !p.IsHuman {
			return p
		}
	}
	return nil
}

// scheduleTurnDeadline forfeits a player who lets their turn clock run
// out. The check re-reads the room under its lock, so a move made just
// before the deadline wins the race.
func (s *GameServer) scheduleTurnDeadline(r *models.Room, playerID string) {
	limit := r.Settings.TurnTimeLimit
	if limit <= 0 {
		return
	}

	s.cancelTurnDeadline(r.ID)

	roomID := r.ID
	turnMark := len(r.TurnHistory)
	taskID := s.timers.Schedule(limit, 0, func() {
		cur, ok := s.rooms.Get(roomID)
		if !ok || cur.State != models.StateInProgress {
			return
		}
		if cur.CurrentTurnPlayerID != playerID || len(cur.TurnHistory) != turnMark {
			return
		}
		logger.Log.Infof("Player %s timed out in room %s", playerID, roomID)
		s.applyAction(roomID, game.Forfeit{PlayerID: playerID, Reason: "timeout"}, nil)
	})

	s.timerMutex.Lock()
	s.turnTimers[roomID] = taskID
	s.timerMutex.Unlock()
}

func (s *GameServer) cancelTurnDeadline(roomID string) {
	s.timerMutex.Lock()
	taskID, ok := s.turnTimers[roomID]
	if ok {
		delete(s.turnTimers, roomID)
	}
	s.timerMutex.Unlock()
	if ok {
		s.timers.Cancel(taskID)
	}
}
