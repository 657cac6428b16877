package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/footyguess/gameserver/broadcast"
	"github.com/footyguess/gameserver/catalog"
	"github.com/footyguess/gameserver/config"
	"github.com/footyguess/gameserver/game"
	"github.com/footyguess/gameserver/logger"
	"github.com/footyguess/gameserver/models"
	"github.com/footyguess/gameserver/monitor"
	"github.com/footyguess/gameserver/network"
	"github.com/footyguess/gameserver/persistence"
	"github.com/footyguess/gameserver/room"
	gameserverrpc "github.com/footyguess/gameserver/rpc"
	"github.com/footyguess/gameserver/services"
	"github.com/footyguess/gameserver/session"
	"github.com/footyguess/gameserver/timer"
)

// disconnectGrace is how long a vanished player may reconnect before
// their multiplayer game is forfeited.
const disconnectGrace = 30 * time.Second

const aiDisplayName = "The Gaffer"

type GameServer struct {
	cfg      *config.Config
	upgrader websocket.Upgrader

	rooms       *room.Store
	sessions    *session.Manager
	engine      *game.Engine
	ai          *game.AIPlayer
	footballers *catalog.Footballers
	questions   *catalog.Questions
	store       persistence.Store
	stats       *services.StatsService
	broadcaster broadcast.Broadcaster
	mon         *monitor.Monitor
	timers      *timer.Manager
	rpcServer   *gameserverrpc.Server

	// turnTimers maps room ID to the pending turn-deadline task.
	turnTimers map[string]int64
	timerMutex sync.Mutex

	shutdownChan chan struct{}
}

func NewGameServer(cfg *config.Config, store persistence.Store, footballers *catalog.Footballers, questions *catalog.Questions) *GameServer {
	s := &GameServer{
		cfg:          cfg,
		rooms:        room.NewStore(),
		sessions:     session.NewManager(),
		engine:       game.NewEngine(footballers, questions),
		ai:           game.NewAIPlayer(footballers, questions),
		footballers:  footballers,
		questions:    questions,
		store:        store,
		stats:        services.NewStatsService(store),
		mon:          monitor.NewMonitor("footyguess"),
		timers:       timer.NewManager(),
		turnTimers:   make(map[string]int64),
		shutdownChan: make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // the browser frontend runs on its own origin
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.sessions)

	rpcServer, err := gameserverrpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	gameserverrpc.Register(gameserverrpc.NewStatsRPC(s.stats))

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	s.mon.StartServer(s.cfg.Server.MetricsAddress)

	// Reap rooms nobody has touched within the TTL.
	ttl := time.Duration(s.cfg.Game.RoomTTLMin) * time.Minute
	if ttl > 0 {
		s.timers.Schedule(time.Minute, time.Minute, func() { s.reapIdleRooms(ttl) })
	}

	logger.Log.Infof("Game server listening on %s", s.cfg.Server.HTTPAddress)
	return http.ListenAndServe(s.cfg.Server.HTTPAddress, s.routes())
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
	s.timers.Stop()
}

func (s *GameServer) reapIdleRooms(ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)
	for _, r := range s.rooms.ListIdleSince(cutoff) {
		logger.Log.Infof("Reaping idle room %s (code %s, state %s)", r.ID, r.RoomCode, r.State)
		s.rooms.Remove(r.ID)
		if err := s.store.DeleteRoomSnapshot(r.ID); err != nil {
			logger.Log.Warnf("Failed to delete snapshot for room %s: %v", r.ID, err)
		}
	}
	s.mon.SetActiveRooms(len(s.rooms.ListActive()))
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessions.Add(sess)
	s.mon.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessions.Remove(sess.GetID())
		s.mon.DecOnlinePlayers()
		s.handleDisconnect(sess)
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

// handleDisconnect gives the player a grace window to reconnect before
// their active multiplayer game is forfeited. Single-player rooms are
// torn down immediately; the AI does not wait around.
func (s *GameServer) handleDisconnect(sess *session.Session) {
	roomID := sess.CurrentRoom()
	playerID, _ := sess.Player()
	if roomID == "" || playerID == "" {
		return
	}

	r, ok := s.rooms.Get(roomID)
	if !ok {
		return
	}

	if r.Mode == models.ModeSinglePlayer {
		s.rooms.Remove(roomID)
		return
	}

	s.timers.Schedule(disconnectGrace, 0, func() {
		for _, other := range s.sessions.GetByPlayerID(playerID) {
			if other.CurrentRoom() == roomID {
				return // reconnected
			}
		}
		cur, ok := s.rooms.Get(roomID)
		if !ok || cur.State == models.StateFinished {
			return
		}
		logger.Log.Infof("Player %s abandoned room %s, forfeiting", playerID, roomID)
		s.applyAction(roomID, game.Forfeit{PlayerID: playerID, Reason: "disconnect"}, nil)
	})
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.Touch()
	case network.MsgTypeCreateRoom:
		s.handleCreateRoom(sess, packet)
	case network.MsgTypeJoinRoom:
		s.handleJoinRoom(sess, packet)
	case network.MsgTypeLeaveRoom:
		s.handleLeaveRoom(sess)
	case network.MsgTypeSelectSecret:
		s.handleGameAction(sess, packet)
	case network.MsgTypeAskQuestion:
		s.handleGameAction(sess, packet)
	case network.MsgTypeAnswerQuestion:
		s.handleGameAction(sess, packet)
	case network.MsgTypeMakeGuess:
		s.handleGameAction(sess, packet)
	case network.MsgTypeRequestRematch:
		s.handleGameAction(sess, packet)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}
}

type createRoomRequest struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Mode        string `json:"mode"`
}

func (s *GameServer) handleCreateRoom(sess *session.Session, packet *network.Packet) {
	var req createRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, "INVALID_PAYLOAD", "malformed create room request")
		return
	}

	r, err := s.createRoom(req)
	if err != nil {
		s.sendError(sess, "CREATE_FAILED", err.Error())
		return
	}

	sess.BindPlayer(req.PlayerID, req.DisplayName)
	sess.BindRoom(r.ID)

	data, _ := json.Marshal(r)
	sess.Send(network.MsgTypeRoomUpdated, data)
}

// createRoom draws a fresh candidate pool and opens a WAITING room. In
// single-player mode the AI joins on the spot, which walks the room
// straight into SELECTING.
func (s *GameServer) createRoom(req createRoomRequest) (*models.Room, error) {
	if req.PlayerID == "" {
		return nil, errors.New("player_id is required")
	}

	mode := models.ModeMultiPlayer
	if req.Mode == string(models.ModeSinglePlayer) {
		mode = models.ModeSinglePlayer
	}

	pool, err := s.footballers.GetRandom(s.cfg.Game.PoolSize)
	if err != nil {
		return nil, err
	}
	poolIDs := make([]string, 0, len(pool))
	for _, f := range pool {
		poolIDs = append(poolIDs, f.ID)
	}

	settings := models.Settings{
		TurnTimeLimit:        time.Duration(s.cfg.Game.TurnTimeLimitSec) * time.Second,
		MaxGuesses:           s.cfg.Game.MaxGuesses,
		AutoWinByElimination: s.cfg.Game.AutoWinByElimination,
	}

	creator := models.NewPlayerSession(req.PlayerID, req.DisplayName, true, settings.MaxGuesses)
	r := s.rooms.New(mode, settings, poolIDs, creator)
	s.mon.SetActiveRooms(len(s.rooms.ListActive()))

	logger.Log.Infof("Player %s created %s room %s (code %s)", req.PlayerID, mode, r.ID, r.RoomCode)

	if mode == models.ModeSinglePlayer {
		if err := s.applyAction(r.ID, game.Join{
			PlayerID:    uuid.New().String(),
			DisplayName: aiDisplayName,
			IsHuman:     false,
		}, nil); err != nil {
			s.rooms.Remove(r.ID)
			return nil, err
		}
	}

	current, _ := s.rooms.Get(r.ID)
	return current, nil
}

type joinRoomRequest struct {
	RoomCode    string `json:"room_code"`
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
}

func (s *GameServer) handleJoinRoom(sess *session.Session, packet *network.Packet) {
	var req joinRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, "INVALID_PAYLOAD", "malformed join request")
		return
	}

	r, ok := s.rooms.GetByCode(req.RoomCode)
	if !ok {
		s.sendError(sess, string(game.CodeNotFound), "no room with that code")
		return
	}

	sess.BindPlayer(req.PlayerID, req.DisplayName)

	// Rejoining an existing seat just rebinds the connection.
	if r.Player(req.PlayerID) != nil {
		sess.BindRoom(r.ID)
		data, _ := json.Marshal(r)
		sess.Send(network.MsgTypeRoomUpdated, data)
		return
	}

	if err := s.applyAction(r.ID, game.Join{
		PlayerID:    req.PlayerID,
		DisplayName: req.DisplayName,
		IsHuman:     true,
	}, sess); err != nil {
		return
	}
	sess.BindRoom(r.ID)
}

func (s *GameServer) handleLeaveRoom(sess *session.Session) {
	roomID := sess.CurrentRoom()
	playerID, _ := sess.Player()
	if roomID == "" {
		return
	}
	sess.BindRoom("")

	r, ok := s.rooms.Get(roomID)
	if !ok {
		return
	}
	if r.State == models.StateInProgress || r.State == models.StateSelecting {
		s.applyAction(roomID, game.Forfeit{PlayerID: playerID, Reason: "left"}, nil)
	}
}

type gameActionRequest struct {
	EntityID     string `json:"entity_id,omitempty"`
	QuestionID   string `json:"question_id,omitempty"`
	Answer       bool   `json:"answer,omitempty"`
	WantsRematch bool   `json:"wants_rematch,omitempty"`
}

func (s *GameServer) handleGameAction(sess *session.Session, packet *network.Packet) {
	roomID := sess.CurrentRoom()
	playerID, _ := sess.Player()
	if roomID == "" || playerID == "" {
		s.sendError(sess, string(game.CodeInvalidAction), "join a room first")
		return
	}

	var req gameActionRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, "INVALID_PAYLOAD", "malformed action payload")
		return
	}

	var act game.Action
	switch packet.MsgID {
	case network.MsgTypeSelectSecret:
		act = game.SelectSecret{PlayerID: playerID, EntityID: req.EntityID}
	case network.MsgTypeAskQuestion:
		act = game.AskQuestion{PlayerID: playerID, QuestionID: req.QuestionID}
	case network.MsgTypeAnswerQuestion:
		act = game.AnswerQuestion{PlayerID: playerID, Answer: req.Answer}
	case network.MsgTypeMakeGuess:
		act = game.MakeGuess{PlayerID: playerID, EntityID: req.EntityID}
	case network.MsgTypeRequestRematch:
		act = game.RequestRematch{PlayerID: playerID, WantsRematch: req.WantsRematch}
	default:
		s.sendError(sess, string(game.CodeInvalidAction), "unsupported action")
		return
	}

	s.applyAction(roomID, act, sess)
}

func (s *GameServer) sendError(sess *session.Session, code, message string) {
	data, _ := json.Marshal(map[string]string{"code": code, "message": message})
	sess.Send(network.MsgTypeError, data)
}
