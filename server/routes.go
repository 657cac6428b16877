package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/footyguess/gameserver/game"
	"github.com/footyguess/gameserver/logger"
)

const qrSize = 256

func (s *GameServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)

	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", s.handleCreateRoomHTTP)
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", s.handleGetRoom)
			r.Post("/join", s.handleJoinRoomHTTP)
			r.Get("/qr", s.handleRoomQR)
		})
	})

	r.Get("/footballers", s.handleListFootballers)
	r.Get("/questions", s.handleListQuestions)

	return r
}

func (s *GameServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *GameServer) handleCreateRoomHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	created, err := s.createRoom(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *GameServer) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	rm, ok := s.rooms.GetByCode(code)
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, rm)
}

type joinRoomHTTPRequest struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
}

// handleJoinRoomHTTP reserves a seat over REST; the client then opens
// the socket and rebinds to the same player ID.
func (s *GameServer) handleJoinRoomHTTP(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	rm, ok := s.rooms.GetByCode(code)
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	var req joinRoomHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}

	act := game.Join{PlayerID: req.PlayerID, DisplayName: req.DisplayName, IsHuman: true}
	if err := s.applyAction(rm.ID, act, nil); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	joined, _ := s.rooms.Get(rm.ID)
	writeJSON(w, http.StatusOK, joined)
}

// handleRoomQR renders the join URL for a room as a PNG QR code.
func (s *GameServer) handleRoomQR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if _, ok := s.rooms.GetByCode(code); !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	url := fmt.Sprintf("%s/join/%s", s.cfg.Server.PublicURL, code)
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		logger.Log.Errorf("Failed to encode QR for room %s: %v", code, err)
		writeError(w, http.StatusInternalServerError, "qr encoding failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

func (s *GameServer) handleListFootballers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.footballers.GetAll())
}

func (s *GameServer) handleListQuestions(w http.ResponseWriter, _ *http.Request) {
	questions, err := s.questions.GetAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorf("Failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
