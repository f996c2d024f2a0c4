package http

import (
	"encoding/json"
	"log"
	"net/http"

	"adaptive-quiz/internal/domain"
	"adaptive-quiz/internal/engine"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	engine   *engine.Engine
	minSize  int
	maxSize  int
	upgrader websocket.Upgrader
}

func NewWSHandler(e *engine.Engine, minSize, maxSize int) *WSHandler {
	return &WSHandler{
		engine:  e,
		minSize: minSize,
		maxSize: maxSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Size    int    `json:"size"`
	Subject string `json:"subject"`
}

type answerPayload struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

type playerPayload struct {
	Name              string            `json:"name"`
	TotalScore        int               `json:"totalScore"`
	Round             int               `json:"round"`
	CurrentDifficulty domain.Difficulty `json:"currentDifficulty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type leaderboardPayload struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// ServeWS upgrades HTTP requests to websockets and drives one player's quiz
// session. Every inbound message re-renders the round from the slot arena, so
// option orders and selections stay put across interactions.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	player, err := h.engine.Login(name)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	send := func(msg outboundMessage[any]) bool {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("ws write error: %v", err)
			return false
		}
		return true
	}

	if !send(outboundMessage[any]{Type: "welcome", Payload: playerPayload{
		Name:              player.Name,
		TotalScore:        player.TotalScore,
		Round:             player.RoundNumber,
		CurrentDifficulty: player.CurrentDifficulty,
	}}) {
		return
	}
	send(outboundMessage[any]{Type: "leaderboard", Payload: leaderboardPayload{Entries: h.engine.Leaderboard()}})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid start payload"}})
				continue
			}
			if payload.Subject == "" {
				payload.Subject = domain.SubjectAny
			}
			view, err := h.engine.StartRound(r.Context(), name, h.clampSize(payload.Size), payload.Subject)
			if err != nil {
				send(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			if len(view.Questions) == 0 {
				send(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "no questions available"}})
				continue
			}
			send(outboundMessage[any]{Type: "round", Payload: view})
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				continue
			}
			view, err := h.engine.Answer(name, payload.Index, payload.Value)
			if err != nil {
				send(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			send(outboundMessage[any]{Type: "round", Payload: view})
		case "submit":
			result, err := h.engine.SubmitRound(name)
			if err != nil {
				send(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			send(outboundMessage[any]{Type: "results", Payload: result})
			send(outboundMessage[any]{Type: "leaderboard", Payload: leaderboardPayload{Entries: h.engine.Leaderboard()}})
		case "leaderboard":
			send(outboundMessage[any]{Type: "leaderboard", Payload: leaderboardPayload{Entries: h.engine.Leaderboard()}})
		default:
			send(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}
}

func (h *WSHandler) clampSize(size int) int {
	if size < h.minSize {
		return h.minSize
	}
	if size > h.maxSize {
		return h.maxSize
	}
	return size
}
