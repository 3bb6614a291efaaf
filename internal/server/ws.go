package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"ThermalChase/internal/game"
	"ThermalChase/internal/protocol"

	"github.com/gorilla/websocket"
)

// DefaultRoomName is the single shared world all clients join-or-create into.
const DefaultRoomName = "world"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func serveWS(h *game.Hub, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	roomID := query.Get("room")
	if roomID == "" {
		roomID = DefaultRoomName
	}
	nickname := query.Get("nickname")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	room := h.GetRoom(roomID)
	sessionID := game.RandID("s")

	if _, err := room.Join(sessionID, nickname, time.Now().UnixMilli()); err != nil {
		_ = conn.WriteJSON(map[string]any{"type": protocol.TypeFull, "message": "room full"})
		conn.Close()
		return
	}

	welcome := welcomeMsg{
		Type: protocol.TypeWelcome,
		Payload: welcomePayload{
			SessionID:       sessionID,
			ProtocolVersion: protocol.Version,
			ServerTimeMs:    time.Now().UnixMilli(),
		},
	}
	if err := conn.WriteJSON(welcome); err != nil {
		room.Leave(sessionID, time.Now().UnixMilli())
		conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sendTick := time.NewTicker(game.PatchIntervalMs * time.Millisecond)

	// Reader: inbound messages are side-effect-only; malformed frames are
	// dropped without closing the session.
	go func() {
		defer cancel()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			env, err := protocol.DecodeEnvelope(data)
			if err != nil {
				continue
			}
			switch env.Type {
			case protocol.TypeJoin:
				join, err := protocol.DecodeJoin(env.Payload)
				if err != nil || join.Nickname == "" {
					// a join frame carrying no nickname must not clobber
					// the one set at session creation
					continue
				}
				room.SetNickname(sessionID, join.Nickname)
			case protocol.TypePose:
				var pose game.PoseUpdate
				if err := json.Unmarshal(env.Payload, &pose); err != nil {
					continue
				}
				room.HandlePose(sessionID, pose, time.Now().UnixMilli())
			case protocol.TypeCrash:
				if err := protocol.ValidateCrash(env.Payload); err != nil {
					continue
				}
				room.HandleCrash(sessionID, time.Now().UnixMilli())
			default:
				log.Printf("unknown message type: %s", env.Type)
			}
		}
	}()

	// Sender: full state snapshot at the patch rate.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-sendTick.C:
				if err := conn.WriteJSON(buildState(room)); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	<-ctx.Done()
	sendTick.Stop()
	conn.Close()
	room.Leave(sessionID, time.Now().UnixMilli())
}
