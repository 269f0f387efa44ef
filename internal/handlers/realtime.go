package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/websocket"

	"github.com/inkwell-hq/inkwell-api/internal/hub"
)

// RealtimeHandler upgrades authenticated connections and pumps client events
// into the hub. Access to a document's room is not re-checked here; clients
// obtained the document id over the authorized HTTP surface.
type RealtimeHandler struct {
	hub         HubInterface
	jwtService  JWTServiceInterface
	userService UserServiceInterface
}

func NewRealtimeHandler(h HubInterface, jwtService JWTServiceInterface, userService UserServiceInterface) *RealtimeHandler {
	return &RealtimeHandler{hub: h, jwtService: jwtService, userService: userService}
}

type clientEvent struct {
	Type       string    `json:"type"`
	DocumentID uuid.UUID `json:"docId"`
	Feature    string    `json:"feature,omitempty"`
	Result     any       `json:"result,omitempty"`
}

func (h *RealtimeHandler) Connect(c *drift.Context) {
	token := c.QueryParam("token")
	if token == "" {
		c.Unauthorized("token query parameter required")
		return
	}

	claims, err := h.jwtService.ValidateAccessToken(token)
	if err != nil {
		c.Unauthorized("invalid token")
		return
	}

	userName := ""
	if user, err := h.userService.GetByID(context.Background(), claims.UserID); err == nil {
		userName = user.Name
	}

	conn, err := websocket.Upgrade(c)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(websocket.CloseNormalClosure, ""); err != nil {
			log.Printf("websocket close error: %v", err)
		}
	}()

	client := &hub.Client{
		ID:       uuid.NewString(),
		UserID:   claims.UserID,
		UserName: userName,
		Send:     make(chan []byte, 64),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	go func() {
		for data := range client.Send {
			if err := conn.WriteText(string(data)); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(map[string]string{"type": "connected"}); err != nil {
		return
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		h.dispatch(client, data)
	}
}

// dispatch routes one inbound event. Malformed events are logged and dropped;
// there is no per-event error channel back to the client.
func (h *RealtimeHandler) dispatch(client *hub.Client, data []byte) {
	var event clientEvent
	if err := json.Unmarshal(data, &event); err != nil {
		log.Printf("dropping malformed realtime event from %s: %v", client.ID, err)
		return
	}
	if event.DocumentID == (uuid.UUID{}) {
		log.Printf("dropping realtime event without docId from %s", client.ID)
		return
	}

	switch event.Type {
	case "join-document":
		h.hub.Join(client.ID, event.DocumentID)

	case "leave-document":
		h.hub.Leave(client.ID, event.DocumentID)

	case "document-change", "cursor-position":
		// The remaining payload fields ride through untouched; the hub only
		// stamps sender identity (and a timestamp for changes).
		var payload map[string]interface{}
		if err := json.Unmarshal(data, &payload); err != nil {
			log.Printf("dropping malformed realtime event from %s: %v", client.ID, err)
			return
		}
		delete(payload, "type")
		delete(payload, "docId")

		if event.Type == "document-change" {
			h.hub.BroadcastChange(client.ID, event.DocumentID, payload)
		} else {
			h.hub.BroadcastCursor(client.ID, event.DocumentID, payload)
		}

	case "ai-generation-start", "ai-generation-complete":
		h.hub.BroadcastAIActivity(client.ID, event.DocumentID, event.Type, event.Feature, event.Result)

	default:
		log.Printf("dropping unknown realtime event %q from %s", event.Type, client.ID)
	}
}
