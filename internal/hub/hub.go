// Package hub is the realtime relay: a room per open document, fanning edit,
// cursor and presence signals out to every other connection in the room. It
// persists nothing and trusts that read access was already checked over HTTP.
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type UserJoinedData struct {
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type UserLeftData struct {
	UserID    uuid.UUID `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

type RoomUser struct {
	UserID   uuid.UUID `json:"userId"`
	UserName string    `json:"userName,omitempty"`
}

type RoomUsersData struct {
	DocumentID uuid.UUID  `json:"docId"`
	Users      []RoomUser `json:"users"`
}

type AIActivityData struct {
	Type      string      `json:"type"`
	UserID    uuid.UUID   `json:"userId"`
	Feature   string      `json:"feature"`
	Result    interface{} `json:"result,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Client is one websocket connection. A client is in zero or one room at a
// time; joining a new room leaves the previous one.
type Client struct {
	ID       string
	UserID   uuid.UUID
	UserName string
	Send     chan []byte
}

type roomMessage struct {
	RoomID   uuid.UUID
	ExceptID string
	Event    Event
}

type Hub struct {
	clients    map[string]*Client
	rooms      map[uuid.UUID]map[string]*Client
	clientRoom map[string]uuid.UUID
	register   chan *Client
	unregister chan *Client
	broadcast  chan *roomMessage
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[uuid.UUID]map[string]*Client),
		clientRoom: make(map[string]uuid.UUID),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *roomMessage, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; !ok {
				h.mu.Unlock()
				continue
			}
			roomID, inRoom := h.clientRoom[client.ID]
			if inRoom {
				h.removeFromRoomLocked(client.ID, roomID)
			}
			delete(h.clients, client.ID)
			close(client.Send)
			h.mu.Unlock()

			if inRoom {
				h.sendToRoom(roomID, client.ID, Event{
					Type: "user-left",
					Data: UserLeftData{UserID: client.UserID, Timestamp: time.Now()},
				})
			}

		case msg := <-h.broadcast:
			h.sendToRoom(msg.RoomID, msg.ExceptID, msg.Event)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes the connection, implicitly leaving whatever room it
// occupies and notifying the remaining members.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Join puts the connection into the room for documentID, creating the room
// implicitly if it is empty. The other members are told user-joined; the
// joiner itself only receives the current member list.
func (h *Hub) Join(clientID string, documentID uuid.UUID) {
	h.mu.Lock()
	client, ok := h.clients[clientID]
	if !ok {
		h.mu.Unlock()
		return
	}

	var prevRoom uuid.UUID
	hadPrev := false
	if roomID, inRoom := h.clientRoom[clientID]; inRoom {
		if roomID == documentID {
			h.mu.Unlock()
			return
		}
		h.removeFromRoomLocked(clientID, roomID)
		prevRoom = roomID
		hadPrev = true
	}

	room, ok := h.rooms[documentID]
	if !ok {
		room = make(map[string]*Client)
		h.rooms[documentID] = room
	}
	room[clientID] = client
	h.clientRoom[clientID] = documentID

	users := make([]RoomUser, 0, len(room))
	for _, member := range room {
		users = append(users, RoomUser{UserID: member.UserID, UserName: member.UserName})
	}
	h.mu.Unlock()

	if hadPrev {
		h.sendToRoom(prevRoom, clientID, Event{
			Type: "user-left",
			Data: UserLeftData{UserID: client.UserID, Timestamp: time.Now()},
		})
	}

	h.sendToRoom(documentID, clientID, Event{
		Type: "user-joined",
		Data: UserJoinedData{UserID: client.UserID, UserName: client.UserName, Timestamp: time.Now()},
	})

	h.sendToClient(client, Event{
		Type: "room-users",
		Data: RoomUsersData{DocumentID: documentID, Users: users},
	})
}

// Leave takes the connection out of the room. Leaving a room the connection
// is not in is a no-op.
func (h *Hub) Leave(clientID string, documentID uuid.UUID) {
	h.mu.Lock()
	client, ok := h.clients[clientID]
	if !ok || h.clientRoom[clientID] != documentID {
		h.mu.Unlock()
		return
	}
	h.removeFromRoomLocked(clientID, documentID)
	h.mu.Unlock()

	h.sendToRoom(documentID, clientID, Event{
		Type: "user-left",
		Data: UserLeftData{UserID: client.UserID, Timestamp: time.Now()},
	})
}

// BroadcastChange relays an edit to every other member of the document's
// room, stamped with the sender and a server timestamp. Delivery order is
// only guaranteed per sender; there is no acknowledgement and no conflict
// resolution.
func (h *Hub) BroadcastChange(clientID string, documentID uuid.UUID, payload map[string]interface{}) {
	h.broadcastPayload(clientID, documentID, "document-update", payload, true)
}

func (h *Hub) BroadcastCursor(clientID string, documentID uuid.UUID, payload map[string]interface{}) {
	h.broadcastPayload(clientID, documentID, "cursor-update", payload, false)
}

func (h *Hub) BroadcastAIActivity(clientID string, documentID uuid.UUID, activityType, feature string, result interface{}) {
	h.mu.RLock()
	client, ok := h.clients[clientID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	h.broadcast <- &roomMessage{
		RoomID:   documentID,
		ExceptID: clientID,
		Event: Event{
			Type: "ai-activity",
			Data: AIActivityData{
				Type:      activityType,
				UserID:    client.UserID,
				Feature:   feature,
				Result:    result,
				Timestamp: time.Now(),
			},
		},
	}
}

func (h *Hub) broadcastPayload(clientID string, documentID uuid.UUID, eventType string, payload map[string]interface{}, stampTime bool) {
	h.mu.RLock()
	client, ok := h.clients[clientID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if payload == nil {
		payload = make(map[string]interface{})
	}
	payload["userId"] = client.UserID
	if stampTime {
		payload["timestamp"] = time.Now()
	}

	h.broadcast <- &roomMessage{
		RoomID:   documentID,
		ExceptID: clientID,
		Event:    Event{Type: eventType, Data: payload},
	}
}

// sendToRoom delivers an event to every room member except exceptID.
// Broadcasting to an empty or nonexistent room is a no-op.
func (h *Hub) sendToRoom(roomID uuid.UUID, exceptID string, event Event) {
	data, _ := json.Marshal(event)

	h.mu.RLock()
	for id, member := range h.rooms[roomID] {
		if id == exceptID {
			continue
		}
		select {
		case member.Send <- data:
		default:
			// Client buffer full, skip
		}
	}
	h.mu.RUnlock()
}

// sendToClient holds the read lock for the send; unregister closes Send under
// the write lock, so a send can never hit a freshly closed channel.
func (h *Hub) sendToClient(client *Client, event Event) {
	data, _ := json.Marshal(event)

	h.mu.RLock()
	if _, ok := h.clients[client.ID]; ok {
		select {
		case client.Send <- data:
		default:
		}
	}
	h.mu.RUnlock()
}

// removeFromRoomLocked drops the membership entry and deletes the room once
// empty. Rooms only exist while at least one connection is in them.
func (h *Hub) removeFromRoomLocked(clientID string, roomID uuid.UUID) {
	if room, ok := h.rooms[roomID]; ok {
		delete(room, clientID)
		if len(room) == 0 {
			delete(h.rooms, roomID)
		}
	}
	delete(h.clientRoom, clientID)
}
