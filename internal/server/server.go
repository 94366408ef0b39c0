package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"buildbrawl/internal/config"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server exposes the websocket endpoint and hosts the room.
type Server struct {
	cfg  config.Config
	room *Room
}

// New creates a server hosting one room for the configured match.
func New(cfg config.Config) *Server {
	return &Server{
		cfg:  cfg,
		room: newRoom(cfg),
	}
}

// Start listens on the configured address and serves websocket clients.
func (s *Server) Start() error {
	http.HandleFunc("/ws", s.handleWebSocket)

	log.Printf("server starting on %s", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, nil)
}

// Shutdown stops the hosted match.
func (s *Server) Shutdown() {
	s.room.stop()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := newClient(conn, s.room)
	go client.readPump()
	go client.writePump()
}
