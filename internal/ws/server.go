package ws

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"four-in-a-row/internal/ids"
	"four-in-a-row/internal/protocol"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
)

// Router receives decoded client requests.
type Router interface {
	JoinQueue(connID, username string) error
	MakeMove(connID string, column int) bool
	Reconnect(connID, username, sessionID string) error
	Disconnect(connID string)
}

type Server struct {
	hub      *Hub
	router   Router
	upgrader websocket.Upgrader
}

// NewServer accepts any origin when allowedOrigins is empty.
func NewServer(hub *Hub, router Router, allowedOrigins []string) *Server {
	allowed := map[string]bool{}
	for _, o := range allowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			allowed[strings.ToLower(o)] = true
		}
	}
	return &Server{
		hub:    hub,
		router: router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				return allowed[strings.ToLower(u.Scheme+"://"+u.Host)]
			},
		},
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("ws_upgrade_failed")
		return
	}
	client := s.hub.register(ids.New())
	log.Info().Str("conn_id", client.id).Str("remote", r.RemoteAddr).Msg("ws_connected")

	go s.writeLoop(conn, client)
	s.readLoop(conn, client)
}

func (s *Server) readLoop(conn *websocket.Conn, c *Client) {
	defer func() {
		s.hub.unregister(c)
		s.router.Disconnect(c.id)
		_ = conn.Close()
		log.Info().Str("conn_id", c.id).Msg("ws_disconnected")
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		in, err := protocol.DecodeInbound(msg)
		if err != nil {
			log.Debug().Err(err).Str("conn_id", c.id).Msg("ws_message_dropped")
			continue
		}
		s.dispatch(c, in)
	}
}

func (s *Server) dispatch(c *Client, in protocol.Inbound) {
	switch in.Type {
	case protocol.TypeJoinQueue:
		if err := s.router.JoinQueue(c.id, in.Join.Username); err != nil {
			log.Debug().Err(err).Str("conn_id", c.id).Msg("join_rejected")
			s.hub.Notify(c.id, protocol.NewError(protocol.MsgInvalidUsername))
		}
	case protocol.TypeMakeMove:
		s.router.MakeMove(c.id, in.Move.Column)
	case protocol.TypeReconnectGame:
		if err := s.router.Reconnect(c.id, in.Reconnect.Username, in.Reconnect.SessionID); err != nil {
			log.Info().Err(err).Str("conn_id", c.id).Str("session_id", in.Reconnect.SessionID).Msg("reconnect_rejected")
		}
	}
}

func (s *Server) writeLoop(conn *websocket.Conn, c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
