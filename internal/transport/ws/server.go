package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/internal/metrics"
	"github.com/cwrk-planet/bizos/internal/realtime"
	"github.com/cwrk-planet/bizos/internal/security"
	"github.com/cwrk-planet/bizos/pkg/errs"
	"github.com/cwrk-planet/bizos/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type MemberSvc interface {
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
}

type ChatSvc interface {
	SendText(ctx context.Context, groupID, userID, text string) (msgID string, createdAt time.Time, err error)
}

type TypingSvc interface {
	Touch(ctx context.Context, groupID, userID string) (*domain.TypingIndicator, error)
	Clear(ctx context.Context, groupID, userID string) error
}

type Publisher interface {
	Publish(ctx context.Context, ev domain.GroupEvent)
}

type TokenVerifier interface {
	ParseAndValidate(token string) (*security.AccessClaims, error)
}

type Server struct {
	upgrader  websocket.Upgrader
	hub       *realtime.Hub
	pub       Publisher
	memberSvc MemberSvc
	chatSvc   ChatSvc
	typingSvc TypingSvc
	verifier  TokenVerifier // nil: user_id из query без проверки

	pingEvery time.Duration
}

func NewServer(hub *realtime.Hub, pub Publisher, member MemberSvc, chat ChatSvc, typing TypingSvc, verifier TokenVerifier) *Server {
	return &Server{
		hub:       hub,
		pub:       pub,
		memberSvc: member,
		chatSvc:   chat,
		typingSvc: typing,
		verifier:  verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

func (s *Server) identify(r *http.Request) (string, bool) {
	q := r.URL.Query()
	if s.verifier == nil {
		uid := strings.TrimSpace(q.Get("user_id"))
		return uid, uid != ""
	}
	claims, err := s.verifier.ParseAndValidate(strings.TrimSpace(q.Get("access_token")))
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

// WS endpoint: GET /ws/chat-groups/{id}?user_id=...  (или access_token=... при включённом JWT)
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	uid, ok := s.identify(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		http.Error(w, "missing group id", http.StatusBadRequest)
		return
	}

	member, err := s.memberSvc.IsMember(r.Context(), groupID, uid)
	if err != nil {
		http.Error(w, http.StatusText(errs.ToHTTP(err)), errs.ToHTTP(err))
		return
	}
	if !member {
		http.Error(w, "not a member of this group", http.StatusForbidden)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		log.Warn("ws upgrade failed", "err", err)
		return
	}
	metrics.WebsocketConnections.Inc()
	defer metrics.WebsocketConnections.Dec()

	// запрос закончится вместе с подключением; ctx отменяем сами при выходе
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	c := newWsConn(conn, groupID, uid)
	s.hub.Add(c)

	if err := c.Send(domain.GroupEvent{
		Type:    TypeState,
		GroupID: groupID,
		Payload: StatePayload{GroupID: groupID, Online: s.hub.Online(groupID)},
	}); err != nil {
		log.Warn("ws send initial state failed", "group", groupID, "user", uid, "err", err)
	}
	s.pub.Publish(ctx, domain.GroupEvent{
		Type:    TypePeerJoined,
		GroupID: groupID,
		Payload: PeerEventPayload{GroupID: groupID, UserID: uid},
	})

	go s.writeLoop(ctx, c)
	s.readLoop(ctx, c, log)

	s.hub.Remove(c)
	if err := s.typingSvc.Clear(ctx, groupID, uid); err != nil {
		log.Debug("ws clear typing failed", "group", groupID, "user", uid, "err", err)
	}
	s.pub.Publish(ctx, domain.GroupEvent{
		Type:    TypePeerLeft,
		GroupID: groupID,
		Payload: PeerEventPayload{GroupID: groupID, UserID: uid},
	})

	if err := c.Close(); err != nil {
		log.Debug("ws close failed", "group", groupID, "user", uid, "err", err)
	}
}

func (s *Server) readLoop(ctx context.Context, c *wsConn, log *slog.Logger) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}

		switch frame.Type {
		case TypeTyping:
			if _, err := s.typingSvc.Touch(ctx, c.groupID, c.userID); err != nil {
				log.Warn("ws typing failed", "group", c.groupID, "user", c.userID, "err", err)
			}
		case TypeTypingStop:
			if err := s.typingSvc.Clear(ctx, c.groupID, c.userID); err != nil {
				log.Warn("ws typing stop failed", "group", c.groupID, "user", c.userID, "err", err)
			}
		case TypeMessage:
			var p MessagePayload
			if len(frame.Payload) == 0 || json.Unmarshal(frame.Payload, &p) != nil {
				continue
			}
			text := strings.TrimSpace(p.Content)
			if text == "" {
				continue
			}

			// рассылка идёт через ChatService -> Publisher, отправителю только ACK
			id, ts, err := s.chatSvc.SendText(ctx, c.groupID, c.userID, text)
			if err != nil {
				log.Warn("ws chat save failed", "group", c.groupID, "user", c.userID, "err", err)
				_ = c.Send(domain.GroupEvent{Type: TypeError, GroupID: c.groupID, Payload: ErrorPayload{Error: errs.Message(err)}})
				continue
			}
			_ = c.Send(domain.GroupEvent{
				Type:    TypeMessageAck,
				GroupID: c.groupID,
				Payload: MessageAckPayload{ID: id, TSUnixMs: ts.UnixMilli()},
			})
		default:
			// ignore
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.ping(); err != nil {
				_ = c.Close()
				return
			}
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

type wsConn struct {
	conn    *websocket.Conn
	groupID string
	userID  string

	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    chan struct{}
}

func newWsConn(c *websocket.Conn, groupID, userID string) *wsConn {
	return &wsConn{
		conn:    c,
		groupID: groupID,
		userID:  userID,
		closed:  make(chan struct{}),
	}
}

func (c *wsConn) Send(ev domain.GroupEvent) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(ev)
}

func (c *wsConn) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
}

func (c *wsConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

func (c *wsConn) UserID() string  { return c.userID }
func (c *wsConn) GroupID() string { return c.groupID }
