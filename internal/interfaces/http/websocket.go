package httpinterface

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/stationd/internal/core/application"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var supportedTopics = map[string]struct{}{
	application.EventPoolSwap:      {},
	application.EventPoolJoin:      {},
	application.EventPoolExit:      {},
	application.EventPricesUpdated: {},
	application.EventAny:           {},
}

// eventsHandler streams the pool events of a topic to websocket clients.
type eventsHandler struct {
	pubsubSvc application.PubSubService
	upgrader  websocket.Upgrader
}

func newEventsHandler(
	pubsubSvc application.PubSubService, allowedOrigins []string,
) *eventsHandler {
	return &eventsHandler{
		pubsubSvc: pubsubSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

func (h *eventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = application.EventAny
	}
	if _, ok := supportedTopics[topic]; !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown topic %s", topic))
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("websocket upgrade failed")
		return
	}

	events, stop := h.pubsubSvc.Listen(topic)
	done := make(chan struct{})
	go readPump(conn, done)
	writePump(conn, events, done)
	stop()
}

// readPump discards incoming messages and handles pongs. done is closed
// when the client goes away.
func readPump(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
			) {
				log.WithError(err).Debug("unexpected websocket close")
			}
			return
		}
	}
}

func writePump(
	conn *websocket.Conn, events <-chan application.Event, done <-chan struct{},
) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case <-done:
			return
		case event, ok := <-events:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				// The pubsub service has been closed.
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				log.WithError(err).Debug("failed to write event to websocket")
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func checkOrigin(allowedOrigins []string) func(r *http.Request) bool {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if allowAll || origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		_, ok := allowed[fmt.Sprintf("%s://%s", u.Scheme, u.Host)]
		return ok
	}
}
