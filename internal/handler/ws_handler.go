package handler

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"storysite/internal/store"
)

const (
	// Время, разрешенное для записи сообщения клиенту.
	writeWait = 10 * time.Second
	// Время, разрешенное для чтения следующего pong сообщения от клиента.
	pongWait = 60 * time.Second
	// Период пингов. Должен быть меньше pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Клиент ничего не присылает, кроме control-фреймов.
	maxMessageSize = 512
	sendBuffer     = 16
)

// CheckOrigin не задан: по умолчанию пускаются только запросы с того же хоста.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// preferenceEvent - сообщение об изменении темы или размера шрифта в этой сессии.
type preferenceEvent struct {
	Theme    store.Theme `json:"theme,omitempty"`
	FontSize int         `json:"fontSize,omitempty"`
}

// preferencesSocket рассылает открытым вкладкам сессии изменения настроек чтения,
// чтобы переключение в одной вкладке сразу применялось в остальных.
func (h *Handler) preferencesSocket(c *gin.Context) {
	bundle := bundleFrom(c)
	logger := h.logger.With(zap.String("remote", c.ClientIP()))

	send := make(chan preferenceEvent, sendBuffer)
	done := make(chan struct{})
	push := func(ev preferenceEvent) {
		select {
		case send <- ev:
		case <-done:
		default:
			logger.Debug("Preferences socket is slow, event dropped")
		}
	}

	// Подписка до рукопожатия: событие сразу после подключения не теряется.
	themeSub := bundle.Theme.Subscribe(func(t store.Theme) { push(preferenceEvent{Theme: t}) })
	fontSub := bundle.FontSize.Subscribe(func(size int) { push(preferenceEvent{FontSize: size}) })
	defer func() {
		close(done)
		bundle.Theme.Unsubscribe(themeSub)
		bundle.FontSize.Unsubscribe(fontSub)
	}()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade preferences socket", zap.Error(err))
		return
	}
	preferenceSockets.Inc()
	defer preferenceSockets.Dec()

	go h.writePump(conn, send, done, logger)
	h.readPump(conn, logger)
}

// readPump читает только control-фреймы и выходит при закрытии соединения.
func (h *Handler) readPump(conn *websocket.Conn, logger *zap.Logger) {
	defer func() {
		_ = conn.Close()
	}()
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Preferences socket read error", zap.Error(err))
			}
			return
		}
	}
}

func (h *Handler) writePump(conn *websocket.Conn, send <-chan preferenceEvent, done <-chan struct{}, logger *zap.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case ev := <-send:
			payload, err := json.Marshal(ev)
			if err != nil {
				logger.Error("Failed to encode preference event", zap.Error(err))
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
