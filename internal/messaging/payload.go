package messaging

import "time"

// InvalidationPayload - сообщение о сбросе кэша по префиксу.
// Origin - идентификатор экземпляра, выполнившего запись.
type InvalidationPayload struct {
	Prefix   string    `json:"prefix"`
	Origin   string    `json:"origin"`
	IssuedAt time.Time `json:"issued_at"`
}
