package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

const cookieSeparator = "."

// CookieCodec подписывает идентификатор сессии. Принимаются только значения,
// выданные сервером с тем же секретом; придуманный клиентом UUID отвергается.
type CookieCodec struct {
	secret []byte
}

// NewCookieCodec создает кодек с секретом SESSION_SECRET.
func NewCookieCodec(secret []byte) *CookieCodec {
	return &CookieCodec{secret: secret}
}

// Encode возвращает значение cookie: id.подпись
func (c *CookieCodec) Encode(id string) string {
	return id + cookieSeparator + base64.RawURLEncoding.EncodeToString(c.mac(id))
}

// Decode проверяет подпись и возвращает идентификатор.
func (c *CookieCodec) Decode(value string) (string, bool) {
	id, encodedSig, ok := strings.Cut(value, cookieSeparator)
	if !ok || !ValidID(id) {
		return "", false
	}
	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil || !hmac.Equal(sig, c.mac(id)) {
		return "", false
	}
	return id, true
}

func (c *CookieCodec) mac(id string) []byte {
	m := hmac.New(sha256.New, c.secret)
	m.Write([]byte(id))
	return m.Sum(nil)
}
