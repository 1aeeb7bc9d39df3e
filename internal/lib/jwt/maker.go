// Package jwt реализует выпуск и проверку подписанных токенов сессии.
//
// Токен содержит идентификатор пользователя (sub), время выпуска (iat)
// и время истечения (exp) и подписывается симметричным ключом HS256.
package jwt

import (
	"errors"
	"time"
)

// ErrInvalidToken возвращается для любого токена, который нельзя принять:
// пустого, испорченного, подписанного чужим ключом или истёкшего.
var ErrInvalidToken = errors.New("invalid token")

// Maker описывает выпуск и проверку токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя с идентификатором subject.
	GenerateToken(subject string) (string, error)
	// ParseToken проверяет подпись и срок действия и возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на основе секретного ключа и времени жизни токена.
// После создания не изменяется и безопасен для конкурентного использования.
type MakerImpl struct {
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// Option настраивает MakerImpl.
type Option func(*MakerImpl)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(m *MakerImpl) {
		m.now = now
	}
}

// NewJWTMaker создаёт MakerImpl с секретным ключом и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration, opts ...Option) *MakerImpl {
	m := &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL возвращает настроенное время жизни токена.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
