// Package password реализует одностороннее хеширование и проверку паролей.
//
// Хеш строится bcrypt со случайной солью, встроенной в результат,
// и настраиваемой стоимостью (work factor).
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost стоимость по умолчанию, эквивалент 10 раундов bcrypt.
const DefaultCost = bcrypt.DefaultCost

// MaxLength максимальная длина пароля в байтах, которую принимает bcrypt.
const MaxLength = 72

// ErrTooLong возвращается для паролей длиннее MaxLength байт.
var ErrTooLong = errors.New("password is too long")

// Hasher хеширует и проверяет пароли с фиксированной стоимостью.
type Hasher struct {
	cost int
}

// NewHasher создаёт Hasher. Стоимость должна лежать в допустимом для bcrypt диапазоне.
func NewHasher(cost int) (*Hasher, error) {
	const op = "password.NewHasher"
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%s: cost %d out of range [%d, %d]", op, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Hasher{cost: cost}, nil
}

// Hash возвращает bcrypt-хеш пароля.
func (h *Hasher) Hash(password string) (string, error) {
	const op = "password.Hash"
	if len(password) > MaxLength {
		return "", fmt.Errorf("%s: %w", op, ErrTooLong)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сообщает, соответствует ли пароль хешу.
// Испорченный или пустой хеш даёт false.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
