// Package models содержит доменные структуры пользователя и проекта,
// а также структуры входных данных, приходящих из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// PasswordHash никогда не сериализуется в ответы.
type User struct {
	UUID         string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// UserSummary публичное представление пользователя.
type UserSummary struct {
	UUID     string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Summary возвращает публичное представление пользователя без секрета и временных меток.
func (u *User) Summary() UserSummary {
	return UserSummary{
		UUID:     u.UUID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// AuthResult результат успешной регистрации или входа.
type AuthResult struct {
	User  UserSummary `json:"user"`
	Token string      `json:"token"`
}
