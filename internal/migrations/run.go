// Package migrations применяет SQL-миграции схемы базы данных при старте сервиса.
package migrations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Драйвер pgx/v5 регистрирует схему pgx5://.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Run применяет все ещё не применённые миграции из каталога path.
// Миграции выполняются через отдельное соединение, которое закрывается по завершении.
func Run(connectionString, path string) error {
	const op = "migrations.Run"

	m, err := migrate.New("file://"+path, databaseURL(connectionString))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// databaseURL переводит строку подключения postgres:// в схему драйвера pgx5://.
func databaseURL(connectionString string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(connectionString, prefix) {
			return "pgx5://" + strings.TrimPrefix(connectionString, prefix)
		}
	}
	return connectionString
}
