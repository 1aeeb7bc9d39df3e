// Package project содержит бизнес-логику работы с проектами пользователя.
// Все операции выполняются от имени владельца и не видят чужие проекты.
package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/portfolio-backend/internal/cache"
	"github.com/magabrotheeeer/portfolio-backend/internal/lib/month"
	"github.com/magabrotheeeer/portfolio-backend/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-backend/internal/models"
	"github.com/magabrotheeeer/portfolio-backend/internal/storage"
)

// RecentWindowDays длина окна "последних" проектов в статистике.
const RecentWindowDays = 30

// ErrNotFound проект не существует или принадлежит другому пользователю.
var ErrNotFound = errors.New("project not found")

// Repository определяет методы для работы с проектами в хранилище.
type Repository interface {
	CreateProject(ctx context.Context, project models.Project) (*models.Project, error)
	ListProjects(ctx context.Context, userUID string) ([]*models.Project, error)
	GetProject(ctx context.Context, id, userUID string) (*models.Project, error)
	UpdateProject(ctx context.Context, project models.Project) (*models.Project, error)
	DeleteProject(ctx context.Context, id, userUID string) error
	ProjectStats(ctx context.Context, userUID string, since time.Time) (*models.ProjectStats, error)
}

// Service реализует операции над проектами с кешированием статистики.
type Service struct {
	repo     Repository
	cache    cache.Cache
	statsTTL time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, c cache.Cache, statsTTL time.Duration, log *slog.Logger, opts ...Option) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	s := &Service{
		repo:     repo,
		cache:    c,
		statsTTL: statsTTL,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List возвращает проекты владельца, новые первыми.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Project, error) {
	const op = "services.project.List"

	projects, err := s.repo.ListProjects(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return projects, nil
}

// Stats возвращает статистику по проектам владельца.
// Результат берется из кеша, если он там есть.
func (s *Service) Stats(ctx context.Context, userUID string) (*models.ProjectStats, error) {
	const op = "services.project.Stats"
	log := s.log.With(slog.String("op", op))

	key := cache.StatsKey(userUID)
	var cached models.ProjectStats
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("failed to read stats from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	stats, err := s.repo.ProjectStats(ctx, userUID, month.DaysAgo(s.now(), RecentWindowDays))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, key, stats, s.statsTTL); err != nil {
		log.Warn("failed to cache stats", slog.String("key", key), sl.Err(err))
	}
	return stats, nil
}

// Create создает проект, владельцем которого становится userUID.
// Ожидает нормализованный и провалидированный запрос.
func (s *Service) Create(ctx context.Context, userUID string, req models.ProjectRequest) (*models.Project, error) {
	const op = "services.project.Create"

	created, err := s.repo.CreateProject(ctx, models.Project{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Link:         req.Link,
		Description:  req.Description,
		ArtifactLink: req.ArtifactLink,
		UserUID:      userUID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created new project", slog.String("id", created.ID))
	s.invalidateStats(ctx, userUID)
	return created, nil
}

// Update применяет переданные поля к проекту владельца.
// Чужой проект неотличим от несуществующего.
func (s *Service) Update(ctx context.Context, userUID, id string, patch models.ProjectPatch) (*models.Project, error) {
	const op = "services.project.Update"

	current, err := s.repo.GetProject(ctx, id, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	if patch.Empty() {
		return current, nil
	}

	patch.Apply(current)

	updated, err := s.repo.UpdateProject(ctx, *current)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}

	s.invalidateStats(ctx, userUID)
	return updated, nil
}

// Delete удаляет проект владельца.
func (s *Service) Delete(ctx context.Context, userUID, id string) error {
	const op = "services.project.Delete"

	if err := s.repo.DeleteProject(ctx, id, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, notFound(err))
	}

	s.log.Info("deleted project", slog.String("id", id))
	s.invalidateStats(ctx, userUID)
	return nil
}

func (s *Service) invalidateStats(ctx context.Context, userUID string) {
	key := cache.StatsKey(userUID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate stats cache", slog.String("key", key), sl.Err(err))
	}
}

func notFound(err error) error {
	if errors.Is(err, storage.ErrProjectNotFound) {
		return ErrNotFound
	}
	return err
}
