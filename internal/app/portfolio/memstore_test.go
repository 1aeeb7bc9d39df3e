package portfolio

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/magabrotheeeer/portfolio-backend/internal/lib/month"
	"github.com/magabrotheeeer/portfolio-backend/internal/models"
	"github.com/magabrotheeeer/portfolio-backend/internal/storage"
)

// memStore хранилище в памяти с теми же контрактами ошибок, что и storage.Storage.
type memStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	projects map[string]models.Project
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]models.User),
		projects: make(map[string]models.Project),
		clock:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick возвращает строго возрастающее время, чтобы порядок создания был однозначным.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) Ping(context.Context) error { return nil }

// checkLength повторяет CHECK-ограничения длины из миграций.
func checkLength(constraint, value string, lo, hi int) error {
	if n := utf8.RuneCountInString(value); n < lo || n > hi {
		return fmt.Errorf("memstore: violates check constraint %q", constraint)
	}
	return nil
}

func checkProject(p models.Project) error {
	if err := checkLength("projects_name_length", p.Name, 3, 255); err != nil {
		return err
	}
	if p.Description != nil {
		return checkLength("projects_description_length", *p.Description, 0, 2000)
	}
	return nil
}

func (s *memStore) CreateUser(_ context.Context, user *models.User) error {
	if err := checkLength("users_username_length", user.Username, 3, 50); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return fmt.Errorf("memstore.CreateUser: %w", storage.ErrEmailExists)
		}
		if u.Username == user.Username {
			return fmt.Errorf("memstore.CreateUser: %w", storage.ErrUsernameExists)
		}
	}
	user.CreatedAt = s.tick()
	user.UpdatedAt = user.CreatedAt
	s.users[user.UUID] = *user
	return nil
}

func (s *memStore) findUser(match func(models.User) bool) (*models.User, error) {
	if err := checkLength("users_username_length", user.Username, 3, 50); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Email == email })
}

func (s *memStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Username == username })
}

func (s *memStore) GetUser(_ context.Context, userUID string) (*models.User, error) {
	return s.findUser(func(u models.User) bool { return u.UUID == userUID })
}

func (s *memStore) CreateProject(_ context.Context, p models.Project) (*models.Project, error) {
	if err := checkProject(p); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.CreatedAt = s.tick()
	p.UpdatedAt = p.CreatedAt
	s.projects[p.ID] = p
	return &p, nil
}

func (s *memStore) ListProjects(_ context.Context, userUID string) ([]*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*models.Project, 0)
	for _, p := range s.projects {
		if p.UserUID == userUID {
			result = append(result, &p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *memStore) GetProject(_ context.Context, id, userUID string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok || p.UserUID != userUID {
		return nil, storage.ErrProjectNotFound
	}
	return &p, nil
}

func (s *memStore) UpdateProject(_ context.Context, project models.Project) (*models.Project, error) {
	if err := checkProject(project); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[project.ID]
	if !ok || p.UserUID != project.UserUID {
		return nil, storage.ErrProjectNotFound
	}
	project.CreatedAt = p.CreatedAt
	project.UpdatedAt = s.tick()
	s.projects[project.ID] = project
	return &project, nil
}

func (s *memStore) DeleteProject(_ context.Context, id, userUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok || p.UserUID != userUID {
		return storage.ErrProjectNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *memStore) ProjectStats(ctx context.Context, userUID string, since time.Time) (*models.ProjectStats, error) {
	projects, _ := s.ListProjects(ctx, userUID)
	stats := &models.ProjectStats{MonthlyBuckets: make([]models.MonthlyBucket, 0)}
	counts := make(map[time.Time]int)
	for _, p := range projects {
		stats.TotalCount++
		if !p.CreatedAt.Before(since) {
			stats.CountLast30Days++
		}
		counts[month.Start(p.CreatedAt)]++
	}
	starts := make([]time.Time, 0, len(counts))
	for m := range counts {
		starts = append(starts, m)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	for _, m := range starts {
		stats.MonthlyBuckets = append(stats.MonthlyBuckets, models.MonthlyBucket{Month: month.Label(m), Count: counts[m]})
	}
	return stats, nil
}
