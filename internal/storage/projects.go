package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/portfolio-backend/internal/lib/month"
	"github.com/magabrotheeeer/portfolio-backend/internal/models"
)

const projectColumns = `id, name, link, description, artifact_link, user_id, created_at, updated_at`

// CreateProject сохраняет новый проект и возвращает его вместе с временными метками.
func (s *Storage) CreateProject(ctx context.Context, project models.Project) (*models.Project, error) {
	const op = "storage.CreateProject"

	query := `INSERT INTO projects (id, name, link, description, artifact_link, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + projectColumns
	row := s.DB.QueryRowContext(ctx, query,
		project.ID, project.Name, project.Link, project.Description, project.ArtifactLink, project.UserUID)

	created, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ListProjects возвращает проекты владельца, новые первыми.
func (s *Storage) ListProjects(ctx context.Context, userUID string) ([]*models.Project, error) {
	const op = "storage.ListProjects"

	query := `SELECT ` + projectColumns + `
			  FROM projects
			  WHERE user_id = $1
			  ORDER BY created_at DESC, id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetProject возвращает проект по id только если он принадлежит userUID.
func (s *Storage) GetProject(ctx context.Context, id, userUID string) (*models.Project, error) {
	const op = "storage.GetProject"

	query := `SELECT ` + projectColumns + `
			  FROM projects
			  WHERE id = $1 AND user_id = $2`
	p, err := scanProject(s.DB.QueryRowContext(ctx, query, id, userUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || invalidTextRepresentation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrProjectNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UpdateProject сохраняет изменяемые поля проекта. Владелец в условии WHERE,
// поэтому чужой проект не будет изменён.
func (s *Storage) UpdateProject(ctx context.Context, project models.Project) (*models.Project, error) {
	const op = "storage.UpdateProject"

	query := `UPDATE projects
			  SET name = $1, link = $2, description = $3, artifact_link = $4, updated_at = NOW()
			  WHERE id = $5 AND user_id = $6
			  RETURNING ` + projectColumns
	row := s.DB.QueryRowContext(ctx, query,
		project.Name, project.Link, project.Description, project.ArtifactLink, project.ID, project.UserUID)

	updated, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || invalidTextRepresentation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrProjectNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteProject удаляет проект владельца.
func (s *Storage) DeleteProject(ctx context.Context, id, userUID string) error {
	const op = "storage.DeleteProject"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userUID)
	if err != nil {
		if invalidTextRepresentation(err) {
			return fmt.Errorf("%s: %w", op, ErrProjectNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrProjectNotFound)
	}
	return nil
}

// ProjectStats считает общее число проектов владельца, число проектов,
// созданных начиная с since, и помесячное распределение в UTC.
func (s *Storage) ProjectStats(ctx context.Context, userUID string, since time.Time) (*models.ProjectStats, error) {
	const op = "storage.ProjectStats"

	stats := &models.ProjectStats{MonthlyBuckets: make([]models.MonthlyBucket, 0)}

	countQuery := `SELECT COUNT(*), COUNT(*) FILTER (WHERE created_at >= $2)
				   FROM projects
				   WHERE user_id = $1`
	if err := s.DB.QueryRowContext(ctx, countQuery, userUID, since).
		Scan(&stats.TotalCount, &stats.CountLast30Days); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if stats.TotalCount == 0 {
		return stats, nil
	}

	monthlyQuery := `SELECT date_trunc('month', created_at AT TIME ZONE 'UTC') AS month, COUNT(id)
					 FROM projects
					 WHERE user_id = $1
					 GROUP BY month
					 ORDER BY month ASC`
	rows, err := s.DB.QueryContext(ctx, monthlyQuery, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			start time.Time
			count int
		)
		if err := rows.Scan(&start, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.MonthlyBuckets = append(stats.MonthlyBuckets, models.MonthlyBucket{
			Month: month.Label(start),
			Count: count,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		p            models.Project
		description  sql.NullString
		artifactLink sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Link, &description, &artifactLink,
		&p.UserUID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	if artifactLink.Valid {
		p.ArtifactLink = &artifactLink.String
	}
	return &p, nil
}
