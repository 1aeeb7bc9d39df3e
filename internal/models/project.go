package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Project представляет проект портфолио, принадлежащий ровно одному пользователю.
// UserUID задаётся при создании и не меняется.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Link         string    `json:"link"`
	Description  *string   `json:"description"`
	ArtifactLink *string   `json:"artifact_link"`
	UserUID      string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProjectRequest используется для приёма данных нового проекта из JSON-запроса.
type ProjectRequest struct {
	Name         string  `json:"name" validate:"required,min=3,max=255"`
	Link         string  `json:"link" validate:"required,url"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ArtifactLink *string `json:"artifact_link,omitempty" validate:"omitempty,url"`
}

// Normalize обрезает пробелы в текстовых полях. Вызывается до валидации,
// чтобы ограничения длины проверялись на сохраняемом значении.
func (r *ProjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Link = strings.TrimSpace(r.Link)
	r.ArtifactLink = trimmed(r.ArtifactLink)
}

// ProjectPatch содержит поля для частичного обновления проекта.
// nil означает, что поле не передано и сохраняет прежнее значение.
// Явный null в description или artifact_link очищает поле.
type ProjectPatch struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	Link         *string `json:"link,omitempty" validate:"omitempty,url"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ArtifactLink *string `json:"artifact_link,omitempty" validate:"omitempty,url"`

	ClearDescription  bool `json:"-"`
	ClearArtifactLink bool `json:"-"`
}

// UnmarshalJSON отличает отсутствующее поле от переданного null.
func (p *ProjectPatch) UnmarshalJSON(data []byte) error {
	type plain ProjectPatch
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = ProjectPatch(decoded)
	p.ClearDescription = isNull(raw["description"])
	p.ClearArtifactLink = isNull(raw["artifact_link"])
	return nil
}

// Normalize обрезает пробелы в переданных текстовых полях.
func (p *ProjectPatch) Normalize() {
	p.Name = trimmed(p.Name)
	p.Link = trimmed(p.Link)
	p.ArtifactLink = trimmed(p.ArtifactLink)
}

// Apply переносит переданные поля патча в проект.
func (p ProjectPatch) Apply(project *Project) {
	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.Link != nil {
		project.Link = *p.Link
	}
	switch {
	case p.ClearDescription:
		project.Description = nil
	case p.Description != nil:
		project.Description = p.Description
	}
	switch {
	case p.ClearArtifactLink:
		project.ArtifactLink = nil
	case p.ArtifactLink != nil:
		project.ArtifactLink = p.ArtifactLink
	}
}

// Empty сообщает, что в патче нет ни одного поля.
func (p ProjectPatch) Empty() bool {
	return p.Name == nil && p.Link == nil && p.Description == nil && p.ArtifactLink == nil &&
		!p.ClearDescription && !p.ClearArtifactLink
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

func isNull(v json.RawMessage) bool {
	return v != nil && bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
