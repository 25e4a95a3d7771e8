package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/SscSPs/propease_crm/internal/models"
	"github.com/SscSPs/propease_crm/internal/utils/mapping"
)

// PgxProjectRepository stores projects.
type PgxProjectRepository struct {
	BaseRepository
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const projectColumns = `project_id, project_name, status, progress, start_date, completion_date,
	maharera_no, project_address, letter_head_file_url, is_deleted,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1 AND NOT is_deleted;`
	m, err := collectOne[models.Project](ctx, r.db, query, projectID)
	if err != nil {
		return nil, wrapFind(err, "project", projectID)
	}
	p := mapping.ToDomainProject(m)
	return &p, nil
}

func (r *PgxProjectRepository) ListProjects(ctx context.Context, filter portsrepo.ProjectFilter) ([]domain.Project, error) {
	query := `
		SELECT ` + projectColumns + ` FROM projects
		WHERE NOT is_deleted AND ($1 = '' OR status = $1)
		ORDER BY project_name, project_id;`
	ms, err := collectAll[models.Project](ctx, r.db, query, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	return mapping.ToDomainProjectSlice(ms), nil
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, $10, $11, $12, $13);`
	_, err := r.db.Exec(ctx, query,
		m.ProjectID, m.ProjectName, m.Status, m.Progress, m.StartDate, m.CompletionDate,
		m.MahareraNo, m.ProjectAddress, m.LetterHeadFileURL,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "project")
	}
	return nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
		UPDATE projects
		SET project_name = $2, status = $3, progress = $4, start_date = $5, completion_date = $6,
			maharera_no = $7, project_address = $8, letter_head_file_url = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE project_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "project", query,
		m.ProjectID, m.ProjectName, m.Status, m.Progress, m.StartDate, m.CompletionDate,
		m.MahareraNo, m.ProjectAddress, m.LetterHeadFileURL, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxProjectRepository) MarkProjectDeleted(ctx context.Context, projectID string, deletedBy string, at time.Time) error {
	return markDeleted(ctx, r.db, "projects", "project_id", projectID, deletedBy, at)
}

// markDeleted soft-deletes one live row of table.
func markDeleted(ctx context.Context, db querier, table, idColumn, id, deletedBy string, at time.Time) error {
	query := `UPDATE ` + table + ` SET is_deleted = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE ` + idColumn + ` = $1 AND NOT is_deleted;`
	return execOne(ctx, db, table, query, id, at, deletedBy)
}
