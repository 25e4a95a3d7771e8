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

// PgxFollowUpRepository stores follow-ups and their notes.
type PgxFollowUpRepository struct {
	BaseRepository
}

var _ portsrepo.FollowUpRepositoryFacade = (*PgxFollowUpRepository)(nil)

const followUpColumns = `follow_up_id, enquiry_id, follow_up_date, follow_up_time, status, notes, agent_name, agent_id,
	completed_at, ` + auditColumns

const followUpNodeColumns = `follow_up_node_id, follow_up_id, follow_up_date_time, body, agent_name, user_id, is_deleted`

func (r *PgxFollowUpRepository) FindFollowUpByID(ctx context.Context, followUpID string) (*domain.FollowUp, error) {
	query := `SELECT ` + followUpColumns + ` FROM follow_ups WHERE follow_up_id = $1 AND NOT is_deleted;`
	m, err := collectOne[models.FollowUp](ctx, r.db, query, followUpID)
	if err != nil {
		return nil, wrapFind(err, "follow-up", followUpID)
	}
	f := mapping.ToDomainFollowUp(m)
	return &f, nil
}

func (r *PgxFollowUpRepository) ListFollowUps(ctx context.Context, filter portsrepo.FollowUpFilter) ([]domain.FollowUp, error) {
	var dueBy *time.Time
	if filter.DueOnOrBefore != nil {
		d := filter.DueOnOrBefore.UTC()
		dueBy = &d
	}
	query := `
		SELECT ` + followUpColumns + ` FROM follow_ups
		WHERE NOT is_deleted
			AND ($1 = '' OR enquiry_id = $1)
			AND ($2 = '' OR status = $2)
			AND ($3::date IS NULL OR follow_up_date <= $3::date)
		ORDER BY follow_up_date, follow_up_time, follow_up_id;`
	ms, err := collectAll[models.FollowUp](ctx, r.db, query, filter.EnquiryID, string(filter.Status), dueBy)
	if err != nil {
		return nil, fmt.Errorf("failed to query follow-ups: %w", err)
	}
	return mapping.ToDomainFollowUpSlice(ms), nil
}

func (r *PgxFollowUpRepository) ListNodes(ctx context.Context, followUpID string) ([]domain.FollowUpNode, error) {
	query := `SELECT ` + followUpNodeColumns + ` FROM follow_up_nodes
		WHERE follow_up_id = $1 AND NOT is_deleted ORDER BY follow_up_date_time, follow_up_node_id;`
	ms, err := collectAll[models.FollowUpNode](ctx, r.db, query, followUpID)
	if err != nil {
		return nil, fmt.Errorf("failed to query follow-up notes: %w", err)
	}
	return mapping.ToDomainFollowUpNodeSlice(ms), nil
}

func (r *PgxFollowUpRepository) SaveFollowUp(ctx context.Context, followUp domain.FollowUp) error {
	m := mapping.ToModelFollowUp(followUp)
	query := `INSERT INTO follow_ups (` + followUpColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, $10, $11, $12, $13);`
	if _, err := r.db.Exec(ctx, query, m.FollowUpID, m.EnquiryID, m.FollowUpDate, m.FollowUpTime, m.Status, m.Notes,
		m.AgentName, m.AgentID, m.CompletedAt, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return mapWriteError(err, "follow-up")
	}
	return nil
}

func (r *PgxFollowUpRepository) UpdateFollowUp(ctx context.Context, followUp domain.FollowUp) error {
	m := mapping.ToModelFollowUp(followUp)
	query := `
		UPDATE follow_ups
		SET follow_up_date = $2, follow_up_time = $3, status = $4, notes = $5, agent_name = $6, agent_id = $7,
			completed_at = $8, last_updated_at = $9, last_updated_by = $10
		WHERE follow_up_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "follow-up", query, m.FollowUpID, m.FollowUpDate, m.FollowUpTime, m.Status, m.Notes,
		m.AgentName, m.AgentID, m.CompletedAt, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxFollowUpRepository) SaveNode(ctx context.Context, node domain.FollowUpNode) error {
	m := mapping.ToModelFollowUpNode(node)
	query := `INSERT INTO follow_up_nodes (` + followUpNodeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	if _, err := r.db.Exec(ctx, query, m.FollowUpNodeID, m.FollowUpID, m.FollowUpDateTime, m.Body, m.AgentName,
		m.UserID, m.IsDeleted); err != nil {
		return mapWriteError(err, "follow-up note")
	}
	return nil
}
