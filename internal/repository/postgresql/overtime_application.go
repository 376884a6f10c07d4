package postgresql

import (
	"context"
	"errors"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/domain/overtime"
	"github.com/attendhub/attend-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type overtimeApplicationRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeApplicationRepository(db *database.DB) overtime.ApplicationRepository {
	return &overtimeApplicationRepositoryImpl{db: db}
}

const overtimeApplicationColumns = `
	a.id, a.category, a.requester_id, a.requester_role,
	a.start_date, a.start_node, a.end_date, a.end_node,
	a.reason, a.days, a.status, a.assigned_approver_id,
	a.submitted_at, a.created_at, a.updated_at,
	u.real_name AS requester_name, ap.real_name AS approver_name`

const overtimeApplicationJoins = `
	FROM overtime_applications a
	LEFT JOIN users u ON u.id = a.requester_id
	LEFT JOIN users ap ON ap.id = a.assigned_approver_id`

func scanOvertimeApplication(row pgx.Row) (overtime.Application, error) {
	var (
		app        overtime.Application
		approverID string
	)
	err := row.Scan(
		&app.ID,
		&app.Category,
		&app.Workflow.RequesterID,
		&app.Workflow.RequesterRole,
		&app.StartDate,
		&app.StartNode,
		&app.EndDate,
		&app.EndNode,
		&app.Reason,
		&app.Workflow.Days,
		&app.Workflow.Status,
		&approverID,
		&app.SubmittedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
		&app.RequesterName,
		&app.ApproverName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return overtime.Application{}, overtime.ErrApplicationNotFound
	}
	if err != nil {
		return overtime.Application{}, err
	}

	app.Workflow.Kind = approval.KindOvertime
	app.Workflow.Assignees = map[approval.Stage]string{approval.StageAssigned: approverID}
	return app, nil
}

// Create implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) Create(ctx context.Context, app overtime.Application) (overtime.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_applications (
			id, category, requester_id, requester_role,
			start_date, start_node, end_date, end_node,
			reason, days, status, assigned_approver_id,
			submitted_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			NOW(), NOW(), NOW()
		)
		RETURNING submitted_at, created_at, updated_at
	`
	app.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		app.ID, app.Category, app.Workflow.RequesterID, app.Workflow.RequesterRole,
		app.StartDate, app.StartNode, app.EndDate, app.EndNode,
		app.Reason, app.Workflow.Days, app.Workflow.Status,
		app.Workflow.Assignees[approval.StageAssigned],
	).Scan(&app.SubmittedAt, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return overtime.Application{}, err
	}
	return app, nil
}

// GetByID implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeApplicationColumns + overtimeApplicationJoins + ` WHERE a.id = $1`
	app, err := scanOvertimeApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		return overtime.Application{}, err
	}

	app.Workflow.Steps, err = listSteps(ctx, q, approval.KindOvertime, id)
	if err != nil {
		return overtime.Application{}, err
	}
	return app, nil
}

// ListByRequester implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) ListByRequester(ctx context.Context, requesterID string) ([]overtime.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeApplicationColumns + overtimeApplicationJoins + `
		WHERE a.requester_id = $1
		ORDER BY a.submitted_at DESC`
	return r.list(ctx, q, query, requesterID)
}

// ListPendingForApprover implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) ListPendingForApprover(ctx context.Context, approverID string) ([]overtime.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeApplicationColumns + overtimeApplicationJoins + `
		WHERE a.status = $1 AND a.assigned_approver_id = $2
		ORDER BY a.submitted_at`
	return r.list(ctx, q, query, approval.StatusPending, approverID)
}

func (r *overtimeApplicationRepositoryImpl) list(ctx context.Context, q database.Querier, query string, args ...any) ([]overtime.Application, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []overtime.Application
	for rows.Next() {
		app, err := scanOvertimeApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// Update implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) Update(ctx context.Context, app overtime.Application) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_applications
		SET category = $1, start_date = $2, start_node = $3,
		    end_date = $4, end_node = $5, reason = $6, days = $7,
		    updated_at = NOW()
		WHERE id = $8 AND status = $9
	`
	tag, err := q.Exec(ctx, query,
		app.Category, app.StartDate, app.StartNode,
		app.EndDate, app.EndNode, app.Reason, app.Workflow.Days,
		app.ID, approval.StatusPending,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// The application moved past pending while the edit was in flight.
		return overtime.ErrNotPending
	}
	return nil
}

// ApplyDecision implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) ApplyDecision(ctx context.Context, id string, from, to approval.Status, step approval.Step) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, r.db)

		query := `
			UPDATE overtime_applications
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND status = $3
		`
		tag, err := q.Exec(txCtx, query, to, id, from)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return approval.ErrOutOfOrder
		}

		return insertStep(txCtx, q, approval.KindOvertime, id, step)
	})
}

// UpdateStatus implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to approval.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_applications
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`
	tag, err := q.Exec(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return approval.ErrOutOfOrder
	}
	return nil
}

// Delete implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM overtime_applications WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
