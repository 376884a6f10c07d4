package postgresql

import (
	"context"
	"errors"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/domain/leave"
	"github.com/attendhub/attend-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveApplicationRepositoryImpl struct {
	db *database.DB
}

func NewLeaveApplicationRepository(db *database.DB) leave.ApplicationRepository {
	return &leaveApplicationRepositoryImpl{db: db}
}

const leaveApplicationColumns = `
	a.id, a.leave_type_id, a.requester_id, a.requester_role,
	a.start_date, a.start_node, a.end_date, a.end_node,
	a.reason, a.days, a.status,
	a.dept_assignee_id, a.vp_assignee_id, a.gm_assignee_id,
	a.submitted_at, a.created_at, a.updated_at,
	lt.name AS leave_type_name, u.real_name AS requester_name`

const leaveApplicationJoins = `
	FROM leave_applications a
	LEFT JOIN leave_types lt ON lt.id = a.leave_type_id
	LEFT JOIN users u ON u.id = a.requester_id`

func scanLeaveApplication(row pgx.Row) (leave.Application, error) {
	var (
		app                                  leave.Application
		deptAssignee, vpAssignee, gmAssignee *string
	)
	err := row.Scan(
		&app.ID,
		&app.LeaveTypeID,
		&app.Workflow.RequesterID,
		&app.Workflow.RequesterRole,
		&app.StartDate,
		&app.StartNode,
		&app.EndDate,
		&app.EndNode,
		&app.Reason,
		&app.Workflow.Days,
		&app.Workflow.Status,
		&deptAssignee,
		&vpAssignee,
		&gmAssignee,
		&app.SubmittedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
		&app.LeaveTypeName,
		&app.RequesterName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Application{}, leave.ErrApplicationNotFound
	}
	if err != nil {
		return leave.Application{}, err
	}

	app.Workflow.Kind = approval.KindLeave
	app.Workflow.Assignees = assigneeMap(deptAssignee, vpAssignee, gmAssignee, nil)
	return app, nil
}

func assigneeMap(dept, vp, gm, assigned *string) map[approval.Stage]string {
	m := make(map[approval.Stage]string)
	if dept != nil {
		m[approval.StageDept] = *dept
	}
	if vp != nil {
		m[approval.StageVP] = *vp
	}
	if gm != nil {
		m[approval.StageGM] = *gm
	}
	if assigned != nil {
		m[approval.StageAssigned] = *assigned
	}
	return m
}

func assigneeColumns(assignees map[approval.Stage]string) (dept, vp, gm *string) {
	if id, ok := assignees[approval.StageDept]; ok {
		dept = &id
	}
	if id, ok := assignees[approval.StageVP]; ok {
		vp = &id
	}
	if id, ok := assignees[approval.StageGM]; ok {
		gm = &id
	}
	return dept, vp, gm
}

// Create implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) Create(ctx context.Context, app leave.Application) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	required := app.Workflow.RequiredStages()
	currentStage := required[0]
	dept, vp, gm := assigneeColumns(app.Workflow.Assignees)

	query := `
		INSERT INTO leave_applications (
			id, leave_type_id, requester_id, requester_role,
			start_date, start_node, end_date, end_node,
			reason, days, status, current_stage,
			dept_assignee_id, vp_assignee_id, gm_assignee_id,
			submitted_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			NOW(), NOW(), NOW()
		)
		RETURNING submitted_at, created_at, updated_at
	`
	app.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		app.ID, app.LeaveTypeID, app.Workflow.RequesterID, app.Workflow.RequesterRole,
		app.StartDate, app.StartNode, app.EndDate, app.EndNode,
		app.Reason, app.Workflow.Days, app.Workflow.Status, currentStage,
		dept, vp, gm,
	).Scan(&app.SubmittedAt, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return leave.Application{}, err
	}
	return app, nil
}

// GetByID implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveApplicationColumns + leaveApplicationJoins + ` WHERE a.id = $1`
	app, err := scanLeaveApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		return leave.Application{}, err
	}

	app.Workflow.Steps, err = listSteps(ctx, q, approval.KindLeave, id)
	if err != nil {
		return leave.Application{}, err
	}
	return app, nil
}

// ListByRequester implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ListByRequester(ctx context.Context, requesterID string) ([]leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveApplicationColumns + leaveApplicationJoins + `
		WHERE a.requester_id = $1
		ORDER BY a.submitted_at DESC`
	return r.list(ctx, q, query, requesterID)
}

// ListPendingForApprover implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ListPendingForApprover(ctx context.Context, approverID string, stage approval.Stage) ([]leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	var assigneeColumn string
	switch stage {
	case approval.StageDept:
		assigneeColumn = "a.dept_assignee_id"
	case approval.StageVP:
		assigneeColumn = "a.vp_assignee_id"
	case approval.StageGM:
		assigneeColumn = "a.gm_assignee_id"
	default:
		return nil, nil
	}

	query := `SELECT ` + leaveApplicationColumns + leaveApplicationJoins + `
		WHERE a.current_stage = $1 AND ` + assigneeColumn + ` = $2
		ORDER BY a.submitted_at`
	return r.list(ctx, q, query, stage, approverID)
}

func (r *leaveApplicationRepositoryImpl) list(ctx context.Context, q database.Querier, query string, args ...any) ([]leave.Application, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []leave.Application
	for rows.Next() {
		app, err := scanLeaveApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// ApplyDecision implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ApplyDecision(ctx context.Context, id string, from, to approval.Status, nextStage *approval.Stage, step approval.Step) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, r.db)

		query := `
			UPDATE leave_applications
			SET status = $1, current_stage = $2, updated_at = NOW()
			WHERE id = $3 AND status = $4
		`
		tag, err := q.Exec(txCtx, query, to, nextStage, id, from)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			// Another decision landed first; the caller's snapshot is stale.
			return approval.ErrOutOfOrder
		}

		return insertStep(txCtx, q, approval.KindLeave, id, step)
	})
}

// UpdateStatus implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to approval.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications
		SET status = $1, current_stage = NULL, updated_at = NOW()
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

// Delete implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_applications WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
