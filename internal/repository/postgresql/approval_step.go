package postgresql

import (
	"context"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

// approval_steps is append-only: rows are written once per decision and
// never updated. Both aggregates share it, distinguished by kind.

func insertStep(ctx context.Context, q database.Querier, kind approval.Kind, applicationID string, step approval.Step) error {
	query := `
		INSERT INTO approval_steps (
			id, kind, application_id, stage, approver_id, decision, comment, decided_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query,
		uuid.NewString(), kind, applicationID,
		step.Stage, step.ApproverID, step.Decision, step.Comment, step.DecidedAt,
	)
	return err
}

func listSteps(ctx context.Context, q database.Querier, kind approval.Kind, applicationID string) ([]approval.Step, error) {
	query := `
		SELECT id, stage, approver_id, decision, comment, decided_at
		FROM approval_steps
		WHERE kind = $1 AND application_id = $2
		ORDER BY decided_at
	`
	rows, err := q.Query(ctx, query, kind, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []approval.Step
	for rows.Next() {
		var step approval.Step
		if err := rows.Scan(
			&step.ID,
			&step.Stage,
			&step.ApproverID,
			&step.Decision,
			&step.Comment,
			&step.DecidedAt,
		); err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}
