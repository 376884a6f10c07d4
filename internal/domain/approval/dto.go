package approval

import "time"

type StepResponse struct {
	ID         string    `json:"id"`
	Stage      Stage     `json:"stage"`
	ApproverID string    `json:"approver_id"`
	Decision   Decision  `json:"decision"`
	Comment    string    `json:"comment,omitempty"`
	DecidedAt  time.Time `json:"decided_at"`
}

func StepResponses(steps []Step) []StepResponse {
	out := make([]StepResponse, 0, len(steps))
	for _, s := range steps {
		out = append(out, StepResponse{
			ID:         s.ID,
			Stage:      s.Stage,
			ApproverID: s.ApproverID,
			Decision:   s.Decision,
			Comment:    s.Comment,
			DecidedAt:  s.DecidedAt,
		})
	}
	return out
}
