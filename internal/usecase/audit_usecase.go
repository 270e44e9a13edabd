package usecase

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// AuditUsecase は監査ログの閲覧（管理者専用）
type AuditUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditUsecase(auditRepo repo.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo}
}

type AuditLogOutput struct {
	ID           int64  `json:"id"`
	ActorUserID  string `json:"actor_user_id"`
	Action       string `json:"action"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	Before       string `json:"before"`
	After        string `json:"after"`
	CreatedAt    int64  `json:"created_at"`
}

type AuditListInput struct {
	ActorUserID  *string
	Action       *string
	ResourceType *string
	ResourceID   *string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

func (u *AuditUsecase) List(ctx context.Context, in AuditListInput) ([]AuditLogOutput, error) {
	if in.Limit < 1 || in.Limit > 200 {
		in.Limit = 50
	}
	if in.Offset < 0 {
		in.Offset = 0
	}

	filter := repo.AuditLogFilter{
		ActorUserID: in.ActorUserID,
		ResourceID:  in.ResourceID,
		CreatedFrom: in.From,
		CreatedTo:   in.To,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	if in.Action != nil {
		a := model.AuditAction(*in.Action)
		filter.Action = &a
	}
	if in.ResourceType != nil {
		t := model.AuditResourceType(*in.ResourceType)
		filter.ResourceType = &t
	}

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]AuditLogOutput, 0, len(logs))
	for _, l := range logs {
		out = append(out, AuditLogOutput{
			ID:           l.ID,
			ActorUserID:  l.ActorUserID,
			Action:       string(l.Action),
			ResourceType: string(l.ResourceType),
			ResourceID:   l.ResourceID,
			Before:       l.BeforeJSON,
			After:        l.AfterJSON,
			CreatedAt:    millis(l.CreatedAt),
		})
	}
	return out, nil
}
