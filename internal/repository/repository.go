package repository

import (
	"context"

	"github.com/mr1hm/mycelium/internal/models"
)

type Filter struct {
	Limit    int
	Offset   int
	AIStatus *models.AIStatus
}

type AnalysisRepository interface {
	Add(ctx context.Context, r *models.AnalysisRecord) error
	GetByID(ctx context.Context, id string) (*models.AnalysisRecord, error)
	List(ctx context.Context, opts Filter) ([]models.AnalysisRecord, error)
}
