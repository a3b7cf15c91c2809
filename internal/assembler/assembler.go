package assembler

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mr1hm/mycelium/internal/gemini"
	"github.com/mr1hm/mycelium/internal/models"
	"github.com/mr1hm/mycelium/internal/scenario"
)

const DefaultTranscript = "Help! Gas leak!"

type Analyzer interface {
	Analyze(ctx context.Context, req gemini.Request) gemini.Outcome
}

type Assembler struct {
	table    scenario.Table
	analyzer Analyzer
	now      func() time.Time
}

func New(table scenario.Table, analyzer Analyzer) *Assembler {
	if analyzer == nil {
		analyzer = gemini.Disabled()
	}
	return &Assembler{
		table:    table,
		analyzer: analyzer,
		now:      time.Now,
	}
}

func (a *Assembler) Assemble(ctx context.Context, image []byte, mimeType, contextText string) models.DisasterResponse {
	resp, _ := a.AssembleWithOutcome(ctx, image, mimeType, contextText)
	return resp
}

// AssembleWithOutcome runs the model call and returns its outcome next to
// the response so callers can record it.
func (a *Assembler) AssembleWithOutcome(ctx context.Context, image []byte, mimeType, contextText string) (models.DisasterResponse, gemini.Outcome) {
	if strings.TrimSpace(contextText) == "" {
		contextText = DefaultTranscript
	}

	outcome := a.analyzer.Analyze(ctx, gemini.Request{
		Image:    image,
		MimeType: mimeType,
		Context:  contextText,
	})
	slog.Debug("model call finished",
		"status", outcome.Status,
		"latency", outcome.Latency,
		"error", outcome.ErrorString(),
	)

	return Build(a.table, outcome, a.now()), outcome
}

// Build produces the scripted response. The model outcome is accepted but
// not read: every field comes from the scenario table.
func Build(table scenario.Table, _ gemini.Outcome, now time.Time) models.DisasterResponse {
	target := table.DisasterPoint

	volunteer := models.MapUpdate{
		VolunteerID:     table.Volunteer.ID,
		Name:            table.Volunteer.Name,
		Role:            table.Volunteer.Role,
		Status:          models.MapUpdateStatusInactive,
		Action:          models.MapActionHold,
		CurrentLocation: table.Volunteer.Start,
		TargetLocation:  nil,
		PathColor:       scenario.VolunteerPathColor,
	}

	team := models.MapUpdate{
		VolunteerID:     table.Team.ID,
		Name:            table.Team.Name,
		Role:            table.Team.Role,
		Status:          models.MapUpdateStatusActive,
		Action:          models.MapActionDispatch,
		CurrentLocation: table.Team.Start,
		TargetLocation:  &target,
		PathColor:       scenario.TeamPathColor,
	}

	return models.DisasterResponse{
		Status:     models.ResponseStatusSuccess,
		Timestamp:  models.FormatTimestamp(now),
		AIAnalysis: table.Analysis,
		MapUpdates: []models.MapUpdate{volunteer, team},
	}
}
