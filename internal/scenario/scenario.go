// Package scenario holds the scripted demo data the assembler builds every
// response from. A Table is a plain value: callers receive copies, so nothing
// downstream can change what the next request sees.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mr1hm/mycelium/internal/models"
)

type Responder struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Role          string            `yaml:"role"`
	Start         models.Coordinate `yaml:"start_loc"`
	DefaultStatus string            `yaml:"default_status"`
}

type Table struct {
	DisasterPoint models.Coordinate       `yaml:"disaster_point"`
	Volunteer     Responder               `yaml:"volunteer"`
	Team          Responder               `yaml:"team"`
	Analysis      models.AIAnalysisResult `yaml:"analysis"`
}

const (
	VolunteerPathColor = "#808080"
	TeamPathColor      = "#FF0000"
)

var defaultTable = Table{
	DisasterPoint: models.Coordinate{Lat: 25.033964, Lng: 121.564468},
	Volunteer: Responder{
		ID:            "vol_001",
		Name:          "Alex Chen",
		Role:          "Civilian Volunteer",
		Start:         models.Coordinate{Lat: 25.032500, Lng: 121.563000},
		DefaultStatus: "standby",
	},
	Team: Responder{
		ID:            "team_hazmat_05",
		Name:          "Hazmat Unit 05",
		Role:          "Professional Response",
		Start:         models.Coordinate{Lat: 25.040000, Lng: 121.570000},
		DefaultStatus: "standby",
	},
	Analysis: models.AIAnalysisResult{
		SeverityScore:  9,
		RiskAssessment: "CRITICAL RISK DETECTED. Visual confirmation of structural collapse combined with audio signature of high-pressure gas leak.",
		ReasoningLog: "STEP 1: PERCEPTION > Image analysis detects 45-degree tilt in load-bearing wall. Audio transcription identifies 'hissing' sound consistent with gas line rupture.\n" +
			"STEP 2: SIMULATION > Projecting blast radius. 300m zone is lethal for unprotected personnel.\n" +
			"STEP 3: DECISION > Volunteer Alex Chen (ID: vol_001) lacks PPE. Intercepting. Deploying Hazmat Unit 05 immediately.",
		ActionPlan: " Protocol Omega Activated. Rerouting all civilian traffic. Authorizing Hazmat Unit deployment.",
	},
}

// Default returns the built-in demo table.
func Default() Table {
	return defaultTable
}

// Load returns the default table with any fields from the YAML file at path
// laid over it. An empty path yields the default table unchanged.
func Load(path string) (Table, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("error reading scenario file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Table{}, fmt.Errorf("error decoding scenario file %s: %w", path, err)
	}

	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

func (t Table) Validate() error {
	if t.Volunteer.ID == "" || t.Team.ID == "" {
		return fmt.Errorf("scenario responders must have ids")
	}
	if t.Volunteer.ID == t.Team.ID {
		return fmt.Errorf("scenario responder ids must differ: %s", t.Volunteer.ID)
	}
	for name, c := range map[string]models.Coordinate{
		"disaster_point":      t.DisasterPoint,
		"volunteer.start_loc": t.Volunteer.Start,
		"team.start_loc":      t.Team.Start,
	} {
		if !finite(c) {
			return fmt.Errorf("scenario %s is not a finite coordinate", name)
		}
	}
	return nil
}

func finite(c models.Coordinate) bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) && !math.IsNaN(c.Lng) && !math.IsInf(c.Lng, 0)
}
