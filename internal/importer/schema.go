package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of an athlete import file. Schools
// and events carry file-local refs that interactions point at.
type ImportSchema struct {
	Athlete        AthleteImport       `json:"athlete" yaml:"athlete"`
	Schools        []SchoolImport      `json:"schools" yaml:"schools"`
	Events         []EventImport       `json:"events,omitempty" yaml:"events,omitempty"`
	Interactions   []InteractionImport `json:"interactions,omitempty" yaml:"interactions,omitempty"`
	Videos         []VideoImport       `json:"videos,omitempty" yaml:"videos,omitempty"`
	CompletedTasks []string            `json:"completed_tasks,omitempty" yaml:"completed_tasks,omitempty"`
}

type AthleteImport struct {
	Name           string `json:"name" yaml:"name"`
	GraduationYear int    `json:"graduation_year" yaml:"graduation_year"`
	Committed      bool   `json:"committed,omitempty" yaml:"committed,omitempty"`
}

type SchoolImport struct {
	Ref      string   `json:"ref" yaml:"ref"`
	Name     string   `json:"name" yaml:"name"`
	Priority string   `json:"priority,omitempty" yaml:"priority,omitempty"`
	Status   string   `json:"status,omitempty" yaml:"status,omitempty"`
	Division string   `json:"division,omitempty" yaml:"division,omitempty"`
	FitScore *float64 `json:"fit_score,omitempty" yaml:"fit_score,omitempty"`
}

type EventImport struct {
	Ref       string  `json:"ref" yaml:"ref"`
	SchoolRef *string `json:"school_ref,omitempty" yaml:"school_ref,omitempty"`
	Name      string  `json:"name" yaml:"name"`
	Date      string  `json:"date" yaml:"date"`
	Attended  bool    `json:"attended,omitempty" yaml:"attended,omitempty"`
}

type InteractionImport struct {
	SchoolRef *string `json:"school_ref,omitempty" yaml:"school_ref,omitempty"`
	EventRef  *string `json:"event_ref,omitempty" yaml:"event_ref,omitempty"`
	CoachID   *string `json:"coach_id,omitempty" yaml:"coach_id,omitempty"`
	Type      string  `json:"type" yaml:"type"`
	Date      string  `json:"date" yaml:"date"`
	Notes     string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type VideoImport struct {
	Title  string `json:"title" yaml:"title"`
	URL    string `json:"url" yaml:"url"`
	Health string `json:"health,omitempty" yaml:"health,omitempty"`
}

// LoadImportSchema reads an import file. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON decodes a JSON import document, rejecting unknown fields.
func ParseJSON(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// ParseYAML decodes a YAML import document, rejecting unknown fields.
func ParseYAML(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
