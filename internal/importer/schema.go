package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a plan file. A plan carries one
// project with either phases or a recurring estimate, plus optional events
// and holidays.
type ImportSchema struct {
	Project   ProjectImport    `json:"project" yaml:"project"`
	Phases    []PhaseImport    `json:"phases,omitempty" yaml:"phases,omitempty"`
	Recurring *RecurringImport `json:"recurring,omitempty" yaml:"recurring,omitempty"`
	Events    []EventImport    `json:"events,omitempty" yaml:"events,omitempty"`
	Holidays  []HolidayImport  `json:"holidays,omitempty" yaml:"holidays,omitempty"`
}

type ProjectImport struct {
	Name           string  `json:"name" yaml:"name"`
	ClientID       string  `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	StartDate      string  `json:"start_date" yaml:"start_date"`
	EndDate        *string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Continuous     bool    `json:"continuous,omitempty" yaml:"continuous,omitempty"`
	EstimatedHours float64 `json:"estimated_hours" yaml:"estimated_hours"`
	Color          string  `json:"color,omitempty" yaml:"color,omitempty"`
}

type PhaseImport struct {
	Name      string  `json:"name" yaml:"name"`
	StartDate string  `json:"start_date" yaml:"start_date"`
	EndDate   string  `json:"end_date" yaml:"end_date"`
	Hours     float64 `json:"hours" yaml:"hours"`
}

type RecurringImport struct {
	Pattern            string   `json:"pattern" yaml:"pattern"`
	Interval           int      `json:"interval,omitempty" yaml:"interval,omitempty"`
	Weekdays           []string `json:"weekdays,omitempty" yaml:"weekdays,omitempty"`
	DayOfMonth         int      `json:"day_of_month,omitempty" yaml:"day_of_month,omitempty"`
	HoursPerOccurrence float64  `json:"hours_per_occurrence" yaml:"hours_per_occurrence"`
}

// EventImport is a calendar event. Events belong to the imported project
// unless Unassigned is set.
type EventImport struct {
	Title      string `json:"title" yaml:"title"`
	Start      string `json:"start" yaml:"start"`
	End        string `json:"end" yaml:"end"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Category   string `json:"category,omitempty" yaml:"category,omitempty"`
	Completed  bool   `json:"completed,omitempty" yaml:"completed,omitempty"`
	Unassigned bool   `json:"unassigned,omitempty" yaml:"unassigned,omitempty"`
}

type HolidayImport struct {
	Date      string `json:"date" yaml:"date"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Recurring bool   `json:"recurring,omitempty" yaml:"recurring,omitempty"`
}

// LoadImportSchema reads a plan file. Files ending in .yaml or .yml are
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

func ParseJSON(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

func ParseYAML(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
