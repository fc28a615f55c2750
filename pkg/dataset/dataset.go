// Package dataset loads the YAML roster and metric files produced by the
// data-entry layer. It is the only place input files are parsed; the
// computation itself never touches the filesystem.
package dataset

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/bonuspool/pkg/core/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ParticipantRow is one roster entry in the dataset file.
type ParticipantRow struct {
	ID              string  `yaml:"id" validate:"required"`
	Name            string  `yaml:"name" validate:"required"`
	Role            string  `yaml:"role,omitempty"`
	RoleCoefficient float64 `yaml:"roleCoefficient,omitempty" validate:"omitempty,gt=0"`
	TenureMonths    int     `yaml:"tenureMonths" validate:"gte=0"`
	Certified       bool    `yaml:"certified"`
}

// MetricRow is one evaluation-period record in the dataset file.
type MetricRow struct {
	Participant string  `yaml:"participant" validate:"required"`
	Period      string  `yaml:"period,omitempty"`
	Attendance  float64 `yaml:"attendance" validate:"gte=0"`
	Discharges  float64 `yaml:"discharges" validate:"gte=0"`
	BedDays     float64 `yaml:"bedDays" validate:"gte=0"`
	Revenue     float64 `yaml:"revenue" validate:"gte=0"`
	Adjustment  float64 `yaml:"adjustment,omitempty"`
}

// File is the on-disk shape of a dataset.
type File struct {
	Participants []ParticipantRow `yaml:"participants" validate:"required,min=1,dive"`
	Metrics      []MetricRow      `yaml:"metrics" validate:"dive"`
}

// Dataset is the loaded, validated input for one computation.
type Dataset struct {
	Participants []model.Participant
	Records      []model.MetricRecord
}

// Load reads, parses and validates a dataset file.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file: %w", err)
	}

	return FromFile(&file)
}

// FromFile validates a parsed dataset file and converts it to model types.
// Duplicate participant IDs are rejected; metric rows must reference a
// roster entry.
func FromFile(file *File) (*Dataset, error) {
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("dataset validation failed: %w", err)
	}

	seen := make(map[string]bool, len(file.Participants))
	ds := &Dataset{
		Participants: make([]model.Participant, 0, len(file.Participants)),
		Records:      make([]model.MetricRecord, 0, len(file.Metrics)),
	}

	for _, row := range file.Participants {
		if seen[row.ID] {
			return nil, fmt.Errorf("duplicate participant id %q", row.ID)
		}
		seen[row.ID] = true
		ds.Participants = append(ds.Participants, model.Participant{
			ID:              row.ID,
			Name:            row.Name,
			Role:            row.Role,
			RoleCoefficient: row.RoleCoefficient,
			TenureMonths:    row.TenureMonths,
			Certified:       row.Certified,
		})
	}

	for i, row := range file.Metrics {
		if !seen[row.Participant] {
			return nil, fmt.Errorf("metrics[%d] references unknown participant %q", i, row.Participant)
		}
		ds.Records = append(ds.Records, model.MetricRecord{
			ParticipantID: row.Participant,
			Period:        row.Period,
			Attendance:    row.Attendance,
			Discharges:    row.Discharges,
			BedDays:       row.BedDays,
			Revenue:       row.Revenue,
			Adjustment:    row.Adjustment,
		})
	}

	return ds, nil
}
