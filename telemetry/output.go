package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/Dev2150/prismata/config"
)

// CreatureRow is one creature in the end-of-run population dump.
type CreatureRow struct {
	ID         uint64  `csv:"id"`
	SpeciesID  int32   `csv:"species_id"`
	Species    string  `csv:"species"`
	Generation int32   `csv:"generation"`
	State      string  `csv:"state"`
	PosX       float32 `csv:"pos_x"`
	PosZ       float32 `csv:"pos_z"`
	Age        float32 `csv:"age"`
	Lifespan   float32 `csv:"lifespan"`
	Mass       float32 `csv:"mass"`
	EnergyFrac float32 `csv:"energy_frac"`
	MaxSpeed   float32 `csv:"max_speed"`
	Vision     float32 `csv:"vision"`
	Herbivory  float32 `csv:"herbivory"`
	Carnivory  float32 `csv:"carnivory"`
}

// SpeciesRow is one species record in the end-of-run species dump.
// Extinct species are included; the all-time count never resets.
type SpeciesRow struct {
	ID           int32  `csv:"id"`
	Name         string `csv:"name"`
	LivingCount  int    `csv:"living"`
	AllTimeCount int    `csv:"all_time"`
	Extinct      bool   `csv:"extinct"`
}

// OutputManager owns the run's output directory and its CSV files.
// A nil OutputManager is valid and discards everything.
type OutputManager struct {
	dir           string
	telemetryFile *os.File

	telemetryHeaderWritten bool
}

// NewOutputManager creates the output directory and opens the rolling
// telemetry file. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetryFile = f

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.telemetryHeaderWritten {
		if err := gocsv.Marshal(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.telemetryHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}

	return nil
}

// WriteCreatures writes the full population dump to creatures.csv.
func (om *OutputManager) WriteCreatures(rows []CreatureRow) error {
	if om == nil {
		return nil
	}

	f, err := os.Create(filepath.Join(om.dir, "creatures.csv"))
	if err != nil {
		return fmt.Errorf("creating creatures.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing creatures: %w", err)
	}
	return nil
}

// WriteSpecies writes the species ledger to species.csv.
func (om *OutputManager) WriteSpecies(rows []SpeciesRow) error {
	if om == nil {
		return nil
	}

	f, err := os.Create(filepath.Join(om.dir, "species.csv"))
	if err != nil {
		return fmt.Errorf("creating species.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing species: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes the rolling output files.
func (om *OutputManager) Close() error {
	if om == nil || om.telemetryFile == nil {
		return nil
	}
	return om.telemetryFile.Close()
}
