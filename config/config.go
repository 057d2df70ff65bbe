// Package config provides configuration loading and access for the
// simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation parameters.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Perception   PerceptionConfig   `yaml:"perception"`
	Behavior     BehaviorConfig     `yaml:"behavior"`
	Energy       EnergyConfig       `yaml:"energy"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Species      SpeciesConfig      `yaml:"species"`
	Plants       PlantsConfig       `yaml:"plants"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world dimensions and tick parameters.
type WorldConfig struct {
	Width           float64 `yaml:"width"`             // World width in world units
	Depth           float64 `yaml:"depth"`             // World depth in world units
	SeaLevel        float64 `yaml:"sea_level"`         // Water table elevation
	SpatialCellSize float64 `yaml:"spatial_cell_size"` // Uniform grid cell size
	SpeedMultiplier float64 `yaml:"speed_multiplier"`  // Scales dt before each tick
}

// PopulationConfig holds initial population parameters.
type PopulationConfig struct {
	InitialCreatures int `yaml:"initial_creatures"`
	InitialPlants    int `yaml:"initial_plants"`
}

// PerceptionConfig holds perception tuning.
type PerceptionConfig struct {
	// MateLibidoThreshold is the candidate Libido urgency above which a
	// same-species creature registers as a potential mate. Deliberately
	// looser than reproduction.pairing_libido_threshold: perception
	// casts a wider net than commitment.
	MateLibidoThreshold float64 `yaml:"mate_libido_threshold"`
	PredatorMassRatio   float64 `yaml:"predator_mass_ratio"`  // Mass factor to out-class an observer
	DietThreshold       float64 `yaml:"diet_threshold"`       // Min carnivory to register as a predator
	AdjacencyEpsilon    float64 `yaml:"adjacency_epsilon"`    // Distance inside which the FOV cone is bypassed
	WaterQueryInterval  float64 `yaml:"water_query_interval"` // Seconds between terrain water queries
	WaterSearchRadius   float64 `yaml:"water_search_radius"`
}

// BehaviorConfig holds state machine tuning.
type BehaviorConfig struct {
	MeleeRange       float64 `yaml:"melee_range"`       // Hunting bite distance
	GrazeRange       float64 `yaml:"graze_range"`       // Plant feeding distance
	DrinkRadius      float64 `yaml:"drink_radius"`      // Water satisfying distance
	DrinkRate        float64 `yaml:"drink_rate"`        // Thirst satisfied per second
	EatRate          float64 `yaml:"eat_rate"`          // Nutrition drawn from plants per second
	HuntRate         float64 `yaml:"hunt_rate"`         // Energy drawn from prey per second
	VelocityLag      float64 `yaml:"velocity_lag"`      // First-order smoothing rate (per second)
	WanderJitter     float64 `yaml:"wander_jitter"`     // Heading noise for the random walk
	SeekMateSpeed    float64 `yaml:"seek_mate_speed"`   // Speed fraction while approaching a mate
	SleepRecovery    float64 `yaml:"sleep_recovery"`    // Energy per second while sleeping
	SleepSatisfyRate float64 `yaml:"sleep_satisfy_rate"`
	HungerPerEnergy  float64 `yaml:"hunger_per_energy"` // Hunger satisfied per unit energy eaten
}

// EnergyConfig holds the metabolic cost model.
type EnergyConfig struct {
	BaseCost         float64 `yaml:"base_cost"`           // Drain per second for existing
	MoveCost         float64 `yaml:"move_cost"`           // Multiplier on speed² x mass
	SlopeCost        float64 `yaml:"slope_cost"`          // Linear surcharge on slope
	OldAgeFactor     float64 `yaml:"old_age_factor"`      // Multiplier past 80% lifespan
	MaxEnergyPerMass float64 `yaml:"max_energy_per_mass"` // Capacity scaling
}

// ReproductionConfig holds pairing and gestation tuning.
type ReproductionConfig struct {
	// PairingLibidoThreshold gates actual commitment to mating. Kept
	// separate from perception.mate_libido_threshold on purpose.
	PairingLibidoThreshold float64 `yaml:"pairing_libido_threshold"`
	InteractionRadius      float64 `yaml:"interaction_radius"`
	BirthCostPerMass       float64 `yaml:"birth_cost_per_mass"`
	SpawnScatter           float64 `yaml:"spawn_scatter"` // Offspring offset from mother
}

// SpeciesConfig holds speciation tuning.
type SpeciesConfig struct {
	Epsilon             float64 `yaml:"epsilon"`               // Genetic distance threshold
	CentroidUpdateTicks int     `yaml:"centroid_update_ticks"` // Ticks between centroid recomputes
}

// PlantsConfig holds flora lifecycle tuning.
type PlantsConfig struct {
	EvictionDelay float64 `yaml:"eviction_delay"` // Seconds dead before storage removal
	GrassWeight   float64 `yaml:"grass_weight"`
	BushWeight    float64 `yaml:"bush_weight"`
	TreeWeight    float64 `yaml:"tree_weight"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
}

// DerivedConfig holds float32 mirrors for hot paths.
type DerivedConfig struct {
	WorldW32          float32
	WorldD32          float32
	SpeedMultiplier32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct: only fields present in the
		// file overwrite defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldD32 = float32(c.World.Depth)
	sm := c.World.SpeedMultiplier
	if sm <= 0 {
		sm = 1
	}
	c.Derived.SpeedMultiplier32 = float32(sm)
}

// WriteYAML writes the configuration to a YAML file for run provenance.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
