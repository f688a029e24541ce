package mind

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed tuning/default.yaml tuning/schema.json
var tuningFS embed.FS

// CostPolicy is the traversal-cost table consumed by BuildCostMap. All values
// are finite; impassability is expressed by the cost map itself, not here.
type CostPolicy struct {
	Floor        int `yaml:"floor"`
	Door         int `yaml:"door"`
	HazardMild   int `yaml:"hazard_mild"`
	Occupied     int `yaml:"occupied"`
	HazardSevere int `yaml:"hazard_severe"`
	BurrowWall   int `yaml:"burrow_wall"`
}

// FleeTuning controls FleeGoal termination.
type FleeTuning struct {
	DurationTurns int `yaml:"duration_turns"`
	SafeDistance  int `yaml:"safe_distance"`
}

// FollowTuning controls FollowEntityGoal.
type FollowTuning struct {
	MaxDistance int `yaml:"max_distance"`
}

// WanderTuning controls WanderGoal.
type WanderTuning struct {
	Radius int `yaml:"radius"`
}

// VisionTuning holds perception defaults for actors created without an
// explicit range.
type VisionTuning struct {
	DefaultRange int `yaml:"default_range"`
}

// Tuning is the immutable balance table for the AI core. The KillTarget tier
// order is data here rather than control flow: the source system's
// melee > defensive > ranged > item ordering is preserved as an explicit
// named list (see KillPriority).
type Tuning struct {
	Costs        CostPolicy   `yaml:"costs"`
	KillPriority []string     `yaml:"kill_priority"`
	Flee         FleeTuning   `yaml:"flee"`
	Follow       FollowTuning `yaml:"follow"`
	Wander       WanderTuning `yaml:"wander"`
	Vision       VisionTuning `yaml:"vision"`
}

// DefaultTuning returns the embedded table. The embedded file is validated at
// build of the package's tests; a corrupt embed is a programming error, so
// this panics rather than returning an error.
func DefaultTuning() Tuning {
	raw, err := tuningFS.ReadFile("tuning/default.yaml")
	if err != nil {
		panic(fmt.Sprintf("mind: embedded tuning missing: %v", err))
	}
	t, err := parseTuning(raw)
	if err != nil {
		panic(fmt.Sprintf("mind: embedded tuning invalid: %v", err))
	}
	return t
}

// LoadTuning reads an override table from disk, schema-validates it, and
// returns it. Bad overrides fail here, at load time, never mid-simulation.
func LoadTuning(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	return parseTuning(raw)
}

func parseTuning(raw []byte) (Tuning, error) {
	if err := validateTuning(raw); err != nil {
		return Tuning{}, err
	}
	var t Tuning
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tuning{}, fmt.Errorf("tuning: %w", err)
	}
	return t, nil
}

// validateTuning checks the YAML document against the embedded JSON schema.
// The document is round-tripped through encoding/json because the validator
// operates on JSON-decoded values.
func validateTuning(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	var jsonDoc any
	if err := json.Unmarshal(encoded, &jsonDoc); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}

	schemaRaw, err := tuningFS.ReadFile("tuning/schema.json")
	if err != nil {
		return fmt.Errorf("tuning schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("tuning/schema.json", bytes.NewReader(schemaRaw)); err != nil {
		return fmt.Errorf("tuning schema: %w", err)
	}
	schema, err := compiler.Compile("tuning/schema.json")
	if err != nil {
		return fmt.Errorf("tuning schema: %w", err)
	}
	if err := schema.Validate(jsonDoc); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	return nil
}
