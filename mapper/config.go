package mapper

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrConfig is returned for an invalid configuration value.
var ErrConfig = errors.New("mapper: invalid configuration")

// Defaults.
const (
	DefaultClearanceThreshold = 0.15 // meters
	DefaultCriticalEpsilon    = 0.5  // meters
	DefaultMergeThresholdArea = 10.0 // square meters
	DefaultMaxLogSize         = 100  // MB
	DefaultMaxLogAge          = 30   // days
	DefaultLogLevel           = "info"
)

// Config holds the pipeline parameters.
type Config struct {
	// ClearanceThreshold is the inflation radius and the minimum Voronoi clearance, in meters.
	ClearanceThreshold float64 `toml:"clearance_threshold"`
	// CriticalEpsilon is the critical point neighborhood radius, in meters.
	CriticalEpsilon float64 `toml:"critical_epsilon"`
	// MergeThresholdArea is the region area above which hubs are replaced by
	// their doorways, in square meters. Zero or less disables the pass.
	MergeThresholdArea float64 `toml:"merge_threshold_area"`
	// Workers is the number of Voronoi search workers; 0 means GOMAXPROCS.
	Workers int `toml:"workers"`
}

// DefaultConfig returns the default pipeline parameters.
func DefaultConfig() Config {
	return Config{
		ClearanceThreshold: DefaultClearanceThreshold,
		CriticalEpsilon:    DefaultCriticalEpsilon,
		MergeThresholdArea: DefaultMergeThresholdArea,
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	switch {
	case !(c.ClearanceThreshold > 0) || math.IsInf(c.ClearanceThreshold, 0):
		return fmt.Errorf("%w: clearance_threshold must be positive and finite (%v)", ErrConfig, c.ClearanceThreshold)
	case !(c.CriticalEpsilon > 0) || math.IsInf(c.CriticalEpsilon, 0):
		return fmt.Errorf("%w: critical_epsilon must be positive and finite (%v)", ErrConfig, c.CriticalEpsilon)
	case math.IsNaN(c.MergeThresholdArea) || math.IsInf(c.MergeThresholdArea, 0):
		return fmt.Errorf("%w: merge_threshold_area must be finite (%v)", ErrConfig, c.MergeThresholdArea)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative (%d)", ErrConfig, c.Workers)
	}
	return nil
}

// LogConfig configures the rotating log file of the command line tool.
type LogConfig struct {
	Logfile string `toml:"logfile"`
	MaxSize int    `toml:"max_log_size"`
	MaxAge  int    `toml:"max_log_age"`
	Level   string `toml:"level"`
}

// FileConfig is the layout of a TOML configuration file.
type FileConfig struct {
	Mapper  Config    `toml:"mapper"`
	Logging LogConfig `toml:"logging"`
}

// DefaultFileConfig returns the defaults used for keys missing from a file.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Mapper: DefaultConfig(),
		Logging: LogConfig{
			MaxSize: DefaultMaxLogSize,
			MaxAge:  DefaultMaxLogAge,
			Level:   DefaultLogLevel,
		},
	}
}

// LoadConfig reads a TOML file with [mapper] and [logging] sections.
// Keys missing from the file keep their defaults; unknown keys are an error.
func LoadConfig(path string) (FileConfig, error) {
	fc := DefaultFileConfig()
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return FileConfig{}, fmt.Errorf("mapper: reading %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrConfig, path, strings.Join(keys, ", "))
	}
	if err := fc.Mapper.Validate(); err != nil {
		return FileConfig{}, err
	}
	return fc, nil
}
