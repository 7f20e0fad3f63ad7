package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ProfileFull  = "full"
	ProfilePlain = "plain"

	AltitudeOmit = "omit"
	AltitudeZero = "zero"

	TemperatureText   = "text"
	TemperatureLegacy = "legacy"
)

// Config is the immutable run configuration handed to the normalizer and the
// emitter at construction time.
type Config struct {
	Profile string        `yaml:"profile"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Options OptionsConfig `yaml:"options"`
}

type InputConfig struct {
	// DefaultExt is appended to an input name that has no extension.
	DefaultExt string `yaml:"default_ext"`
	// DocumentTag is matched case-insensitively below the synthetic root.
	DocumentTag string `yaml:"document_tag"`
	// SampleTag is matched case-insensitively.
	SampleTag string `yaml:"sample_tag"`
	// Containers are matched case-sensitively and expanded in document order.
	Containers []string `yaml:"containers"`
}

type OutputConfig struct {
	Ext          string `yaml:"ext"`
	Creator      string `yaml:"creator"`
	MetadataLink string `yaml:"metadata_link"`
	MetadataText string `yaml:"metadata_text"`
}

type OptionsConfig struct {
	NoAltitude        bool   `yaml:"no_altitude"`
	AltitudeMode      string `yaml:"altitude_mode"`
	NoExtensions      bool   `yaml:"no_extensions"`
	NoPower           bool   `yaml:"no_power"`
	NoTemperature     bool   `yaml:"no_temperature"`
	TemperatureSource string `yaml:"temperature_source"`
	Progress          bool   `yaml:"progress"`
}

// Default returns the full profile.
func Default() Config {
	cfg, _ := Profile(ProfileFull)
	return cfg
}

// Profile returns one of the built-in profiles.
//
// full keeps the extension block; plain drops it and keeps the base schema only.
func Profile(name string) (Config, error) {
	cfg := Config{Profile: name}
	switch name {
	case ProfileFull:
	case ProfilePlain:
		cfg.Options.NoExtensions = true
	default:
		return Config{}, fmt.Errorf("unknown profile %q (want %s or %s)", name, ProfileFull, ProfilePlain)
	}
	cfg.Options.Progress = true
	applyDefaults(&cfg)
	return cfg, nil
}

// Load reads a YAML profile file. The profile key selects the built-in base
// that the rest of the file overrides.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var head struct {
		Profile string `yaml:"profile"`
	}
	if err := yaml.Unmarshal(b, &head); err != nil {
		return Config{}, err
	}
	if head.Profile == "" {
		head.Profile = ProfileFull
	}

	cfg, err := Profile(head.Profile)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Input.DefaultExt == "" {
		cfg.Input.DefaultExt = ".tcx"
	}
	if cfg.Input.DocumentTag == "" {
		cfg.Input.DocumentTag = "TrainingCenterDatabase"
	}
	if cfg.Input.SampleTag == "" {
		cfg.Input.SampleTag = "Trackpoint"
	}
	if len(cfg.Input.Containers) == 0 {
		cfg.Input.Containers = []string{"Activities", "Activity", "Lap", "Track"}
	}

	if cfg.Output.Ext == "" {
		cfg.Output.Ext = ".gpx"
	}
	// Strava only trusts barometric elevation from known devices.
	if cfg.Output.Creator == "" {
		cfg.Output.Creator = "Garmin Edge 800"
	}
	if cfg.Output.MetadataLink == "" {
		cfg.Output.MetadataLink = "https://github.com/kgkilo/tcx2gpx"
	}
	if cfg.Output.MetadataText == "" {
		cfg.Output.MetadataText = "Tcx2Gpx"
	}

	if cfg.Options.AltitudeMode == "" {
		cfg.Options.AltitudeMode = AltitudeOmit
	}
	if cfg.Options.TemperatureSource == "" {
		cfg.Options.TemperatureSource = TemperatureText
	}
}

// Validate checks a fully defaulted config. The CLI calls it again after
// applying flag overrides.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.Input.DefaultExt, ".") {
		return fmt.Errorf("input.default_ext must start with '.'")
	}
	if !strings.HasPrefix(c.Output.Ext, ".") {
		return fmt.Errorf("output.ext must start with '.'")
	}
	if c.Input.DefaultExt == c.Output.Ext {
		return fmt.Errorf("output.ext must differ from input.default_ext")
	}
	for _, name := range c.Input.Containers {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("input.containers must not contain empty names")
		}
		if strings.EqualFold(name, c.Input.SampleTag) {
			return fmt.Errorf("input.containers must not include the sample tag %q", c.Input.SampleTag)
		}
	}
	switch c.Options.AltitudeMode {
	case AltitudeOmit, AltitudeZero:
	default:
		return fmt.Errorf("options.altitude_mode must be %q or %q", AltitudeOmit, AltitudeZero)
	}
	switch c.Options.TemperatureSource {
	case TemperatureText, TemperatureLegacy:
	default:
		return fmt.Errorf("options.temperature_source must be %q or %q", TemperatureText, TemperatureLegacy)
	}
	return nil
}
