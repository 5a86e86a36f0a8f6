package spiral

import (
	"fmt"
	"strings"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
)

const (
	// ScenarioSunGM is the rounded gravitational parameter of the Sun used by the default scenario.
	ScenarioSunGM = 1.327e11
	dateFormat    = "2006-01-02 15:04:05"
)

// Scenario is a fully configured transfer.
type Scenario struct {
	Name     string
	Target   string // name of the target, only used for reporting
	Body     CelestialObject
	Vehicle  *Spacecraft
	Transfer TransferConfig
	Export   ExportConfig
}

// NewTransfer returns the transfer of this scenario.
func (s *Scenario) NewTransfer(logger kitlog.Logger) (*Transfer, error) {
	return NewTransfer(s.Vehicle, s.Body, s.Transfer, s.Export, logger)
}

// NewViper returns a viper instance with the scenario defaults, which also reads SPIRAL_* environment overrides
// (e.g. SPIRAL_SPACECRAFT_THRUSTER=hermes).
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("SPIRAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults sets the defaults, which are the low thrust Earth to Mars transfer.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mission.name", "spiral")
	v.SetDefault("mission.step", "50s")
	v.SetDefault("mission.scheme", "euler")
	v.SetDefault("mission.maxSteps", 0)
	v.SetDefault("mission.maxDuration", "0s")
	v.SetDefault("body.name", "Sun")
	v.SetDefault("orbit.initial", 1.496e8)
	v.SetDefault("orbit.targetRatio", 1.52)
	v.SetDefault("orbit.targetName", "Mars")
	v.SetDefault("spacecraft.mass", 10000.0)
	v.SetDefault("spacecraft.dry", 0.0)
	v.SetDefault("spacecraft.thruster", "nexis")
	v.SetDefault("spacecraft.g0", StandardGravity)
	v.SetDefault("spacecraft.depletion", "coast")
	v.SetDefault("export.filename", "trajectory")
	v.SetDefault("export.outputDir", ".")
	v.SetDefault("export.csv", true)
	v.SetDefault("export.time", false)
	v.SetDefault("export.cosmo", false)
	v.SetDefault("export.every", 1)
}

// LoadScenario reads the scenario TOML (or any format viper supports) at the provided path.
func LoadScenario(path string) (*Scenario, error) {
	v := NewViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: %s", path, err)
	}
	return ScenarioFromViper(v)
}

// ScenarioFromViper builds and validates the scenario from the provided configuration.
func ScenarioFromViper(v *viper.Viper) (*Scenario, error) {
	s := &Scenario{Name: v.GetString("mission.name")}

	// Central body
	body, err := CelestialObjectFromString(v.GetString("body.name"))
	if err != nil {
		return nil, err
	}
	if μ := v.GetFloat64("body.mu"); μ != 0 {
		body = body.WithGM(μ)
	} else if body.Equals(Sun) {
		body = body.WithGM(ScenarioSunGM)
	}
	s.Body = body

	// Transfer geometry
	conf := TransferConfig{}
	if from := v.GetString("orbit.from"); from != "" {
		planet, perr := CelestialObjectFromString(from)
		if perr != nil {
			return nil, perr
		}
		if conf.InitialRadius, err = planet.SemiMajorAxis(); err != nil {
			return nil, err
		}
	} else {
		conf.InitialRadius = v.GetFloat64("orbit.initial")
	}
	s.Target = v.GetString("orbit.targetName")
	if to := v.GetString("orbit.to"); to != "" {
		planet, perr := CelestialObjectFromString(to)
		if perr != nil {
			return nil, perr
		}
		if conf.TargetRadius, err = planet.SemiMajorAxis(); err != nil {
			return nil, err
		}
		s.Target = planet.Name
	} else if target := v.GetFloat64("orbit.target"); target != 0 {
		conf.TargetRadius = target
	} else {
		conf.TargetRadius = v.GetFloat64("orbit.targetRatio") * conf.InitialRadius
	}

	// Stepping
	if conf.Step, err = confReadDuration(v, "mission.step"); err != nil {
		return nil, err
	}
	if conf.MaxDuration, err = confReadDuration(v, "mission.maxDuration"); err != nil {
		return nil, err
	}
	maxSteps := v.GetInt64("mission.maxSteps")
	if maxSteps < 0 {
		return nil, invalidf("mission.maxSteps must not be negative (got %d)", maxSteps)
	}
	conf.MaxSteps = uint64(maxSteps)
	if conf.Scheme, err = SchemeFromString(v.GetString("mission.scheme")); err != nil {
		return nil, err
	}
	if v.IsSet("mission.epoch") {
		if conf.Epoch, err = confReadJDEorTime(v, "mission.epoch"); err != nil {
			return nil, err
		}
	}
	s.Transfer = conf

	// Spacecraft
	var thruster Thruster
	thrust, isp := v.GetFloat64("spacecraft.thrust"), v.GetFloat64("spacecraft.isp")
	if thrust != 0 || isp != 0 {
		thruster = NewGenericEP(thrust, isp)
	} else if thruster, err = ThrusterFromString(v.GetString("spacecraft.thruster")); err != nil {
		return nil, err
	}
	sc := NewSpacecraft(s.Name, v.GetFloat64("spacecraft.mass"), thruster)
	sc.DryMass = v.GetFloat64("spacecraft.dry")
	sc.Prop.G0 = v.GetFloat64("spacecraft.g0")
	if sc.Depletion, err = DepletionPolicyFromString(v.GetString("spacecraft.depletion")); err != nil {
		return nil, err
	}
	s.Vehicle = sc

	// Exports
	s.Export = ExportConfig{
		Filename:  v.GetString("export.filename"),
		OutputDir: v.GetString("export.outputDir"),
		CSV:       v.GetBool("export.csv"),
		Time:      v.GetBool("export.time"),
		Cosmo:     v.GetBool("export.cosmo"),
		Timestamp: v.GetBool("export.timestamp"),
	}
	every := v.GetInt64("export.every")
	if every < 0 {
		return nil, invalidf("export.every must not be negative (got %d)", every)
	}
	s.Export.Every = uint64(every)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate validates the whole scenario.
func (s *Scenario) Validate() error {
	if err := s.Body.Validate(); err != nil {
		return err
	}
	if err := s.Vehicle.Validate(); err != nil {
		return err
	}
	return s.Transfer.Validate()
}

// confReadDuration reads either a Go duration string ("50s") or a number of seconds.
func confReadDuration(v *viper.Viper, key string) (time.Duration, error) {
	switch val := v.Get(key).(type) {
	case nil:
		return 0, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, fmt.Errorf("could not understand `%s`: %s", key, err)
		}
		return d, nil
	case int:
		return time.Duration(val) * time.Second, nil
	case int64:
		return time.Duration(val) * time.Second, nil
	case float64:
		return time.Duration(val * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("could not understand `%s`: unsupported type %T", key, val)
	}
}

// confReadJDEorTime reads either a Julian date or a date time.
func confReadJDEorTime(v *viper.Viper, key string) (time.Time, error) {
	if jde := v.GetFloat64(key); jde != 0 {
		return julian.JDToTime(jde), nil
	}
	raw := v.GetString(key)
	for _, layout := range []string{time.RFC3339, dateFormat, "2006-01-02"} {
		if dt, err := time.Parse(layout, raw); err == nil {
			return dt.UTC(), nil
		}
	}
	if dt := v.GetTime(key); !dt.IsZero() {
		return dt.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("could not understand `%s`: %q", key, raw)
}
