// Package config loads engine and host settings from a config file and the
// environment and pushes them into a corlena.Engine.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/phanxgames/corlena"
)

// Settings holds every tunable of an engine plus the host window.
type Settings struct {
	Engine      EngineSettings
	View        ViewSettings
	Constraints ConstraintSettings
	Tap         TapSettings
	Particles   ParticleSettings
	Window      WindowSettings
}

// EngineSettings size the engine and toggle debug output.
type EngineSettings struct {
	Capacity int
	Debug    bool
}

// ViewSettings is the initial view transform.
type ViewSettings struct {
	Scale      float64
	PanX       float64 `mapstructure:"pan_x"`
	PanY       float64 `mapstructure:"pan_y"`
	PixelRatio float64 `mapstructure:"pixel_ratio"`
}

// ConstraintSettings mirror corlena.Constraints. Use inf for an open edge.
type ConstraintSettings struct {
	Left    float64
	Top     float64
	Right   float64
	Bottom  float64
	GridX   float64 `mapstructure:"grid_x"`
	GridY   float64 `mapstructure:"grid_y"`
	Inertia float64
	Damping float64
}

// TapSettings mirror corlena.TapParams.
type TapSettings struct {
	MaxDuration    float64 `mapstructure:"max_duration"`
	MoveTolerance  float64 `mapstructure:"move_tolerance"`
	DoubleTapGap   float64 `mapstructure:"double_tap_gap"`
	SingleTapDelay float64 `mapstructure:"single_tap_delay"`
}

// ParticleSettings mirror corlena.ParticleParams.
type ParticleSettings struct {
	GravityX    float64 `mapstructure:"gravity_x"`
	GravityY    float64 `mapstructure:"gravity_y"`
	Damping     float64
	Restitution float64
}

// WindowSettings configure the host window.
type WindowSettings struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool `mapstructure:"show_fps"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.capacity", 256)
	v.SetDefault("engine.debug", false)

	dv := corlena.DefaultView
	v.SetDefault("view.scale", dv.Scale)
	v.SetDefault("view.pan_x", dv.PanX)
	v.SetDefault("view.pan_y", dv.PanY)
	v.SetDefault("view.pixel_ratio", dv.PixelRatio)

	dc := corlena.DefaultConstraints
	v.SetDefault("constraints.left", dc.Left)
	v.SetDefault("constraints.top", dc.Top)
	v.SetDefault("constraints.right", dc.Right)
	v.SetDefault("constraints.bottom", dc.Bottom)
	v.SetDefault("constraints.grid_x", dc.GridX)
	v.SetDefault("constraints.grid_y", dc.GridY)
	v.SetDefault("constraints.inertia", dc.Inertia)
	v.SetDefault("constraints.damping", dc.Damping)

	dt := corlena.DefaultTapParams
	v.SetDefault("tap.max_duration", dt.MaxDuration)
	v.SetDefault("tap.move_tolerance", dt.MoveTolerance)
	v.SetDefault("tap.double_tap_gap", dt.DoubleTapGap)
	v.SetDefault("tap.single_tap_delay", dt.SingleTapDelay)

	dp := corlena.DefaultParticleParams
	v.SetDefault("particles.gravity_x", dp.Gravity.X)
	v.SetDefault("particles.gravity_y", dp.Gravity.Y)
	v.SetDefault("particles.damping", dp.Damping)
	v.SetDefault("particles.restitution", dp.Restitution)

	v.SetDefault("window.title", "corlena")
	v.SetDefault("window.width", 960)
	v.SetDefault("window.height", 640)
	v.SetDefault("window.show_fps", false)
}

// Default returns the settings of a fresh engine and a 960x640 window.
func Default() Settings {
	v := viper.New()
	setDefaults(v)
	var s Settings
	// Defaults always decode.
	_ = v.Unmarshal(&s)
	return s
}

// Load reads settings from path, falling back to $CORLENA_CONFIG and then to
// ./corlena.toml when path is empty. A missing default file is not an error;
// a missing explicit file is. Env var overrides use prefix CORLENA_, e.g.
// CORLENA_TAP_DOUBLE_TAP_GAP.
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv("CORLENA_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.SetConfigName("corlena")
	}

	v.SetEnvPrefix("CORLENA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return s, nil
}

// NewEngine creates an engine sized by s and applies s to it.
func (s Settings) NewEngine() (*corlena.Engine, error) {
	e := corlena.NewEngine(s.Engine.Capacity)
	if err := s.Apply(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Apply pushes every section of s into e through the engine's buffer setters.
func (s Settings) Apply(e *corlena.Engine) error {
	e.SetDebugMode(s.Engine.Debug)
	e.SetView(s.View.Scale, s.View.PanX, s.View.PanY, s.View.PixelRatio)

	c := s.Constraints
	if res := e.SetConstraints(f32(c.Left, c.Top, c.Right, c.Bottom, c.GridX, c.GridY, c.Inertia, c.Damping)); res != corlena.ResultApplied {
		return fmt.Errorf("apply constraints: %s", res)
	}
	t := s.Tap
	if res := e.SetTapParams(f32(t.MaxDuration, t.MoveTolerance, t.DoubleTapGap, t.SingleTapDelay)); res != corlena.ResultApplied {
		return fmt.Errorf("apply tap params: %s", res)
	}
	p := s.Particles
	if res := e.SetParticleParams(f32(p.GravityX, p.GravityY, p.Damping, p.Restitution)); res != corlena.ResultApplied {
		return fmt.Errorf("apply particle params: %s", res)
	}
	return nil
}

// f32 packs values into a wire buffer. Values beyond float32 range become
// infinite, which the engine treats as open edges.
func f32(vals ...float64) []float32 {
	buf := make([]float32, len(vals))
	for i, v := range vals {
		if math.Abs(v) > math.MaxFloat32 && !math.IsNaN(v) {
			buf[i] = float32(math.Inf(int(math.Copysign(1, v))))
			continue
		}
		buf[i] = float32(v)
	}
	return buf
}
