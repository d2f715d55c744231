package config

import "sort"

var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"slow": func() *Config {
		cfg := DefaultConfig()
		cfg.Animation.OrbitSteps = 400
		cfg.Animation.SpinRate = 0.2
		return cfg
	},
	"excited": func() *Config {
		cfg := DefaultConfig()
		cfg.Animation.OrbitRadius = 1.0
		cfg.Animation.OrbitSteps = 50
		cfg.Scene.Proton.Uniforms.DisplacementScale = 0.12
		cfg.Scene.Proton.Uniforms.TimeScaleVert = 0.03
		cfg.Scene.Electron.Radius = 0.02
		return cfg
	},
	"still": func() *Config {
		cfg := DefaultConfig()
		cfg.Animation.SpinRate = 0
		cfg.Controls.Damping = false
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
