package config

var Presets = map[string]*Config{
	"hot-jupiter": {
		Central: CentralConfig{Mass: 1.0, Radius: 1.0},
		Bodies: []BodyConfig{
			{Period: 0.009, Radius: 0.1, Mass: 0.001, Inclination: DefaultInclination},
		},
		Sweep: SweepConfig{Start: 0, Stop: 0.018, Samples: 400},
	},
	"earth": {
		Central: CentralConfig{Mass: 1.0, Radius: 1.0},
		Bodies: []BodyConfig{
			{Period: 1.0, Radius: 0.009, Inclination: DefaultInclination},
		},
		Sweep: SweepConfig{Start: 0, Stop: 1.0, Samples: 365},
	},
	"trappist-like": {
		Central: CentralConfig{Mass: 0.09, Radius: 0.12},
		Bodies: []BodyConfig{
			{Period: 0.0041, Radius: 0.01, Inclination: 1.5675},
			{Period: 0.0066, Radius: 0.0096, Inclination: 1.5691},
			{Period: 0.0111, Radius: 0.0071, Inclination: 1.5694},
		},
		Sweep: SweepConfig{Start: 0, Stop: 0.012, Samples: 600},
	},
	"binary-companions": {
		Central: CentralConfig{Mass: 1.2, Radius: 1.1},
		Bodies: []BodyConfig{
			{Period: 0.3, Radius: 0.05, Mass: 0.01, Inclination: 1.55},
			{Period: 2.4, Radius: 0.09, Mass: 0.02, Inclination: 1.52},
		},
		Sweep: SweepConfig{Start: 0, Stop: 2.4, Samples: 800},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
