package camera

// preset adjusts DefaultConfig for one capture profile.
type preset struct {
	name  string
	apply func(*Config)
}

// Presets in the order they are listed to the user. The helper only needs
// a face-sized JPEG every few ticks; larger captures cost cloud upload time.
var presets = []preset{
	{"default", func(*Config) {}},
	{"720p", func(c *Config) { c.Width, c.Height = 1280, 720 }},
	{"1080p", func(c *Config) { c.Width, c.Height, c.Framerate = 1920, 1080, 15 }},
	{"lowres", func(c *Config) { c.Width, c.Height, c.Quality = 320, 240, 75 }},
}

// PresetNames returns the available preset names.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.name
	}
	return names
}

// GetPreset returns the named capture profile, or nil if there is none.
func GetPreset(name string) *Config {
	for _, p := range presets {
		if p.name == name {
			cfg := DefaultConfig()
			p.apply(&cfg)
			return &cfg
		}
	}
	return nil
}
