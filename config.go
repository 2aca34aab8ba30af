package render

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds renderer settings. It can be loaded from a TOML file:
//
//	clear_color = [0.1, 0.1, 0.1, 1.0]
//	blend = true
//	depth_test = true
//	verbose = false
//	shader_dir = "assets/shaders"
type Config struct {
	ClearColor [4]float32 `toml:"clear_color"`
	Blend      bool       `toml:"blend"`
	DepthTest  bool       `toml:"depth_test"`
	Verbose    bool       `toml:"verbose"` // For the application; see SetVerbose
	ShaderDir  string     `toml:"shader_dir"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		ClearColor: [4]float32{0.1, 0.1, 0.1, 1},
		Blend:      true,
		DepthTest:  true,
	}
}

// LoadConfig reads a TOML config file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("render: load config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("render: parse config %s: %w", path, err)
	}

	return cfg, nil
}
