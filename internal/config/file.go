package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Defaults holds the optional YAML defaults file (~/.tagvis.yaml). Values
// only apply to flags the user did not set on the command line.
type Defaults struct {
	Interval    float64  `mapstructure:"interval"`
	Multitag    string   `mapstructure:"multitag"`
	ColorMap    string   `mapstructure:"cmap"`
	ExcludeTags []string `mapstructure:"exclude_tags"`
	Resolution  int      `mapstructure:"resolution"`
	SmoothSigma float64  `mapstructure:"smooth_sigma"`
	Timezone    string   `mapstructure:"timezone"`
}

// LoadDefaults reads the defaults file. A missing file is not an error and
// yields nil.
func LoadDefaults(path string) (*Defaults, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var d Defaults
	if err := v.Unmarshal(&d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %q: %w", path, err)
	}
	return &d, nil
}
