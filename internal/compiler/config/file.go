package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a dtrtc config file: the same settings the
// CLI's persistent flags expose, so a file can supply defaults a flag then
// overrides.
type File struct {
	Lang         string `yaml:"lang"`
	Color        *bool  `yaml:"color"`
	Debug        *bool  `yaml:"debug"`
	VarsDir      string `yaml:"vars_dir"`
	FuncsDir     string `yaml:"funcs_dir"`
	UserFuncsDir string `yaml:"user_funcs_dir"`
	CacheDB      string `yaml:"cache_db"`
}

// LoadFile reads and parses a yaml config file. A missing path is not an
// error — it returns a zero File so the caller's flag defaults stand.
func LoadFile(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return File{}, nil
	}
	if err != nil {
		return File{}, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, err
	}
	return f, nil
}
