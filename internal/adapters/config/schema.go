package config

import "gopkg.in/yaml.v3"

// modListDocument is the on-disk shape of a mod list.
// Both fields stay raw so nesting and single-label versions survive decoding.
// A zero Kind means the key was absent.
type modListDocument struct {
	Mods    yaml.Node `yaml:"Mods"`
	Version yaml.Node `yaml:"Version"`
}
