package config

// Redofile represents the structure of the redo.yaml configuration file.
// Every field is optional.
type Redofile struct {
	StateDir  string `yaml:"state_dir"`
	Shell     string `yaml:"shell"`
	Signature string `yaml:"signature"`
	LogLevel  string `yaml:"log_level"`
	Telemetry string `yaml:"telemetry"`
}
