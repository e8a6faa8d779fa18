package logger

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level to emit: debug, info, warn, error (default: info).
	Level string `yaml:"level" mapstructure:"level"`

	// Format selects the output format: "json" or "console" (default: json).
	Format string `yaml:"format" mapstructure:"format"`

	// Output selects the destination: "stdout" or "stderr" (default: stdout).
	Output string `yaml:"output" mapstructure:"output"`

	// NoColor disables ANSI colors in console format.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}
