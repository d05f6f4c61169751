package config

// LoggingConfig controls the diagnostic log. Command output always goes to
// the terminal; this log is separate and quiet by default.
type LoggingConfig struct {
	Level    string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format   string `mapstructure:"format" validate:"required,oneof=json text"`
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`
}

// EffectiveLevel returns debug when verbose is set, otherwise the configured level
func (l LoggingConfig) EffectiveLevel(verbose bool) string {
	if verbose {
		return "debug"
	}
	return l.Level
}
