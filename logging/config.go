package logging

// Config is the logging section of jsonedit.yml.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	// JSONEDIT_LOG_LEVEL wins over it.
	Level string `yaml:"level"`

	// ReportCaller adds file, line and function to each entry.
	// JSONEDIT_LOG_CALLER=true turns it on as well.
	ReportCaller bool `yaml:"report_caller"`

	File   FileSinkConfig `yaml:"file"`
	Format FormatConfig   `yaml:"format"`
}

// FileSinkConfig replaces the default dated log file with a fixed path.
type FileSinkConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // ~ and $VARS are expanded
}

// FormatConfig controls how entries look.
type FormatConfig struct {
	// Preset is default, simple or json.
	Preset           string `yaml:"preset"`
	DisableTimestamp bool   `yaml:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component"`
	// StructuredToStderr is auto (only when stderr is not a terminal),
	// always or never.
	StructuredToStderr string `yaml:"structured_to_stderr"`
}
