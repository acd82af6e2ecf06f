package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/pkg/paths"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are the project config file names, in lookup order.
var configNames = []string{
	"jsonedit.yml",
	"jsonedit.yaml",
	"jsonedit.toml",
	".jsonedit.yml",
	".jsonedit.yaml",
	".jsonedit.toml",
}

var overrideNames = []string{
	"jsonedit.override.yml",
	"jsonedit.override.yaml",
	"jsonedit.override.toml",
}

// knownKeys are the top-level keys decoded into Config fields; all others
// become extensions.
var knownKeys = map[string]bool{"version": true, "tui": true, "editor": true}

// Load reads and parses a single configuration file, applying defaults.
func Load(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return cfg, nil
}

// LoadDefault finds and loads the configuration with hierarchical merging:
// 1. Global config (~/.config/jsonedit/jsonedit.yml) - base layer
// 2. Project config (jsonedit.yml) - overrides global
// 3. Local override (jsonedit.override.yml) - overrides all
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the given directory
func LoadFrom(startDir string) (*Config, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return LoadFromWithLogger(startDir, logger)
}

// LoadFromWithLogger loads configuration with hierarchical merging and logging.
// Every layer is optional; with no files at all the defaults are returned.
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	layered, err := loadLayers(startDir, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded and validated successfully")

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(layered.Final); err == nil {
			logger.Debugf("Merged configuration:\n%s", string(data))
		}
	}
	return layered.Final, nil
}

// LoadLayered finds and loads all configuration layers (global, project, overrides)
// without merging them, for analysis purposes. It also computes the final merged config.
func LoadLayered(startDir string) (*LayeredConfig, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return loadLayers(startDir, logger)
}

func loadLayers(startDir string, logger *logrus.Logger) (*LayeredConfig, error) {
	layered := &LayeredConfig{FilePaths: map[ConfigSource]string{}}
	layered.Default = &Config{}
	layered.Default.SetDefaults()

	final := &Config{}
	apply := func(source ConfigSource, path string, cfg *Config) {
		if _, seen := layered.FilePaths[source]; !seen {
			layered.FilePaths[source] = path
		}
		final = mergeConfigs(final, cfg)
	}

	// A broken global file only warns; the project may still be usable.
	if path := GlobalConfigPath(); path != "" && exists(path) {
		logger.WithField("path", path).Debug("Loading global configuration")
		if cfg, err := readFile(path); err != nil {
			logger.WithError(err).Warn("Failed to load global configuration, continuing without it")
		} else {
			layered.Global = cfg
			apply(SourceGlobal, path, cfg)
		}
	}

	projectPath, err := FindConfigFile(startDir)
	if err != nil && !errors.Is(err, errors.ErrCodeConfigNotFound) {
		return nil, err
	}
	if projectPath != "" {
		logger.WithField("path", projectPath).Debug("Loading project configuration")
		cfg, err := readFile(projectPath)
		if err != nil {
			return nil, err
		}
		layered.Project = cfg
		apply(SourceProject, projectPath, cfg)

		// Overrides only count next to a project file.
		for _, name := range overrideNames {
			path := filepath.Join(filepath.Dir(projectPath), name)
			if !exists(path) {
				continue
			}
			logger.WithField("path", path).Debug("Loading local override configuration")
			cfg, err := readFile(path)
			if err != nil {
				logger.WithError(err).Warn("Failed to load override file, skipping")
				continue
			}
			layered.Overrides = append(layered.Overrides, OverrideSource{Path: path, Config: cfg})
			apply(SourceOverride, path, cfg)
		}
	}

	final.SetDefaults()
	layered.Final = final
	return layered, nil
}

// WatchFiles lists the files whose changes alter the merged configuration:
// every loaded layer plus the override names next to the project file and
// the global names, which may be created later.
func (l *LayeredConfig) WatchFiles() []string {
	var files []string
	for _, source := range []ConfigSource{SourceGlobal, SourceProject} {
		if path := l.FilePaths[source]; path != "" {
			files = append(files, path)
		}
	}
	if dir := paths.ConfigDir(); dir != "" {
		for _, name := range []string{"jsonedit.yml", "jsonedit.yaml", "jsonedit.toml"} {
			files = append(files, filepath.Join(dir, name))
		}
	}
	if project := l.FilePaths[SourceProject]; project != "" {
		for _, name := range overrideNames {
			files = append(files, filepath.Join(filepath.Dir(project), name))
		}
	}
	return files
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadFromBytes parses YAML configuration from a byte array, validates it and
// applies defaults.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, err := parse(data, false)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return cfg, nil
}

// readFile parses one configuration file without applying defaults.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}
	cfg, err := parse(data, strings.HasSuffix(path, ".toml"))
	if err != nil {
		if ge, ok := err.(*errors.GroveError); ok {
			return nil, ge.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// parse decodes and schema-validates a YAML or TOML document. Unknown
// top-level keys of a TOML document are kept as extensions; the YAML decoder
// collects them through the inline map.
func parse(data []byte, isTOML bool) (*Config, error) {
	unmarshal, format := yaml.Unmarshal, "YAML"
	if isTOML {
		unmarshal, format = toml.Unmarshal, "TOML"
	}
	expanded := []byte(expandEnvVars(string(data)))

	var cfg Config
	var raw map[string]any
	for _, target := range []any{&cfg, &raw} {
		if err := unmarshal(expanded, target); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse "+format+" configuration")
		}
	}
	if raw == nil {
		return &cfg, nil
	}

	if isTOML {
		for k, v := range raw {
			if knownKeys[k] {
				continue
			}
			if cfg.Extensions == nil {
				cfg.Extensions = make(map[string]any)
			}
			cfg.Extensions[k] = v
		}
	}

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}
	if err := validator.Validate(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed")
	}
	return &cfg, nil
}

// FindConfigFile searches for a jsonedit configuration file from startDir up
// to the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

// GlobalConfigPath returns the location of the global configuration file.
func GlobalConfigPath() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	for _, name := range []string{"jsonedit.yml", "jsonedit.yaml", "jsonedit.toml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(dir, "jsonedit.yml")
}

// expandEnvVars substitutes ${VAR} and ${VAR:-default}. Unset and empty
// variables both take the default.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(ref string) string {
		name, fallback, _ := strings.Cut(envVarRegex.FindStringSubmatch(ref)[1], ":-")
		if v := os.Getenv(name); v != "" {
			return v
		}
		return fallback
	})
}
