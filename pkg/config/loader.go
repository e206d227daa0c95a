package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// ProjectFileName is looked up in the working directory
const ProjectFileName = ".repatch.toml"

// EnvPrefix marks environment overrides, e.g. REPATCH_OUTPUT_FORMAT=json
const EnvPrefix = "REPATCH_"

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions selects the files and overrides applied on top of defaults
type LoadOptions struct {
	// UserFile defaults to $XDG_CONFIG_HOME/repatch/config.toml
	UserFile string
	// ProjectDir is searched for .repatch.toml; defaults to the working directory
	ProjectDir string
	// ExtraFile is loaded after the project file (the --config flag)
	ExtraFile string
	// Overrides are dotted keys set from command line flags
	Overrides map[string]interface{}
}

// DefaultUserFile returns the XDG location of the user config file
func DefaultUserFile() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, "repatch", "config.toml")
}

// Load resolves the configuration layers into a Config
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. System defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User, project and explicit files, when present
	userFile := opts.UserFile
	if userFile == "" {
		userFile = DefaultUserFile()
	}
	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	for _, path := range []string{userFile, filepath.Join(projectDir, ProjectFileName)} {
		if err := loadOptionalFile(k, path); err != nil {
			return nil, err
		}
	}
	if opts.ExtraFile != "" {
		if _, err := os.Stat(opts.ExtraFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.ExtraFile)
		}
		if err := loadOptionalFile(k, opts.ExtraFile); err != nil {
			return nil, err
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		// the first underscore separates section from key: OUTPUT_FORMAT -> output.format
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

func loadOptionalFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}
