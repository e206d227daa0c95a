package ruleset

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/arthur-debert/repatch/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Format is a rule file syntax
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf(errors.ErrRuleSetLoad, "unsupported rule file extension %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

func parserFor(format Format) koanf.Parser {
	if format == FormatYAML {
		return yaml.Parser()
	}
	return toml.Parser()
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Options controls how rule files are resolved
type Options struct {
	// BaseDir resolves relative targets of files without their own base_dir.
	// Empty leaves them relative to the working directory.
	BaseDir string
}

// Load reads and validates the rule file at path
func Load(path string, opts Options) (*types.RuleSet, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		code := errors.ErrRuleSetLoad
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrNotFound
		}
		return nil, errors.Wrapf(err, code, "cannot open rule file %s", path).WithDetail("path", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parserFor(format)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleSetParse, "failed to parse rule file %s", path).
			WithDetail("path", path)
	}

	set, err := decode(k, path, filepath.Dir(path), opts)
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("ruleset")
	logger.Debug().Str("path", path).Str("set", set.Name).Int("rules", len(set.Rules)).Msg("Loaded rule file")
	return set, nil
}

// Parse validates rule file content held in memory. source names the
// content in reports and errors; relative base_dir values resolve against
// the working directory.
func Parse(data []byte, format Format, source string, opts Options) (*types.RuleSet, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, parserFor(format)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleSetParse, "failed to parse %s", source).
			WithDetail("source", source)
	}
	return decode(k, source, "", opts)
}

func decode(k *koanf.Koanf, source, fileDir string, opts Options) (*types.RuleSet, error) {
	var f File
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &f,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	}
	if err := k.UnmarshalWithConf("", &f, conf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleSetParse, "invalid rule file %s", source).
			WithDetail("source", source)
	}
	return f.build(source, fileDir, opts.BaseDir)
}

// LoadAll loads each path in order and concatenates their rules
func LoadAll(paths []string, opts Options) ([]types.Rule, error) {
	var rules []types.Rule
	for _, path := range paths {
		set, err := Load(path, opts)
		if err != nil {
			return nil, err
		}
		rules = append(rules, set.Rules...)
	}
	return rules, nil
}
