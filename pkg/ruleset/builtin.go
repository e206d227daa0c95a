package ruleset

import (
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/types"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

const builtinPrefix = "builtin:"

// BuiltinNames lists the rule sets compiled into the binary
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}

// Builtin loads the named builtin rule set
func Builtin(name string, opts Options) (*types.RuleSet, error) {
	data, err := builtinFS.ReadFile(path.Join("builtin", name+".toml"))
	if err != nil {
		return nil, errors.Newf(errors.ErrRuleSetUnknown, "no builtin rule set named %q", name).
			WithDetail("available", BuiltinNames())
	}
	return Parse(data, FormatTOML, builtinPrefix+name, opts)
}
