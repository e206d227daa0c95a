package ruleset

import (
	"github.com/arthur-debert/repatch/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// SampleFile is the starter rule file written by `repatch init`
func SampleFile(name string) File {
	return File{
		Name:        name,
		Description: "Describe what these fixes correct",
		Rules: []RuleDef{
			{
				Label:       "rename-call",
				Description: "Short, stable phrases are safest as literals",
				Target:      "src/main.go",
				Literal:     "oldFunction(ctx)",
				Replace:     "newFunction(ctx)",
			},
			{
				Label:       "rewrite-block",
				Description: "Multi-line blocks use a pattern with multiline enabled",
				Target:      "src/main.go",
				Pattern:     "if err != nil \\{\n\\s+return err\n\\s+\\}",
				Multiline:   true,
				Replace:     "if err != nil {\n\t\treturn fmt.Errorf(\"run: %w\", err)\n\t}",
			},
		},
	}
}

// Sample renders SampleFile as TOML
func Sample(name string) ([]byte, error) {
	data, err := toml.Marshal(SampleFile(name))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render sample rule file")
	}
	return data, nil
}
