package types

// Rule is one find/replace instruction against one target file.
// Rules are values; nothing mutates them after loading.
type Rule struct {
	// Label identifies the rule in reports
	Label string `json:"label"`
	// Target is the file the rule edits, as understood by the FS
	Target      string    `json:"target"`
	Spec        MatchSpec `json:"spec"`
	Replacement string    `json:"replacement"`

	Description string `json:"description,omitempty"`
	// Source is the rule file (or builtin set) the rule was loaded from
	Source string `json:"source,omitempty"`
}

// RuleSet is an ordered list of rules. Later rules see the text left by
// earlier rules on the same target.
type RuleSet struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Rules       []Rule `json:"rules"`
}

// Targets returns the distinct targets of rules in first-seen order
func Targets(rules []Rule) []string {
	seen := make(map[string]bool, len(rules))
	var targets []string
	for _, r := range rules {
		if !seen[r.Target] {
			seen[r.Target] = true
			targets = append(targets, r.Target)
		}
	}
	return targets
}
