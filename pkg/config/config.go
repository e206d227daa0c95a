package config

// Config is the resolved application configuration
type Config struct {
	Output Output `koanf:"output"`
	Log    Log    `koanf:"log"`
	Rules  Rules  `koanf:"rules"`
	Write  Write  `koanf:"write"`
}

// Output controls report presentation
type Output struct {
	// Format is one of auto, term, text, json
	Format string `koanf:"format"`
	// Diff prints a preview of every changed target
	Diff  bool `koanf:"diff"`
	Color bool `koanf:"color"`
}

// Log controls the secondary log file
type Log struct {
	File bool   `koanf:"file"`
	Path string `koanf:"path"`
}

// Rules controls where rules come from
type Rules struct {
	// Files are loaded when apply is given no rule files
	Files []string `koanf:"files"`
	// BaseDir resolves relative targets
	BaseDir string `koanf:"base_dir"`
}

// Write controls how targets are committed
type Write struct {
	SkipUnchanged bool `koanf:"skip_unchanged"`
}
