package types

// Outcome is the per-rule result of applying a rule to its target text
type Outcome string

const (
	// OutcomeApplied means at least one occurrence was replaced
	OutcomeApplied Outcome = "APPLIED"
	// OutcomeNoMatch means the spec did not match. This is the steady
	// state once a rule has run, so it is not an error.
	OutcomeNoMatch Outcome = "ALREADY_APPLIED_OR_NOT_FOUND"
)

// FileStatus is the per-file result of a run
type FileStatus string

const (
	FileOK         FileStatus = "ok"
	FileNotFound   FileStatus = "not_found"
	FileReadError  FileStatus = "read_error"
	FileWriteError FileStatus = "write_error"
)

// RuleResult records what one rule did
type RuleResult struct {
	Label   string  `json:"label"`
	Target  string  `json:"target"`
	Outcome Outcome `json:"outcome"`
	// Occurrences is how many times the spec matched before substitution
	Occurrences int `json:"occurrences"`
	// Replaced is how many occurrences were substituted
	Replaced int `json:"replaced"`
}

// FileResult records what happened to one target file
type FileResult struct {
	Target string       `json:"target"`
	Status FileStatus   `json:"status"`
	Rules  []RuleResult `json:"rules"`

	// Changed reports whether the final text differs from what was read
	Changed bool `json:"changed"`
	// Written reports whether the final text was committed through the FS
	Written bool `json:"written"`

	BeforeHash string `json:"before_hash,omitempty"`
	AfterHash  string `json:"after_hash,omitempty"`

	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`

	// Before and After hold the file text for previews
	Before string `json:"-"`
	After  string `json:"-"`
}

// Failed reports whether the file hit a read or write error
func (f FileResult) Failed() bool {
	return f.Status != FileOK
}

// Report is the outcome of one run across all targets
type Report struct {
	DryRun bool         `json:"dry_run"`
	Files  []FileResult `json:"files"`
}

// Counts summarises a report
type Counts struct {
	Applied      int `json:"applied"`
	NoMatch      int `json:"no_match"`
	FilesChanged int `json:"files_changed"`
	FilesFailed  int `json:"files_failed"`
}

// Rules flattens the per-rule results across files in run order
func (r *Report) Rules() []RuleResult {
	var out []RuleResult
	for _, f := range r.Files {
		out = append(out, f.Rules...)
	}
	return out
}

// Counts tallies outcomes across the report
func (r *Report) Counts() Counts {
	var c Counts
	for _, f := range r.Files {
		if f.Failed() {
			c.FilesFailed++
		}
		if f.Changed {
			c.FilesChanged++
		}
		for _, rr := range f.Rules {
			switch rr.Outcome {
			case OutcomeApplied:
				c.Applied++
			case OutcomeNoMatch:
				c.NoMatch++
			}
		}
	}
	return c
}

// HasErrors reports whether any file failed
func (r *Report) HasErrors() bool {
	for _, f := range r.Files {
		if f.Failed() {
			return true
		}
	}
	return false
}

// File returns the result for target, if present
func (r *Report) File(target string) (FileResult, bool) {
	for _, f := range r.Files {
		if f.Target == target {
			return f, true
		}
	}
	return FileResult{}, false
}
