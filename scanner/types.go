package scanner

// FileInfo represents one file discovered under the scan root.
type FileInfo struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Ext     string `json:"ext"`
	IsNew   bool   `json:"is_new,omitempty"`
	Added   int    `json:"added,omitempty"`
	Removed int    `json:"removed,omitempty"`
}

// FixResult records the outcome of transforming one file.
type FixResult struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Written bool   `json:"written,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Report is the JSON output for one fixer run.
type Report struct {
	Root     string      `json:"root"`
	Families []string    `json:"families"`
	DiffRef  string      `json:"diff_ref,omitempty"`
	DryRun   bool        `json:"dry_run,omitempty"`
	Results  []FixResult `json:"results"`
	Modified int         `json:"modified"`
	Failed   int         `json:"failed"`
}

// Tally fills the Modified and Failed counters from Results.
func (r *Report) Tally() {
	r.Modified, r.Failed = 0, 0
	for _, res := range r.Results {
		if res.Error != "" {
			r.Failed++
		} else if res.Changed {
			r.Modified++
		}
	}
}
