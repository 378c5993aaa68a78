package request

// MergeRequest is the input boundary consumed from the upstream analysis and
// drafting layer: one record per target file. When Section is empty the
// content replaces the entire file. Priority is informational only and is
// not used by the engine.
type MergeRequest struct {
	TargetFile string `json:"target_file" yaml:"target_file"`
	Section    string `json:"section,omitempty" yaml:"section,omitempty"`
	Content    string `json:"content" yaml:"content"`
	Priority   string `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Batch is the on-disk shape of a merge request batch file.
type Batch struct {
	Requests []MergeRequest `json:"requests" yaml:"requests"`
}
