package model

import "time"

// RunRequest describes what the user asked to verify or bless.
type RunRequest struct {
	Suite string   // suite name from the configuration
	Cases []string // optional case name filter; empty means all
	OS    string   // target os, defaults to the current platform
	Arch  string   // target arch, defaults to the current platform
}

// RunReport aggregates the per-case results of one verification run.
type RunReport struct {
	ID          string        `json:"id"`
	Suite       string        `json:"suite"`
	Tool        string        `json:"tool"`
	ToolVersion string        `json:"tool_version,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  time.Time     `json:"finished_at"`
	Results     []*CaseResult `json:"results"`

	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Errored int `json:"errored"`
	Missing int `json:"missing"`
}

// Add appends a result and updates the counters.
func (r *RunReport) Add(result *CaseResult) {
	r.Results = append(r.Results, result)
	switch result.Status {
	case StatusPass:
		r.Passed++
	case StatusFail:
		r.Failed++
	case StatusSkip:
		r.Skipped++
	case StatusError:
		r.Errored++
	case StatusMissing:
		r.Missing++
	}
}

// Total returns the number of cases covered by the run.
func (r *RunReport) Total() int {
	return len(r.Results)
}

// Ok reports whether the run is clean: nothing failed, errored, or lacked
// its golden file.
func (r *RunReport) Ok() bool {
	return r.Failed == 0 && r.Errored == 0 && r.Missing == 0
}

// FailedCases returns the cases that need blessing: failures and cases
// whose golden file does not exist yet.
func (r *RunReport) FailedCases() []*CaseResult {
	var out []*CaseResult
	for _, res := range r.Results {
		if res.Status == StatusFail || res.Status == StatusMissing {
			out = append(out, res)
		}
	}
	return out
}

// BlessEntry records one golden update in the bless journal.
type BlessEntry struct {
	Suite       string    `json:"suite"`
	Case        string    `json:"case"`
	OldChecksum string    `json:"old_checksum,omitempty"`
	NewChecksum string    `json:"new_checksum"`
	RunID       string    `json:"run_id,omitempty"`
	BlessedAt   time.Time `json:"blessed_at"`
	Note        string    `json:"note,omitempty"`
}
