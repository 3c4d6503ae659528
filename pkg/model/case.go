// Package model provides data structures and types for representing fixture
// cases, case metadata, and run results shared across the goldfix packages.
package model

import (
	"time"

	"github.com/glorpus-work/goldfix/pkg/platform"
	"github.com/hashicorp/go-version"
)

// Case represents one fixture pair inside a suite: the input file the tool
// under test consumes and the golden file holding the expected output.
type Case struct {
	Suite      string    `json:"suite"`
	Name       string    `json:"name"`
	InputPath  string    `json:"input_path"`
	GoldenPath string    `json:"golden_path"`
	RelInput   string    `json:"rel_input"`
	RelGolden  string    `json:"rel_golden"`
	Ext        string    `json:"ext"`
	Meta       *CaseMeta `json:"meta,omitempty"`
}

// HasGolden reports whether discovery found a golden file for this case.
// A case without one is reported as StatusMissing.
func (c *Case) HasGolden() bool {
	return c.GoldenPath != "" && c.RelGolden != ""
}

// CaseMeta is the optional sidecar metadata for a case.
type CaseMeta struct {
	Skip           string   `yaml:"skip,omitempty" json:"skip,omitempty"`
	OS             string   `yaml:"os,omitempty" json:"os,omitempty"`
	Arch           string   `yaml:"arch,omitempty" json:"arch,omitempty"`
	ToolConstraint string   `yaml:"tool_constraint,omitempty" json:"tool_constraint,omitempty"`
	Tags           []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Compare        string   `yaml:"compare,omitempty" json:"compare,omitempty"`
}

// ShouldSkip reports whether the sidecar marks this case as skipped.
// The skip field doubles as the reason text.
func (m *CaseMeta) ShouldSkip() bool {
	return m != nil && m.Skip != ""
}

// MatchOS checks if this case applies to the given operating system.
func (m *CaseMeta) MatchOS(os string) bool {
	if m == nil {
		return true
	}
	return m.OS == "" || m.OS == os || m.OS == platform.AnyOS
}

// MatchArch checks if this case applies to the given architecture.
func (m *CaseMeta) MatchArch(arch string) bool {
	if m == nil {
		return true
	}
	return m.Arch == "" || m.Arch == arch || m.Arch == platform.AnyArch
}

// MatchToolVersion checks if the probed tool version satisfies the sidecar
// constraint. An unparseable constraint or version never matches; an unset
// constraint always does.
func (m *CaseMeta) MatchToolVersion(toolVersion string) bool {
	if m == nil || m.ToolConstraint == "" {
		return true
	}
	constraint, err := version.NewConstraint(m.ToolConstraint)
	if err != nil {
		return false
	}
	v, err := version.NewVersion(toolVersion)
	if err != nil {
		return false
	}
	return constraint.Check(v)
}

// HasTag checks if the sidecar carries the given tag.
func (m *CaseMeta) HasTag(tag string) bool {
	if m == nil {
		return false
	}
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CaseStatus represents the outcome of verifying one case.
type CaseStatus string

const (
	// StatusPass indicates the tool output matched the golden file.
	StatusPass CaseStatus = "pass"
	// StatusFail indicates the tool output differed from the golden file.
	StatusFail CaseStatus = "fail"
	// StatusSkip indicates the case was gated out before the tool ran.
	StatusSkip CaseStatus = "skip"
	// StatusError indicates the tool or a hook failed to execute.
	StatusError CaseStatus = "error"
	// StatusMissing indicates the case has no golden file yet.
	StatusMissing CaseStatus = "missing"
)

// CaseResult holds the outcome of a single case within a run.
type CaseResult struct {
	Case       *Case         `json:"case"`
	Status     CaseStatus    `json:"status"`
	Message    string        `json:"message,omitempty"`
	Diff       string        `json:"diff,omitempty"`
	ActualPath string        `json:"actual_path,omitempty"`
	Duration   time.Duration `json:"duration"`
}
