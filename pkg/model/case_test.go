package model

import (
	"testing"

	"github.com/glorpus-work/goldfix/pkg/platform"
	"github.com/stretchr/testify/assert"
)

func TestCaseMeta_MatchOS(t *testing.T) {
	tests := []struct {
		name     string
		metaOS   string
		testOS   string
		expected bool
	}{
		{
			name:     "empty meta OS matches any OS",
			metaOS:   "",
			testOS:   "linux",
			expected: true,
		},
		{
			name:     "any OS matches any OS",
			metaOS:   platform.AnyOS,
			testOS:   "windows",
			expected: true,
		},
		{
			name:     "matching OS returns true",
			metaOS:   "linux",
			testOS:   "linux",
			expected: true,
		},
		{
			name:     "non-matching OS returns false",
			metaOS:   "windows",
			testOS:   "linux",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := &CaseMeta{OS: tt.metaOS}
			assert.Equal(t, tt.expected, meta.MatchOS(tt.testOS))
		})
	}
}

func TestCaseMeta_MatchOS_NilMeta(t *testing.T) {
	var meta *CaseMeta
	assert.True(t, meta.MatchOS("linux"))
	assert.True(t, meta.MatchArch("amd64"))
	assert.True(t, meta.MatchToolVersion("1.0.0"))
	assert.False(t, meta.ShouldSkip())
}

func TestCaseMeta_MatchArch(t *testing.T) {
	tests := []struct {
		name     string
		metaArch string
		testArch string
		expected bool
	}{
		{
			name:     "empty meta arch matches any arch",
			metaArch: "",
			testArch: "amd64",
			expected: true,
		},
		{
			name:     "any arch matches any arch",
			metaArch: platform.AnyArch,
			testArch: "arm64",
			expected: true,
		},
		{
			name:     "matching arch returns true",
			metaArch: "amd64",
			testArch: "amd64",
			expected: true,
		},
		{
			name:     "non-matching arch returns false",
			metaArch: "amd64",
			testArch: "arm64",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := &CaseMeta{Arch: tt.metaArch}
			assert.Equal(t, tt.expected, meta.MatchArch(tt.testArch))
		})
	}
}

func TestCaseMeta_MatchToolVersion(t *testing.T) {
	tests := []struct {
		name        string
		constraint  string
		toolVersion string
		expected    bool
	}{
		{
			name:        "no constraint matches everything",
			constraint:  "",
			toolVersion: "0.0.1",
			expected:    true,
		},
		{
			name:        "satisfied range",
			constraint:  ">= 2.0",
			toolVersion: "2.3.1",
			expected:    true,
		},
		{
			name:        "unsatisfied range",
			constraint:  ">= 2.0",
			toolVersion: "1.9.0",
			expected:    false,
		},
		{
			name:        "exact match",
			constraint:  "= 1.2.3",
			toolVersion: "1.2.3",
			expected:    true,
		},
		{
			name:        "invalid constraint never matches",
			constraint:  "not-a-constraint!!",
			toolVersion: "1.2.3",
			expected:    false,
		},
		{
			name:        "unparseable tool version never matches",
			constraint:  ">= 1.0",
			toolVersion: "unknown",
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := &CaseMeta{ToolConstraint: tt.constraint}
			assert.Equal(t, tt.expected, meta.MatchToolVersion(tt.toolVersion))
		})
	}
}

func TestCaseMeta_ShouldSkip(t *testing.T) {
	assert.False(t, (&CaseMeta{}).ShouldSkip())
	meta := &CaseMeta{Skip: "flaky on CI"}
	assert.True(t, meta.ShouldSkip())
	assert.Equal(t, "flaky on CI", meta.Skip)
}

func TestCaseMeta_HasTag(t *testing.T) {
	meta := &CaseMeta{Tags: []string{"indent", "classmethod"}}
	assert.True(t, meta.HasTag("indent"))
	assert.False(t, meta.HasTag("slow"))

	var nilMeta *CaseMeta
	assert.False(t, nilMeta.HasTag("indent"))
}

func TestCase_HasGolden(t *testing.T) {
	c := &Case{
		Name:       "MethodIndent",
		GoldenPath: "/suites/extractmethod/MethodIndent.after.py",
		RelGolden:  "MethodIndent.after.py",
	}
	assert.True(t, c.HasGolden())

	missing := &Case{Name: "NewCase", GoldenPath: "/suites/extractmethod/NewCase.after.py"}
	assert.False(t, missing.HasGolden())
}
