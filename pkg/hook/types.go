package hook

// HookType represents the point in a case run a hook attaches to.
type HookType string

// Supported hook types.
const (
	// PreCase runs before the tool is invoked for a case.
	PreCase HookType = "pre-case"

	// PostCase runs after comparison, regardless of outcome.
	PostCase HookType = "post-case"

	// NormalizeActual rewrites tool output before comparison.
	NormalizeActual HookType = "normalize-actual"
)

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext contains the values exposed to a hook script.
type HookContext struct {
	CaseName   string
	SuiteName  string
	InputPath  string
	GoldenPath string

	// ActualText is the tool output. Scripts see it as the actual
	// variable and normalize-actual scripts may reassign it.
	ActualText string

	// Vars are additional variables passed through to the script.
	Vars map[string]interface{}
}

// HookResult is what a hook run produces.
type HookResult struct {
	// Actual is the effective tool output after the hook ran. It equals
	// the input text unless a normalize-actual script reassigned it.
	Actual string
}
