package hook

import "context"

// HookManager defines the interface for managing hooks.
type HookManager interface {
	// Execute runs the specified hook type with the given context
	Execute(ctx context.Context, hookType HookType, hookCtx HookContext) (*HookResult, error)

	// AddHook adds a new hook
	AddHook(hook Hook) error

	// RemoveHook removes the hook of the specified type
	RemoveHook(hookType HookType) error

	// HasHook checks if a hook of the specified type exists
	HasHook(hookType HookType) bool
}
