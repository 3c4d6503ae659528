package hook

import "context"

// DefaultHookManager is the default implementation of HookManager.
type DefaultHookManager struct {
	executor *TengoExecutor
}

// NewHookManager creates a new hook manager.
func NewHookManager() *DefaultHookManager {
	return &DefaultHookManager{
		executor: NewTengoExecutor(),
	}
}

// NewHookManagerForSuite creates a hook manager with the suite's scripts
// already loaded.
func NewHookManagerForSuite(suiteRoot string) (*DefaultHookManager, error) {
	manager := NewHookManager()
	if err := LoadHooksFromSuiteDir(manager, suiteRoot); err != nil {
		return nil, err
	}
	return manager, nil
}

// Execute runs the specified hook type with the given context.
func (m *DefaultHookManager) Execute(ctx context.Context, hookType HookType, hookCtx HookContext) (*HookResult, error) {
	// Copy the context to prevent modifications
	copied := hookCtx
	if copied.Vars == nil {
		copied.Vars = make(map[string]interface{})
	}
	return m.executor.Execute(ctx, hookType, copied)
}

// AddHook adds a new hook.
func (m *DefaultHookManager) AddHook(hook Hook) error {
	if hook.Type == "" {
		return ErrHookTypeEmpty
	}
	m.executor.AddScript(hook.Type, hook.Content)
	return nil
}

// RemoveHook removes the hook of the specified type.
func (m *DefaultHookManager) RemoveHook(hookType HookType) error {
	if hookType == "" {
		return ErrHookTypeEmpty
	}
	m.executor.RemoveScript(hookType)
	return nil
}

// HasHook checks if a hook of the specified type exists.
func (m *DefaultHookManager) HasHook(hookType HookType) bool {
	return m.executor.HasScript(hookType)
}
