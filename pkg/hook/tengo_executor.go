package hook

import (
	"context"
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// TengoExecutor compiles and runs Tengo hook scripts.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[HookType]string),
	}
}

// Execute runs the script registered for the hook type. A hook type without
// a script succeeds with the actual text passed through unchanged.
func (e *TengoExecutor) Execute(ctx context.Context, hookType HookType, hookCtx HookContext) (*HookResult, error) {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()

	result := &HookResult{Actual: hookCtx.ActualText}
	if !exists {
		return result, nil
	}

	instance := tengo.NewScript([]byte(script))
	instance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times", "json"))

	vars := map[string]interface{}{
		"caseName":   hookCtx.CaseName,
		"suiteName":  hookCtx.SuiteName,
		"inputPath":  hookCtx.InputPath,
		"goldenPath": hookCtx.GoldenPath,
		"actual":     hookCtx.ActualText,
	}
	for k, v := range hookCtx.Vars {
		vars[k] = v
	}
	for k, v := range vars {
		if err := instance.Add(k, v); err != nil {
			return nil, fmt.Errorf("failed to add variable %q to script: %w", k, err)
		}
	}

	compiled, err := instance.RunContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", hookType, ErrHookExecution, err)
	}

	// Scripts signal failure through the err global.
	if errVar := compiled.Get("err"); errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return nil, fmt.Errorf("%w: %w", ErrHookScript, v)
		case string:
			if v != "" {
				return nil, fmt.Errorf("%w: %s", ErrHookScript, v)
			}
		}
	}

	// Only normalize-actual may rewrite the tool output.
	if hookType == NormalizeActual {
		if actualVar := compiled.Get("actual"); actualVar != nil {
			if s, ok := actualVar.Value().(string); ok {
				result.Actual = s
			}
		}
	}

	return result, nil
}

// AddScript adds or updates a script for the specified hook type.
func (e *TengoExecutor) AddScript(hookType HookType, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// RemoveScript removes the script for the specified hook type.
func (e *TengoExecutor) RemoveScript(hookType HookType) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, hookType)
}

// HasScript checks if a script exists for the specified hook type.
func (e *TengoExecutor) HasScript(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
