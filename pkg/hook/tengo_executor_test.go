package hook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/goldfix/pkg/hook"
)

func TestTengoExecutor(t *testing.T) {
	executor := hook.NewTengoExecutor()
	hookCtx := hook.HookContext{
		CaseName:   "MethodIndent",
		SuiteName:  "extractmethod",
		InputPath:  "/suite/MethodIndent.py",
		GoldenPath: "/suite/MethodIndent.after.py",
		ActualText: "class Foo:\n    pass\n",
		Vars: map[string]interface{}{
			"customVar": "customValue",
		},
	}

	t.Run("Execute script without failure", func(t *testing.T) {
		executor.AddScript(hook.PreCase, `// This is a valid script that does nothing`)

		res, err := executor.Execute(context.Background(), hook.PreCase, hookCtx)
		require.NoError(t, err, "Execute should not return an error for valid script")
		assert.Equal(t, hookCtx.ActualText, res.Actual)
	})

	t.Run("Execute script with runtime error", func(t *testing.T) {
		executor.AddScript(hook.PostCase, `non_existent_function()`)

		_, err := executor.Execute(context.Background(), hook.PostCase, hookCtx)
		require.Error(t, err, "Execute should return an error for invalid script")
		assert.ErrorIs(t, err, hook.ErrHookExecution)
	})

	t.Run("Execute non-existent script", func(t *testing.T) {
		res, err := executor.Execute(context.Background(), hook.HookType("not-registered"), hookCtx)
		require.NoError(t, err, "Execute should not return an error for non-existent hook")
		assert.Equal(t, hookCtx.ActualText, res.Actual)
	})

	t.Run("Script signals failure through err", func(t *testing.T) {
		executor.AddScript(hook.PreCase, `err := "input fixture is stale"`)
		defer executor.RemoveScript(hook.PreCase)

		_, err := executor.Execute(context.Background(), hook.PreCase, hookCtx)
		require.Error(t, err)
		assert.ErrorIs(t, err, hook.ErrHookScript)
		assert.Contains(t, err.Error(), "input fixture is stale")
	})

	t.Run("Context variables are accessible", func(t *testing.T) {
		script := `
			err := ""
			if caseName != "MethodIndent" || suiteName != "extractmethod" {
				err = "unexpected case context"
			}
			if inputPath == "" || goldenPath == "" {
				err = "missing paths"
			}
			if customVar != "customValue" {
				err = "missing custom variable"
			}
		`
		executor.AddScript(hook.PreCase, script)
		defer executor.RemoveScript(hook.PreCase)

		_, err := executor.Execute(context.Background(), hook.PreCase, hookCtx)
		assert.NoError(t, err, "Context variables should be accessible in script")
	})

	t.Run("Normalize-actual rewrites output", func(t *testing.T) {
		script := `
			text := import("text")
			actual = text.replace(actual, "\r\n", "\n", -1)
		`
		executor.AddScript(hook.NormalizeActual, script)

		crlfCtx := hookCtx
		crlfCtx.ActualText = "class Foo:\r\n    pass\r\n"
		res, err := executor.Execute(context.Background(), hook.NormalizeActual, crlfCtx)
		require.NoError(t, err)
		assert.Equal(t, "class Foo:\n    pass\n", res.Actual)
	})

	t.Run("Only normalize-actual may rewrite output", func(t *testing.T) {
		executor.AddScript(hook.PreCase, `actual = "junk"`)
		defer executor.RemoveScript(hook.PreCase)

		res, err := executor.Execute(context.Background(), hook.PreCase, hookCtx)
		require.NoError(t, err)
		assert.Equal(t, hookCtx.ActualText, res.Actual)
	})

	t.Run("HasScript check", func(t *testing.T) {
		hookType := hook.HookType("test-hook")
		assert.False(t, executor.HasScript(hookType), "Should not have script before adding")

		executor.AddScript(hookType, "// test script")
		assert.True(t, executor.HasScript(hookType), "Should have script after adding")

		executor.RemoveScript(hookType)
		assert.False(t, executor.HasScript(hookType), "Should not have script after removal")
	})
}
