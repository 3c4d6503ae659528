// Package orchestrator coordinates the managers behind verify, bless and
// sync runs. It owns the per-case pipeline: gate on sidecar metadata, run
// the pre-case hook, invoke the tool, normalize the output, compare against
// the golden. The concrete managers are injected through small interfaces so
// commands and tests can wire what they need.
package orchestrator

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/glorpus-work/goldfix/pkg/compare"
	"github.com/glorpus-work/goldfix/pkg/config"
	"github.com/glorpus-work/goldfix/pkg/diffview"
	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/fixture"
	"github.com/glorpus-work/goldfix/pkg/fsutil"
	"github.com/glorpus-work/goldfix/pkg/hook"
	"github.com/glorpus-work/goldfix/pkg/model"
	"github.com/glorpus-work/goldfix/pkg/platform"
	"github.com/glorpus-work/goldfix/pkg/runner"
)

// errFailFast cancels the remaining verify workers after the first failure.
var errFailFast = goerrors.New("fail fast")

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Verify runs every resolved case of the suite against its golden file and
// returns the aggregated report. Case failures and errors are recorded in
// the report, not returned as an error; the error return covers run-level
// problems like an unresolvable suite.
func (o *Orchestrator) Verify(ctx context.Context, req model.RunRequest, opts VerifyOptions) (*model.RunReport, error) {
	if o.Suite == nil {
		return nil, fmt.Errorf("suite is not configured")
	}
	if o.Source == nil {
		return nil, fmt.Errorf("case source is not configured")
	}
	if o.Runner == nil {
		return nil, fmt.Errorf("tool runner is not configured")
	}
	if o.Comparer == nil {
		return nil, fmt.Errorf("comparer is not configured")
	}

	suiteMode, err := compare.ParseMode(o.Suite.Compare)
	if err != nil {
		return nil, err
	}
	req = withPlatformDefaults(req)

	emit(o.Hooks, Event{Phase: "resolving", Msg: req.Suite})
	cases, err := o.Source.Cases(req)
	if err != nil {
		emit(o.Hooks, Event{Phase: "error", Msg: err.Error()})
		return nil, err
	}
	if len(opts.CaseFilter) > 0 {
		cases, err = fixture.FilterCases(cases, opts.CaseFilter)
		if err != nil {
			return nil, err
		}
	}

	report := &model.RunReport{
		ID:          uuid.NewString(),
		Suite:       req.Suite,
		Tool:        o.Suite.Tool,
		ToolVersion: o.Runner.Probe(ctx),
		StartedAt:   time.Now().UTC(),
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	results := make([]*model.CaseResult, len(cases))
	for i, c := range cases {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res, _ := o.runCase(gctx, c, report.ID, report.ToolVersion, req, suiteMode, opts)
			results[i] = res
			emit(o.Hooks, Event{Phase: "running", ID: c.Name, Msg: string(res.Status)})
			if opts.FailFast && res.Status != model.StatusPass && res.Status != model.StatusSkip {
				return errFailFast
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil && !goerrors.Is(err, errFailFast) {
		return nil, err
	}

	// Workers fill slots out of order; cases canceled by fail-fast leave
	// theirs nil and stay out of the report.
	for _, res := range results {
		if res != nil {
			report.Add(res)
		}
	}
	report.FinishedAt = time.Now().UTC()

	emit(o.Hooks, Event{Phase: "done", Msg: fmt.Sprintf("%d passed, %d failed, %d skipped, %d errored, %d missing",
		report.Passed, report.Failed, report.Skipped, report.Errored, report.Missing)})
	return report, nil
}

// Bless re-runs the selected cases and records their current output as the
// new golden. Failing and missing cases are blessed; passing cases are left
// alone. Mass-blessing is deliberate: without All, cases must be named.
func (o *Orchestrator) Bless(ctx context.Context, req model.RunRequest, opts BlessOptions) ([]*model.BlessEntry, error) {
	if o.Suite == nil {
		return nil, fmt.Errorf("suite is not configured")
	}
	if o.Source == nil {
		return nil, fmt.Errorf("case source is not configured")
	}
	if o.Runner == nil {
		return nil, fmt.Errorf("tool runner is not configured")
	}
	if o.Blesser == nil {
		return nil, fmt.Errorf("blesser is not configured")
	}
	if !opts.All && len(opts.Cases) == 0 {
		return nil, fmt.Errorf("no cases selected: name the cases to bless or bless all")
	}

	suiteMode, err := compare.ParseMode(o.Suite.Compare)
	if err != nil {
		return nil, err
	}
	req = withPlatformDefaults(req)

	emit(o.Hooks, Event{Phase: "resolving", Msg: req.Suite})
	cases, err := o.Source.Cases(req)
	if err != nil {
		emit(o.Hooks, Event{Phase: "error", Msg: err.Error()})
		return nil, err
	}
	if len(opts.Cases) > 0 {
		cases, err = fixture.FilterCases(cases, opts.Cases)
		if err != nil {
			return nil, err
		}
	}

	runID := uuid.NewString()
	toolVersion := o.Runner.Probe(ctx)
	explicit := len(opts.Cases) > 0

	var entries []*model.BlessEntry
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return entries, err
		}

		res, normalized := o.runCase(ctx, c, runID, toolVersion, req, suiteMode, VerifyOptions{})
		switch res.Status {
		case model.StatusSkip:
			emit(o.Hooks, Event{Phase: "blessing", ID: c.Name, Msg: "skipped: " + res.Message})
			continue
		case model.StatusError:
			emit(o.Hooks, Event{Phase: "error", ID: c.Name, Msg: res.Message})
			return entries, fmt.Errorf("case %s: %s", c.Name, res.Message)
		case model.StatusPass:
			if explicit {
				emit(o.Hooks, Event{Phase: "blessing", ID: c.Name, Msg: "unchanged"})
			}
			continue
		}

		var entry *model.BlessEntry
		if opts.DryRun {
			entry, err = o.Blesser.Preview(c, normalized)
			if err != nil {
				return entries, err
			}
			entry.RunID = runID
			entry.Note = opts.Note
			emit(o.Hooks, Event{Phase: "blessing", ID: c.Name, Msg: "would bless: " + describeChange(entry)})
		} else {
			entry, err = o.Blesser.BlessCase(c, normalized, runID, opts.Note)
			if err != nil {
				return entries, err
			}
			emit(o.Hooks, Event{Phase: "blessing", ID: c.Name, Msg: describeChange(entry)})
		}
		entries = append(entries, entry)
	}

	if opts.DryRun {
		emit(o.Hooks, Event{Phase: "done", Msg: "dry-run"})
		return entries, nil
	}
	emit(o.Hooks, Event{Phase: "done", Msg: fmt.Sprintf("blessed %d cases", len(entries))})
	return entries, nil
}

// runCase executes the pipeline for one case. The returned bytes are the
// output in the form a bless would store: raw for byte comparison, run
// through normalization otherwise. Structure comparison renders outlines
// internally, but goldens always keep real source text.
func (o *Orchestrator) runCase(ctx context.Context, c *model.Case, runID, toolVersion string, req model.RunRequest, suiteMode compare.Mode, opts VerifyOptions) (*model.CaseResult, []byte) {
	res := &model.CaseResult{Case: c}
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	if c.Meta.ShouldSkip() {
		res.Status = model.StatusSkip
		res.Message = c.Meta.Skip
		return res, nil
	}
	if !c.Meta.MatchOS(req.OS) {
		res.Status = model.StatusSkip
		res.Message = fmt.Sprintf("requires os %s", c.Meta.OS)
		return res, nil
	}
	if !c.Meta.MatchArch(req.Arch) {
		res.Status = model.StatusSkip
		res.Message = fmt.Sprintf("requires arch %s", c.Meta.Arch)
		return res, nil
	}
	if !c.Meta.MatchToolVersion(toolVersion) {
		res.Status = model.StatusSkip
		res.Message = fmt.Sprintf("tool version %s does not satisfy %s", toolVersion, c.Meta.ToolConstraint)
		return res, nil
	}

	mode := suiteMode
	if c.Meta != nil && c.Meta.Compare != "" {
		override, err := compare.ParseMode(c.Meta.Compare)
		if err != nil {
			res.Status = model.StatusError
			res.Message = err.Error()
			return res, nil
		}
		mode = override
	}

	hookCtx := hook.HookContext{
		CaseName:   c.Name,
		SuiteName:  c.Suite,
		InputPath:  c.InputPath,
		GoldenPath: c.GoldenPath,
	}
	if err := o.runHook(ctx, hook.PreCase, hookCtx); err != nil {
		res.Status = model.StatusError
		res.Message = fmt.Sprintf("pre-case hook: %v", err)
		return res, nil
	}

	out, err := o.Runner.Run(ctx, runner.Invocation{
		Command:   o.Suite.Tool,
		Input:     c.InputPath,
		Case:      c.Name,
		SuiteRoot: o.Suite.Root,
		Timeout:   o.Suite.Timeout,
	})
	if err != nil {
		res.Status = model.StatusError
		res.Message = err.Error()
		return res, nil
	}

	actual := out.Output
	if o.HookMgr != nil && o.HookMgr.HasHook(hook.NormalizeActual) {
		hookCtx.ActualText = string(actual)
		hres, err := o.HookMgr.Execute(ctx, hook.NormalizeActual, hookCtx)
		if err != nil {
			res.Status = model.StatusError
			res.Message = fmt.Sprintf("normalize-actual hook: %v", err)
			return res, nil
		}
		actual = []byte(hres.Actual)
	}
	normalized := normalizedForStorage(actual, mode)

	if !c.HasGolden() {
		if opts.UpdateMissing && o.Blesser != nil {
			if _, err := o.Blesser.BlessCase(c, normalized, runID, "created during verification"); err != nil {
				res.Status = model.StatusError
				res.Message = errors.Wrap(err, "failed to create golden").Error()
				return res, normalized
			}
			res.Status = model.StatusPass
			res.Message = "golden created"
			return res, normalized
		}
		res.Status = model.StatusMissing
		res.Message = "no golden file"
		o.keepActual(res, c, actual, opts)
		return res, normalized
	}

	expected, err := os.ReadFile(c.GoldenPath)
	if err != nil {
		res.Status = model.StatusError
		res.Message = errors.Wrap(err, "failed to read golden").Error()
		return res, normalized
	}

	cres, err := o.Comparer.Compare(expected, actual, compare.OptionsForMode(mode))
	if err != nil {
		res.Status = model.StatusError
		res.Message = err.Error()
		return res, normalized
	}

	res.Message = cres.Summary
	if cres.Equal {
		res.Status = model.StatusPass
	} else {
		res.Status = model.StatusFail
		res.Diff = diffview.Unified(c.Name, string(cres.NormalizedExpected), string(cres.NormalizedActual), diffview.DefaultContext)
		o.keepActual(res, c, actual, opts)
	}

	hookCtx.Vars = map[string]interface{}{"status": string(res.Status)}
	if err := o.runHook(ctx, hook.PostCase, hookCtx); err != nil {
		res.Status = model.StatusError
		res.Message = fmt.Sprintf("post-case hook: %v", err)
	}

	return res, normalized
}

// runHook executes one hook type when a script for it is loaded.
func (o *Orchestrator) runHook(ctx context.Context, hookType hook.HookType, hookCtx hook.HookContext) error {
	if o.HookMgr == nil || !o.HookMgr.HasHook(hookType) {
		return nil
	}
	_, err := o.HookMgr.Execute(ctx, hookType, hookCtx)
	return err
}

// keepActual copies the tool output into opts.ActualDir for inspection.
// Failures to keep a copy never change the case outcome.
func (o *Orchestrator) keepActual(res *model.CaseResult, c *model.Case, actual []byte, opts VerifyOptions) {
	if opts.ActualDir == "" {
		return
	}
	path := filepath.Join(opts.ActualDir, filepath.FromSlash(c.Name)+c.Ext)
	if err := fsutil.EnsureFileDir(path); err != nil {
		return
	}
	if err := os.WriteFile(path, actual, fsutil.FileModeDefault); err != nil {
		return
	}
	res.ActualPath = path
}

// normalizedForStorage returns the bytes a bless of this output would write.
func normalizedForStorage(actual []byte, mode compare.Mode) []byte {
	if mode == compare.ModeBytes {
		return actual
	}
	return compare.Normalize(actual, compare.OptionsForMode(mode))
}

// withPlatformDefaults fills the target platform from the running system.
func withPlatformDefaults(req model.RunRequest) model.RunRequest {
	if req.OS == "" || req.Arch == "" {
		osName, archName := platform.Detect()
		if req.OS == "" {
			req.OS = osName
		}
		if req.Arch == "" {
			req.Arch = archName
		}
	}
	return req
}

// describeChange renders a short old to new checksum transition.
func describeChange(entry *model.BlessEntry) string {
	if entry.OldChecksum == "" {
		return "new golden " + shortChecksum(entry.NewChecksum)
	}
	return shortChecksum(entry.OldChecksum) + " -> " + shortChecksum(entry.NewChecksum)
}

func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

// New constructs a default Orchestrator from existing managers. Helper for wiring.
func New(source CaseSource, toolRunner ToolRunner, comparer GoldenComparer, blesser Blesser, hookMgr hook.HookManager, dl Downloader, fetcher BundleFetcher, extractor BundleExtractor, suite *config.SuiteConfig) *Orchestrator {
	return &Orchestrator{
		Source:    source,
		Runner:    toolRunner,
		Comparer:  comparer,
		Blesser:   blesser,
		HookMgr:   hookMgr,
		DL:        dl,
		Fetcher:   fetcher,
		Extractor: extractor,
		Suite:     suite,
	}
}
