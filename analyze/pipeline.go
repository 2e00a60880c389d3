// Package analyze orchestrates the full B through H pipeline for one
// analysis request: parse, build the Context tree, enumerate Paths,
// process and evaluate each one, and assemble the final PathNote list.
package analyze

import (
	"bufio"
	"bytes"
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pathreach/analyzer/condition"
	buildctx "github.com/pathreach/analyzer/context"
	"github.com/pathreach/analyzer/model"
	"github.com/pathreach/analyzer/output"
	"github.com/pathreach/analyzer/parse"
	"github.com/pathreach/analyzer/pathenum"
	"github.com/pathreach/analyzer/result"
)

// warningLinePrefix marks a logger line captured from the §4.C Context
// Tree Builder or §4.F Condition Evaluator's non-fatal warning paths, as
// opposed to a plain stage-progress trace line.
const warningLinePrefix = "Warning: "

// Request is one analysis request. SourceText is the only required
// field; the timeout options fall back to their documented defaults
// when zero.
type Request struct {
	SourceText          string
	Warnings            bool
	Logging             bool
	AnalysisTimeoutMs   int
	PathSolverTimeoutMs int
}

const (
	defaultAnalysisTimeoutMs   = 10000
	defaultPathSolverTimeoutMs = 2000
)

// Response is the success envelope: an ordered PathNote list, plus
// optional warnings/trace when the request asked for them.
type Response struct {
	Notes    []model.PathNote
	Warnings []string `json:"warnings,omitempty"`
	Trace    []string `json:"trace,omitempty"`
}

// Run executes the pipeline once. A fatal error (PrecheckFailedError,
// UnknownSymbolError, UnsupportedTypeError, or a wrapped SolverError)
// aborts the request with no partial Response, per the propagation
// policy: no partial results are returned on fatal failure.
func Run(ctx context.Context, req Request) (*Response, error) {
	analysisTimeout := durationOrDefault(req.AnalysisTimeoutMs, defaultAnalysisTimeoutMs)
	pathTimeout := durationOrDefault(req.PathSolverTimeoutMs, defaultPathSolverTimeoutMs)

	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	// Stage progress and non-fatal warnings (§4.C, §4.F) both flow
	// through one output.Logger: Progress lines only land in the buffer
	// when Logging raises the verbosity past default, while Warning
	// lines are always recorded so Warnings can be requested
	// independently of Logging. A single mutex guards the buffer since
	// the F+G worker pool below logs warnings concurrently.
	var logBuf bytes.Buffer
	var logMu sync.Mutex
	verbosity := output.VerbosityDefault
	if req.Logging {
		verbosity = output.VerbosityVerbose
	}
	logger := output.NewLoggerWithWriter(verbosity, &logBuf)
	note := func(stage string) {
		logMu.Lock()
		logger.Progress("stage: %s", stage)
		logMu.Unlock()
	}
	warn := func(format string, args ...interface{}) {
		logMu.Lock()
		logger.Warning(format, args...)
		logMu.Unlock()
	}

	// A: Source Validator + B: AST Adapter.
	note("parse")
	prog, err := parse.Parse(req.SourceText)
	if err != nil {
		return nil, err
	}

	// C: Context Tree Builder.
	note("build-context")
	root, buildWarnings := buildctx.Build(prog)
	for _, w := range buildWarnings {
		warn("%s", w)
	}

	// D: Path Enumerator.
	note("enumerate-paths")
	paths := pathenum.Enumerate(root)

	// E: Statement Processor.
	note("process-statements")
	lists := make([]model.ConditionList, len(paths))
	for i, p := range paths {
		lists[i] = condition.BuildConditionList(p)
	}

	// F + G: Condition Evaluator + SMT Driver, dispatched across a
	// bounded worker pool, collected back into original path order.
	note("evaluate-and-solve")
	driver := condition.NewDriver(256)
	perPath := make([][]*model.PathNote, len(lists))

	firstErr := make(chan error, 1)
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))

	for i, cl := range lists {
		i, cl := i, cl
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			pathCtx, pathCancel := context.WithTimeout(ctx, pathTimeout)
			defer pathCancel()

			outcome, err := driver.Drive(pathCtx, root.Symbols, cl)
			if err != nil {
				select {
				case firstErr <- err:
				default:
				}
				return
			}
			if outcome.Note != nil {
				perPath[i] = []*model.PathNote{outcome.Note}
			}
			for _, w := range outcome.Warnings {
				warn("%s", w)
			}
		}()
	}
	wg.Wait()

	select {
	case err := <-firstErr:
		// Drive fails with UnknownSymbolError, UnsupportedTypeError, or a
		// SolverError when a deadline or cancellation cuts a check short;
		// each is already one of the documented fatal categories and
		// propagates as is.
		return nil, err
	default:
	}

	// H: Result Assembler.
	note("assemble")
	notes := result.Assemble(perPath)

	resp := &Response{Notes: notes}
	trace, warnings := splitLogLines(logBuf.String())
	if req.Warnings {
		resp.Warnings = warnings
	}
	if req.Logging {
		resp.Trace = trace
	}
	return resp, nil
}

// splitLogLines separates a Logger's buffered output into plain
// stage-progress lines and Warning-prefixed lines, stripping the prefix
// from the latter.
func splitLogLines(buf string) (trace []string, warnings []string) {
	scanner := bufio.NewScanner(strings.NewReader(buf))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, warningLinePrefix); ok {
			warnings = append(warnings, rest)
			continue
		}
		trace = append(trace, line)
	}
	return trace, warnings
}

func durationOrDefault(ms int, fallback int) time.Duration {
	if ms <= 0 {
		ms = fallback
	}
	return time.Duration(ms) * time.Millisecond
}
