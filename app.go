package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// App runs one command against a provider
type App struct {
	provider LLMProvider
	logger   *zap.Logger
	styles   *Styles
	out      io.Writer

	// confirm asks the user a yes/no question
	confirm func(prompt string) (bool, error)
	// progress creates the indicator shown during a request
	progress func(message string) Progress
}

// NewApp creates an App writing reports to out
func NewApp(provider LLMProvider, logger *zap.Logger, styles *Styles, out io.Writer) *App {
	return &App{
		provider: provider,
		logger:   loggerOrNop(logger),
		styles:   styles,
		out:      out,
		confirm:  func(string) (bool, error) { return false, nil },
		progress: func(string) Progress { return nopProgress{} },
	}
}

// PlanOptions are the arguments of the plan command
type PlanOptions struct {
	Task        string
	Interactive bool
	Output      string
	Preview     bool
}

// generate wraps a single provider call with the progress indicator
func (a *App) generate(ctx context.Context, op Operation, body, working, done string) (*GenerateResult, error) {
	a.logger.Debug("generating",
		zap.String("op", string(op)),
		zap.String("provider", a.provider.Name()),
		zap.String("model", a.provider.Model()),
		zap.String("prompt_version", PromptVersion),
		zap.Int("body_bytes", len(body)),
	)

	p := a.progress(working)
	p.Start()
	result, err := a.provider.Generate(ctx, op, body)
	if err != nil {
		p.Fail(fmt.Sprintf("%s failed", op))
		return nil, err
	}
	p.Success(done)

	a.logger.Debug("generated",
		zap.String("op", string(op)),
		zap.Int("input_tokens", result.InputTokens),
		zap.Int("output_tokens", result.OutputTokens),
	)
	return result, nil
}

// RunPlan generates a technical plan and writes it to opts.Output
func (a *App) RunPlan(ctx context.Context, opts PlanOptions) error {
	if opts.Interactive {
		ok, err := a.confirm(fmt.Sprintf("Proceed with plan generation?\nTask: %s", opts.Task))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Operation cancelled.")
			return nil
		}
	}

	input, err := ResolveTask(opts.Task)
	if err != nil {
		return err
	}
	a.logger.Debug("resolved task", zap.Strings("paths", input.Paths))

	result, err := a.generate(ctx, OpPlan, input.Prompt(), "Generating plan...", "Plan generated!")
	if err != nil {
		return err
	}

	if err := ValidatePlan(result.Text); err != nil {
		return err
	}

	if err := WriteFileContents(opts.Output, result.Text); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Plan generated and written to: %s\n", opts.Output)

	if opts.Preview {
		rendered, err := RenderMarkdown(result.Text, previewWidth)
		if err != nil {
			a.logger.Warn("plan preview unavailable", zap.Error(err))
			return nil
		}
		fmt.Fprint(a.out, rendered)
	}
	return nil
}

// RunAnalysis runs a findings operation (check or perf) over paths and
// prints the report. Nothing is written to disk.
func (a *App) RunAnalysis(ctx context.Context, op Operation, paths []string) error {
	if op.Shape() != ShapeFindings {
		return fmt.Errorf("operation %s does not produce findings", op)
	}

	contents, err := LoadPaths(paths)
	if err != nil {
		return err
	}

	working, done := "Performing static analysis...", "Static analysis complete!"
	if op == OpPerf {
		working, done = "Checking for performance improvements...", "Checked for performance improvements"
	}

	result, err := a.generate(ctx, op, contents, working, done)
	if err != nil {
		return err
	}

	findings, err := ParseFindings(result.Text)
	if err != nil {
		return err
	}
	return RenderFindings(a.out, a.styles, ReportFor(op), findings)
}

// RunDocs rewrites path in place with documentation added
func (a *App) RunDocs(ctx context.Context, path string) error {
	code, changed, err := a.mutate(ctx, OpDocs, path, "Generating docs...", "Generated docs")
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(a.out, "No documentation changes for -> %s\n", path)
		return nil
	}

	if err := WriteFileContents(path, code); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added docs in -> %s\n", path)
	return nil
}

// RunTests generates unit tests for path and writes them to output
func (a *App) RunTests(ctx context.Context, path, output string) error {
	if err := SanitizePath(output); err != nil {
		return err
	}

	tests, changed, err := a.mutate(ctx, OpTests, path, "Generating tests...", "Generated tests")
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(a.out, "No tests generated for -> %s\n", path)
		return nil
	}

	if err := WriteFileContents(output, tests); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Tests written to -> %s\n", output)
	return nil
}

// mutate runs a mutation operation over one file. changed is false when
// the model returned an empty payload.
func (a *App) mutate(ctx context.Context, op Operation, path, working, done string) (string, bool, error) {
	contents, err := LoadPaths([]string{path})
	if err != nil {
		return "", false, err
	}

	result, err := a.generate(ctx, op, contents, working, done)
	if err != nil {
		return "", false, err
	}

	text := UnescapeMutation(result.Text)
	if strings.TrimSpace(text) == "" {
		return "", false, nil
	}
	return text, true, nil
}
