package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aescanero/dago-node-rules/internal/eval/cel"
	"github.com/aescanero/dago-node-rules/internal/eval/template"
	"github.com/aescanero/dago-node-rules/internal/rules"
	"go.uber.org/zap"
)

// maxLineSize bounds a single dataset line.
const maxLineSize = 4 * 1024 * 1024

// Summary counts the rows seen by Run.
type Summary struct {
	Rows      int
	Evaluated int
	Filtered  int
	Failed    int
}

// Runner checks dataset rows against an engine and renders one line of
// output per evaluated row.
type Runner struct {
	engine    *rules.Engine
	filter    *cel.Filter
	templates *template.Engine
	template  string
	logger    *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger for per-row failures.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithFilter skips rows the filter does not match.
func WithFilter(filter *cel.Filter) Option {
	return func(r *Runner) {
		r.filter = filter
	}
}

// WithTemplate sets the Handlebars template for result lines.
func WithTemplate(tmpl string) Option {
	return func(r *Runner) {
		r.template = tmpl
	}
}

// NewRunner creates a runner for engine. It fails if the result template
// does not parse.
func NewRunner(engine *rules.Engine, opts ...Option) (*Runner, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is nil")
	}

	r := &Runner{
		engine:    engine,
		templates: template.NewEngine(),
		template:  template.DefaultResultTemplate,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.templates.ValidateTemplate(r.template); err != nil {
		return nil, fmt.Errorf("invalid result template: %w", err)
	}

	return r, nil
}

// Run reads rows from in until EOF and writes one rendered line per
// evaluated row to out. Row failures do not stop the run; read, write and
// context errors do.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) (Summary, error) {
	var summary Summary

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		summary.Rows++

		rendered, evaluated, err := r.runRow(ctx, line, text)
		if err != nil {
			summary.Failed++
			r.logger.Warn("row failed",
				zap.Int("line", line),
				zap.Error(err),
			)
			continue
		}
		if !evaluated {
			summary.Filtered++
			r.logger.Debug("row filtered", zap.Int("line", line))
			continue
		}
		summary.Evaluated++

		if _, err := io.WriteString(out, rendered+"\n"); err != nil {
			return summary, fmt.Errorf("failed to write result: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read dataset: %w", err)
	}

	r.logger.Info("dataset processed",
		zap.Int("rows", summary.Rows),
		zap.Int("evaluated", summary.Evaluated),
		zap.Int("filtered", summary.Filtered),
		zap.Int("failed", summary.Failed),
	)

	return summary, nil
}

// runRow decodes, filters, checks and renders one row.
func (r *Runner) runRow(ctx context.Context, line int, text string) (string, bool, error) {
	row, err := r.engine.DecodeRow([]byte(text))
	if err != nil {
		return "", false, err
	}

	if r.filter != nil {
		matched, err := r.filter.Match(ctx, row)
		if err != nil {
			return "", false, fmt.Errorf("row filter failed: %w", err)
		}
		if !matched {
			return "", false, nil
		}
	}

	results, err := r.engine.Check(row)
	if err != nil {
		return "", false, err
	}

	rendered, err := r.templates.Render(r.template, resultData(line, row, results))
	if err != nil {
		return "", false, err
	}
	return rendered, true, nil
}

func resultData(line int, row map[string]float64, results []bool) map[string]interface{} {
	values := make([]interface{}, len(results))
	matched := 0
	for i, ok := range results {
		values[i] = ok
		if ok {
			matched++
		}
	}

	rowData := make(map[string]interface{}, len(row))
	for k, v := range row {
		rowData[k] = v
	}

	return map[string]interface{}{
		"line":    line,
		"results": values,
		"matched": matched,
		"total":   len(results),
		"row":     rowData,
	}
}
