package rules

import (
	"fmt"

	"github.com/aescanero/dago-node-rules/internal/eval/expr"
	"go.uber.org/zap"
)

// CompiledRule is a rule source and its AST.
type CompiledRule struct {
	Source string
	Root   expr.Node
}

// Engine checks data rows against a fixed list of compiled rules
type Engine struct {
	dataKeys []string
	rules    []CompiledRule
	logger   *zap.Logger
}

type options struct {
	logger   *zap.Logger
	maxDepth int
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger used while compiling. The default discards
// all output.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxDepth sets the nesting limit passed to the expression parser.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// New compiles every rule against dataKeys. The first rule that fails to
// compile aborts construction with a *CompileError.
func New(ruleSources []string, dataKeys []string, opts ...Option) (*Engine, error) {
	o := options{maxDepth: expr.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	e := &Engine{
		dataKeys: append([]string(nil), dataKeys...),
		rules:    make([]CompiledRule, 0, len(ruleSources)),
		logger:   o.logger,
	}

	for i, src := range ruleSources {
		root, err := expr.Compile(src, expr.WithMaxDepth(o.maxDepth))
		if err != nil {
			e.logger.Error("rule compilation failed",
				zap.Int("rule_index", i),
				zap.String("rule", src),
				zap.Error(err),
			)
			return nil, &CompileError{Index: i, Rule: src, Err: err}
		}

		// Out-of-range indexes are legal here and fail at evaluation time.
		if maxIdx := expr.MaxIndex(root); maxIdx >= len(e.dataKeys) {
			e.logger.Warn("rule references a data key index beyond the declared keys",
				zap.Int("rule_index", i),
				zap.String("rule", src),
				zap.Int("index", maxIdx),
				zap.Int("data_keys", len(e.dataKeys)),
			)
		}

		e.logger.Debug("compiled rule",
			zap.Int("rule_index", i),
			zap.String("rule", src),
			zap.String("ast", root.String()),
		)
		e.rules = append(e.rules, CompiledRule{Source: src, Root: root})
	}

	e.logger.Info("rule engine ready",
		zap.Int("rules", len(e.rules)),
		zap.Strings("data_keys", e.dataKeys),
	)

	return e, nil
}

// NewFromRuleSet compiles the rules of rs.
func NewFromRuleSet(rs *RuleSet, opts ...Option) (*Engine, error) {
	if rs == nil {
		return nil, fmt.Errorf("rule set is nil")
	}
	return New(rs.Rules, rs.DataKeys, opts...)
}

// Check evaluates every rule against data and returns one result per rule,
// in rule order. A missing data key or a failing rule fails the whole call.
func (e *Engine) Check(data map[string]float64) ([]bool, error) {
	values, err := e.Values(data)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(values)
}

// Values resolves data into the positional vector the rules read, in
// data-key order.
func (e *Engine) Values(data map[string]float64) ([]float64, error) {
	values := make([]float64, len(e.dataKeys))
	for i, key := range e.dataKeys {
		v, ok := data[key]
		if !ok {
			return nil, &MissingKeyError{Key: key}
		}
		values[i] = v
	}
	return values, nil
}

// Evaluate runs every rule against a positional value vector.
func (e *Engine) Evaluate(values []float64) ([]bool, error) {
	results := make([]bool, len(e.rules))
	for i := range e.rules {
		ok, err := expr.Truthy(e.rules[i].Root, values)
		if err != nil {
			return nil, &EvalError{Index: i, Err: err}
		}
		results[i] = ok
	}
	return results, nil
}

// DataKeys returns a copy of the declared data keys.
func (e *Engine) DataKeys() []string {
	return append([]string(nil), e.dataKeys...)
}

// Rules returns a copy of the compiled rules. The ASTs are shared and must
// not be modified.
func (e *Engine) Rules() []CompiledRule {
	return append([]CompiledRule(nil), e.rules...)
}

// Len returns the number of compiled rules.
func (e *Engine) Len() int {
	return len(e.rules)
}
