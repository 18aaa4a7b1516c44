package product

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"

	"estoque/internal/core/apperror"
	"estoque/internal/metrics"
	"estoque/pkg/logger"
)

// RuleNotifier is a configurable alert policy: it evaluates a CEL expression
// against the product snapshot and emits a warning-level alert when the
// expression is true. Operators use it for thresholds the built-in notifiers
// do not cover, e.g. "stock <= min_stock * 2 && stock > 0".
//
// Available variables: stock (int), min_stock (int), price (double),
// name (string). The expression must evaluate to bool.
type RuleNotifier struct {
	name    string
	expr    string
	program cel.Program
}

// NewRuleNotifier compiles expr and returns the notifier, or a validation
// error when the expression does not compile or is not boolean.
func NewRuleNotifier(name, expr string) (*RuleNotifier, error) {
	env, err := cel.NewEnv(
		cel.Variable("stock", cel.IntType),
		cel.Variable("min_stock", cel.IntType),
		cel.Variable("price", cel.DoubleType),
		cel.Variable("name", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel environment: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, apperror.NewValidation("invalid alert rule expression").
			WithDetail("rule", name).
			WithDetail("error", iss.Err().Error())
	}
	if ast.OutputType().String() != "bool" {
		return nil, apperror.NewValidation("alert rule expression must evaluate to bool").
			WithDetail("rule", name).
			WithDetail("type", ast.OutputType().String())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build cel program: %w", err)
	}

	return &RuleNotifier{
		name:    name,
		expr:    expr,
		program: program,
	}, nil
}

// Name returns the rule name used in alerts.
func (n *RuleNotifier) Name() string {
	return n.name
}

func (n *RuleNotifier) Update(ctx context.Context, p *Product) error {
	price, _ := p.Price.Float64()
	out, _, err := n.program.Eval(map[string]any{
		"stock":     p.Stock,
		"min_stock": p.MinStock,
		"price":     price,
		"name":      p.Name,
	})
	if err != nil {
		return fmt.Errorf("evaluate rule %q: %w", n.name, err)
	}

	fired, ok := out.Value().(bool)
	if !ok || !fired {
		return nil
	}

	logger.Warn(ctx, "stock rule alert",
		"rule", n.name,
		"product", p.Name,
		"stock", p.Stock,
		"min_stock", p.MinStock,
	)
	metrics.StockAlertsTotal.WithLabelValues("rule").Inc()
	return nil
}
