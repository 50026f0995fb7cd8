package server

import (
	"strings"

	"reactive-dashboard/src/models"

	"github.com/google/cel-go/cel"
)

// dashboardFilter is an optional CEL predicate over dashboard records.
// When disabled, Match always returns true.
type dashboardFilter struct {
	prog    cel.Program
	enabled bool
}

func newDashboardFilter(expr string) (dashboardFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return dashboardFilter{}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("symbol", cel.StringType),
		cel.Variable("price", cel.DoubleType),
		cel.Variable("sentiment", cel.StringType),
		cel.Variable("ts_ms", cel.IntType),
	)
	if err != nil {
		return dashboardFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return dashboardFilter{}, iss.Err()
	}
	checked, iss := env.Check(ast)
	if iss != nil && iss.Err() != nil {
		return dashboardFilter{}, iss.Err()
	}
	if !checked.OutputType().IsExactType(cel.BoolType) {
		return dashboardFilter{}, errNotBoolean{expr}
	}
	prog, err := env.Program(checked)
	if err != nil {
		return dashboardFilter{}, err
	}
	return dashboardFilter{prog: prog, enabled: true}, nil
}

// Match evaluates the predicate; evaluation errors count as no match
func (f dashboardFilter) Match(info models.MStockInfo) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"symbol":    info.Symbol,
		"price":     info.Price,
		"sentiment": string(info.Sentiment),
		"ts_ms":     info.Time.UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

type errNotBoolean struct{ expr string }

func (e errNotBoolean) Error() string {
	return "filter must be a boolean expression: " + e.expr
}
