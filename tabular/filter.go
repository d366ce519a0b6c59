package tabular

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter returns a new table holding the rows for which expression is true.
// Every column is a variable; absent cells are nil. Column names that are
// not identifiers, such as "@name", are reachable through row["@name"].
func (t *Table) Filter(expression string) (*Table, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return t.clone(), nil
	}

	program, err := expr.Compile(expression, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}

	out := New(t.columns...)
	for i := range t.rows {
		keep, err := t.match(program, i)
		if err != nil {
			return nil, fmt.Errorf("filter row %d: %w", i, err)
		}
		if keep {
			out.rows = append(out.rows, t.copyRow(i))
		}
	}
	return out, nil
}

func (t *Table) match(program *vm.Program, i int) (bool, error) {
	env := make(map[string]any, len(t.columns)+1)
	for j, c := range t.columns {
		var v any
		if j < len(t.rows[i]) && t.rows[i][j].Present {
			v = exprValue(t.rows[i][j].Value)
		}
		env[c] = v
	}
	env["row"] = copyEnv(env)

	res, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	keep, _ := res.(bool)
	return keep, nil
}

// exprValue turns json.Number into float64 so numeric comparisons work.
func exprValue(v any) any {
	switch t := v.(type) {
	case interface{ Float64() (float64, error) }:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return fmt.Sprint(v)
	case Record:
		return t.Map()
	default:
		return plain(v)
	}
}

func copyEnv(env map[string]any) map[string]any {
	out := make(map[string]any, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}

func (t *Table) copyRow(i int) []Cell {
	row := make([]Cell, len(t.columns))
	copy(row, t.rows[i])
	return row
}

func (t *Table) clone() *Table {
	out := New(t.columns...)
	for i := range t.rows {
		out.rows = append(out.rows, t.copyRow(i))
	}
	return out
}
