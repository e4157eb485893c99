package filter

import (
	"fmt"
	"strings"

	"github.com/Knetic/govaluate"

	"scry/internal/parse"
)

// Expr is a boolean govaluate expression evaluated against the fields of a
// line. The raw text is available as the parameter "line".
type Expr struct {
	src  string
	expr *govaluate.EvaluableExpression
}

func NewExpr(src string) (*Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}
	expr, err := govaluate.NewEvaluableExpression(src)
	if err != nil {
		return nil, fmt.Errorf("parse expression %q: %w", src, err)
	}
	return &Expr{src: src, expr: expr}, nil
}

// Match reports whether the expression is true for line. A nil Expr matches
// everything; evaluation errors (missing fields, type mismatches) do not match.
func (e *Expr) Match(line string) bool {
	if e == nil {
		return true
	}
	params := parse.Fields(line)
	params["line"] = line
	result, err := e.expr.Evaluate(params)
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}

func (e *Expr) String() string {
	if e == nil {
		return ""
	}
	return e.src
}
