// Package cards provides the card database: built-in definitions, YAML-loaded
// extensions and the CEL evaluator that card effect formulas run on.
package cards

import (
	"github.com/google/cel-go/cel"
)

// Evaluator compiles and runs effect formulas through CEL. It satisfies
// game.Evaluator.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator initializes the CEL environment with the variables effect
// formulas may reference.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("actor", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("target", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("turn", cel.IntType),
	)
	if err != nil {
		return nil, err
	}
	return &Evaluator{env: env}, nil
}

// Eval executes a formula against the provided context.
func (e *Evaluator) Eval(formula string, context map[string]any) (any, error) {
	ast, iss := e.env.Compile(formula)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	prog, err := e.env.Program(ast)
	if err != nil {
		return nil, err
	}
	out, _, err := prog.Eval(context)
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}
