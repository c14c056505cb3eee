package builtin

import (
	"context"
	"math"
	"strconv"

	// Packages
	govaluate "github.com/casbin/govaluate"
	toolcall "github.com/mutablelogic/go-toolcall"
	plugin "github.com/mutablelogic/go-toolcall/pkg/plugin"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	CalculatorID = "calculator"
)

// Constants available in expressions
var constants = map[string]any{
	"pi": math.Pi,
	"e":  math.E,
}

// Functions available in expressions
var functions = map[string]govaluate.ExpressionFunction{
	"sqrt":  unary(math.Sqrt),
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"exp":   unary(math.Exp),
	"abs":   unary(math.Abs),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(math.Round),
	"pow": func(args ...any) (any, error) {
		x, y, err := binary(args)
		if err != nil {
			return nil, err
		}
		return math.Pow(x, y), nil
	},
	"min": func(args ...any) (any, error) {
		x, y, err := binary(args)
		if err != nil {
			return nil, err
		}
		return math.Min(x, y), nil
	},
	"max": func(args ...any) (any, error) {
		x, y, err := binary(args)
		if err != nil {
			return nil, err
		}
		return math.Max(x, y), nil
	},
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Calculator returns the calculator plugin
func Calculator() plugin.Plugin {
	return plugin.New(CalculatorID, plugin.Handlers{
		"calculate": calculate,
	})
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Evaluate an arithmetic expression, returning the result as text.
// Integral results have no fractional part.
func Evaluate(expression string) (string, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, functions)
	if err != nil {
		return "", toolcall.ErrInvalidArguments.Withf("cannot parse %q: %v", expression, err)
	}
	value, err := expr.Evaluate(constants)
	if err != nil {
		return "", toolcall.ErrExecution.With(err)
	}
	result, ok := value.(float64)
	switch {
	case !ok:
		return "", toolcall.ErrInvalidArguments.Withf("%q did not produce a number", expression)
	case math.IsInf(result, 0):
		return "", toolcall.ErrExecution.With("division by zero or overflow")
	case math.IsNaN(result):
		return "", toolcall.ErrExecution.With("result is not a number")
	case result == math.Trunc(result) && math.Abs(result) < 1e15:
		return strconv.FormatFloat(result, 'f', 0, 64), nil
	default:
		return strconv.FormatFloat(result, 'g', -1, 64), nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func calculate(_ context.Context, args map[string]any) (any, error) {
	expression, err := plugin.String(args, "expression")
	if err != nil {
		return nil, err
	}
	return Evaluate(expression)
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, toolcall.ErrInvalidArguments.Withf("expected one argument, got %d", len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, toolcall.ErrInvalidArguments.Withf("expected a number, got %v", args[0])
		}
		return fn(x), nil
	}
}

func binary(args []any) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, toolcall.ErrInvalidArguments.Withf("expected two arguments, got %d", len(args))
	}
	x, ok := args[0].(float64)
	if !ok {
		return 0, 0, toolcall.ErrInvalidArguments.Withf("expected a number, got %v", args[0])
	}
	y, ok := args[1].(float64)
	if !ok {
		return 0, 0, toolcall.ErrInvalidArguments.Withf("expected a number, got %v", args[1])
	}
	return x, y, nil
}
