package pattern

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
	"github.com/bodgit/bmpsteg/bmp"
)

// Expression describes a custom pattern as three formulas, one per channel.
// Each formula can use the variables x, y, width and height as well as r, g
// and b, which hold the original color of the pixel. The functions sin, cos,
// tan, atan2, sqrt, hypot, pow, abs, floor, min and max are available. An
// empty formula evaluates to zero.
type Expression struct {
	Red   string `yaml:"red"`
	Green string `yaml:"green"`
	Blue  string `yaml:"blue"`
}

// IsZero reports whether no formula has been set.
func (e Expression) IsZero() bool {
	return e.Red == "" && e.Green == "" && e.Blue == ""
}

func numbers(name string, n int, args []interface{}) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s expects %d argument(s), got %d", name, n, len(args))
	}
	f := make([]float64, n)
	for i, a := range args {
		v, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("argument %d of %s must be numeric", i+1, name)
		}
		f[i] = v
	}
	return f, nil
}

func unary(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		f, err := numbers(name, 1, args)
		if err != nil {
			return nil, err
		}
		return fn(f[0]), nil
	}
}

func binary(name string, fn func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		f, err := numbers(name, 2, args)
		if err != nil {
			return nil, err
		}
		return fn(f[0], f[1]), nil
	}
}

var functions = map[string]govaluate.ExpressionFunction{
	"sin":   unary("sin", math.Sin),
	"cos":   unary("cos", math.Cos),
	"tan":   unary("tan", math.Tan),
	"sqrt":  unary("sqrt", math.Sqrt),
	"abs":   unary("abs", math.Abs),
	"floor": unary("floor", math.Floor),
	"atan2": binary("atan2", math.Atan2),
	"hypot": binary("hypot", math.Hypot),
	"pow":   binary("pow", math.Pow),
	"min":   binary("min", math.Min),
	"max":   binary("max", math.Max),
}

var variables = map[string]struct{}{
	"x": {}, "y": {}, "width": {}, "height": {}, "r": {}, "g": {}, "b": {},
}

func compile(channel, formula string) (*govaluate.EvaluableExpression, error) {
	if formula == "" {
		formula = "0"
	}
	e, err := govaluate.NewEvaluableExpressionWithFunctions(formula, functions)
	if err != nil {
		return nil, fmt.Errorf("pattern: %s: %w", channel, err)
	}
	for _, v := range e.Vars() {
		if _, ok := variables[v]; !ok {
			return nil, fmt.Errorf("pattern: %s: unknown variable %q", channel, v)
		}
	}
	return e, nil
}

func evaluate(e *govaluate.EvaluableExpression, params map[string]interface{}) (float64, error) {
	v, err := e.Evaluate(params)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case float64:
		return v, nil
	case bool:
		if v {
			return 255, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("pattern: expression %q returned %T, not a number", e.String(), v)
	}
}

// Compile checks all three formulas parse and only use known variables.
func (e Expression) Compile() error {
	_, err := e.painter(nil, bmp.Geometry{})
	return err
}

func (e Expression) painter(src []byte, g bmp.Geometry) (paintFunc, error) {
	var exprs [3]*govaluate.EvaluableExpression
	for i, f := range []struct{ channel, formula string }{
		{"red", e.Red},
		{"green", e.Green},
		{"blue", e.Blue},
	} {
		var err error
		if exprs[i], err = compile(f.channel, f.formula); err != nil {
			return nil, err
		}
	}

	params := map[string]interface{}{
		"width":  float64(g.Width),
		"height": float64(g.Height),
	}

	return func(x, y int) (float64, float64, float64, error) {
		i := g.PixelOffset(x, y)
		params["x"] = float64(x)
		params["y"] = float64(y)
		params["r"] = float64(src[i+2])
		params["g"] = float64(src[i+1])
		params["b"] = float64(src[i])

		var rgb [3]float64
		for c, expr := range exprs {
			v, err := evaluate(expr, params)
			if err != nil {
				return 0, 0, 0, err
			}
			rgb[c] = v
		}
		return rgb[0], rgb[1], rgb[2], nil
	}, nil
}

// SynthesizeExpression is like Synthesize but computes each pixel using the
// formulas in e.
func SynthesizeExpression(b []byte, e Expression, cs ColorScheme) ([]byte, error) {
	g, err := bmp.Parse(b)
	if err != nil {
		return nil, err
	}
	paint, err := e.painter(b, g)
	if err != nil {
		return nil, err
	}
	return render(b, g, paint, cs)
}
