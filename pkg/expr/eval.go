package expr

import (
	"fmt"
	"math"

	"github.com/Anmol09876/abacus/pkg/domain"
)

type node interface {
	eval(mode domain.TrigMode) (float64, error)
}

type numberNode float64

func (n numberNode) eval(domain.TrigMode) (float64, error) { return float64(n), nil }

type constantNode struct{ name string }

func (n *constantNode) eval(domain.TrigMode) (float64, error) {
	return constants[n.name], nil
}

type negNode struct{ operand node }

func (n *negNode) eval(mode domain.TrigMode) (float64, error) {
	v, err := n.operand.eval(mode)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

func (n *binaryNode) eval(mode domain.TrigMode) (float64, error) {
	x, err := n.left.eval(mode)
	if err != nil {
		return 0, err
	}
	y, err := n.right.eval(mode)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case tokPlus:
		return x + y, nil
	case tokMinus:
		return x - y, nil
	case tokStar:
		return x * y, nil
	case tokSlash:
		return x / y, nil
	case tokPercent:
		return math.Mod(x, y), nil
	case tokCaret:
		return math.Pow(x, y), nil
	}
	return 0, fmt.Errorf("invalid binary operator %d", n.op)
}

type factorialNode struct {
	operand node
}

func (n *factorialNode) eval(mode domain.TrigMode) (float64, error) {
	v, err := n.operand.eval(mode)
	if err != nil {
		return 0, err
	}
	return factorial(v)
}

type callNode struct {
	name string
	args []node
}

func (n *callNode) eval(mode domain.TrigMode) (float64, error) {
	fn := functions[n.name]
	vals := make([]float64, len(n.args))
	for i, arg := range n.args {
		v, err := arg.eval(mode)
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}
	return fn.call(vals, mode)
}

var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
}

type function struct {
	arity int
	call  func(args []float64, mode domain.TrigMode) (float64, error)
}

// toRadians converts a trig argument from the session's angle unit.
func toRadians(v float64, mode domain.TrigMode) float64 {
	switch mode {
	case domain.ModeDeg:
		return v * math.Pi / 180
	case domain.ModeGrad:
		return v * math.Pi / 200
	}
	return v
}

// fromRadians converts an inverse-trig result into the session's angle unit.
func fromRadians(v float64, mode domain.TrigMode) float64 {
	switch mode {
	case domain.ModeDeg:
		return v * 180 / math.Pi
	case domain.ModeGrad:
		return v * 200 / math.Pi
	}
	return v
}

func plain(f func(float64) float64) function {
	return function{arity: 1, call: func(args []float64, _ domain.TrigMode) (float64, error) {
		return f(args[0]), nil
	}}
}

// trig scales the argument; inverse trig scales the result. Hyperbolic
// functions take pure numbers and are never angle-scaled.
func trig(f func(float64) float64) function {
	return function{arity: 1, call: func(args []float64, mode domain.TrigMode) (float64, error) {
		return f(toRadians(args[0], mode)), nil
	}}
}

func inverseTrig(f func(float64) float64) function {
	return function{arity: 1, call: func(args []float64, mode domain.TrigMode) (float64, error) {
		return fromRadians(f(args[0]), mode), nil
	}}
}

// functions is the closed whitelist. log is base-10 and ln is natural,
// matching calculator convention rather than Go's.
var functions = map[string]function{
	"sin":  trig(math.Sin),
	"cos":  trig(math.Cos),
	"tan":  trig(math.Tan),
	"asin": inverseTrig(math.Asin),
	"acos": inverseTrig(math.Acos),
	"atan": inverseTrig(math.Atan),

	"sinh":  plain(math.Sinh),
	"cosh":  plain(math.Cosh),
	"tanh":  plain(math.Tanh),
	"asinh": plain(math.Asinh),
	"acosh": plain(math.Acosh),
	"atanh": plain(math.Atanh),

	"log":  plain(math.Log10),
	"ln":   plain(math.Log),
	"log2": plain(math.Log2),
	"exp":  plain(math.Exp),

	"sqrt":  plain(math.Sqrt),
	"cbrt":  plain(math.Cbrt),
	"abs":   plain(math.Abs),
	"floor": plain(math.Floor),
	"ceil":  plain(math.Ceil),
	"round": plain(math.Round),

	"factorial": {arity: 1, call: func(args []float64, _ domain.TrigMode) (float64, error) {
		return factorial(args[0])
	}},
	"pow": {arity: 2, call: func(args []float64, _ domain.TrigMode) (float64, error) {
		return math.Pow(args[0], args[1]), nil
	}},
	"atan2": {arity: 2, call: func(args []float64, mode domain.TrigMode) (float64, error) {
		return fromRadians(math.Atan2(args[0], args[1]), mode), nil
	}},
}

func factorial(v float64) (float64, error) {
	if v < 0 || v != math.Trunc(v) {
		return 0, fmt.Errorf("factorial is only defined for non-negative integers, got %v", v)
	}
	// 171! overflows float64; let the multiplication run to +Inf and let
	// the caller's finiteness check reject it.
	r := 1.0
	for i := 2.0; i <= v; i++ {
		r *= i
	}
	return r, nil
}
