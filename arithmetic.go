package animated

import "math"

// Arithmetic combines two scalar nodes with +, -, * or /.
type Arithmetic struct {
	graphNode
	a, b Scalar
}

func newArithmetic(kind NodeKind, a, b Scalar) *Arithmetic {
	n := &Arithmetic{a: a, b: b}
	n.init(n, kind, scalarInput(a), scalarInput(b))
	return n
}

// scalarInput converts a possibly nil Scalar to a Node without producing a
// non-nil interface holding a nil pointer.
func scalarInput(s Scalar) Node {
	if s == nil {
		return nil
	}
	return s
}

// Add returns a node resolving to a + b.
func Add(a, b Scalar) *Arithmetic { return newArithmetic(KindAddition, a, b) }

// Subtract returns a node resolving to a - b.
func Subtract(a, b Scalar) *Arithmetic { return newArithmetic(KindSubtraction, a, b) }

// Multiply returns a node resolving to a * b.
func Multiply(a, b Scalar) *Arithmetic { return newArithmetic(KindMultiplication, a, b) }

// Divide returns a node resolving to a / b. A zero divisor resolves to 0.
func Divide(a, b Scalar) *Arithmetic { return newArithmetic(KindDivision, a, b) }

// Float computes the result from the inputs' current values.
func (n *Arithmetic) Float() float64 {
	a, b := n.a.Float(), n.b.Float()
	switch n.kind {
	case KindAddition:
		return a + b
	case KindSubtraction:
		return a - b
	case KindMultiplication:
		return a * b
	case KindDivision:
		if b == 0 {
			debugf("division by zero in node %d, resolving to 0", n.id)
			return 0
		}
		return a / b
	}
	return 0
}

// Resolve returns Float as any.
func (n *Arithmetic) Resolve() any { return n.Float() }

func (n *Arithmetic) nativeConfig() map[string]any {
	return map[string]any{
		"type":  n.kind.String(),
		"input": n.inputTags(),
	}
}

// Mod resolves to the non-negative remainder of its input by a constant
// modulus.
type Mod struct {
	graphNode
	a       Scalar
	modulus float64
}

// Modulo returns a node resolving to a mod m, always in [0, m) for m > 0.
func Modulo(a Scalar, m float64) *Mod {
	n := &Mod{a: a, modulus: m}
	n.init(n, KindModulo, scalarInput(a))
	return n
}

// Float computes the remainder.
func (n *Mod) Float() float64 {
	m := n.modulus
	return math.Mod(math.Mod(n.a.Float(), m)+m, m)
}

// Resolve returns Float as any.
func (n *Mod) Resolve() any { return n.Float() }

func (n *Mod) nativeConfig() map[string]any {
	return map[string]any{
		"type":    KindModulo.String(),
		"input":   n.a.graph().tag,
		"modulus": n.modulus,
	}
}

// DiffClamp follows the changes of its input but keeps the accumulated
// value inside [min, max]. Scrolling headers use it to hide on scroll down
// and reappear on the first scroll up.
//
// Unlike the other derived nodes DiffClamp is stateful: each read consumes
// the change since the previous read.
type DiffClamp struct {
	graphNode
	a         Scalar
	min, max  float64
	lastInput float64
	value     float64
}

// NewDiffClamp returns a DiffClamp of a bounded by [lo, hi].
func NewDiffClamp(a Scalar, lo, hi float64) *DiffClamp {
	n := &DiffClamp{a: a, min: lo, max: hi}
	n.init(n, KindDiffClamp, scalarInput(a))
	n.lastInput = a.Float()
	n.value = n.lastInput
	return n
}

// Float applies the input change since the last read and returns the
// clamped accumulator.
func (n *DiffClamp) Float() float64 {
	in := n.a.Float()
	diff := in - n.lastInput
	n.lastInput = in
	n.value = math.Min(math.Max(n.value+diff, n.min), n.max)
	return n.value
}

// Resolve returns Float as any.
func (n *DiffClamp) Resolve() any { return n.Float() }

func (n *DiffClamp) nativeConfig() map[string]any {
	return map[string]any{
		"type":  KindDiffClamp.String(),
		"input": n.a.graph().tag,
		"min":   n.min,
		"max":   n.max,
	}
}
