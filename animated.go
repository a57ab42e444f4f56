package animated

import "fmt"

// Vec2 is a 2D vector used by ValueXY for positions and velocities.
type Vec2 struct {
	X, Y float64
}

// Result is delivered exactly once to the completion callback of every
// driver start. Finished is false when the run was stopped before it
// converged.
type Result struct {
	Finished bool
}

// NodeKind tags the variant of a graph node.
type NodeKind uint8

const (
	KindValue          NodeKind = iota // leaf holding value + offset
	KindInterpolation                  // piecewise mapping of one input
	KindAddition                       // a + b
	KindSubtraction                    // a - b
	KindMultiplication                 // a * b
	KindDivision                       // a / b (0 on division by zero)
	KindModulo                         // non-negative a mod m
	KindDiffClamp                      // accumulated delta clamped to [min, max]
	KindStyle                          // keyed map of nodes and static values
	KindTransform                      // ordered list of single-key transforms
	KindProps                          // flush leaf bound to a host target
	KindTracking                       // flush leaf re-driving a value
)

// String returns the lowercase name used in native configs and logs.
func (k NodeKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindInterpolation:
		return "interpolation"
	case KindAddition:
		return "addition"
	case KindSubtraction:
		return "subtraction"
	case KindMultiplication:
		return "multiplication"
	case KindDivision:
		return "division"
	case KindModulo:
		return "modulus"
	case KindDiffClamp:
		return "diffclamp"
	case KindStyle:
		return "style"
	case KindTransform:
		return "transform"
	case KindProps:
		return "props"
	case KindTracking:
		return "tracking"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Extrapolation selects how an interpolation treats input outside its
// input range. The zero value means "not set" and behaves as
// ExtrapolateExtend unless a broader setting applies.
type Extrapolation uint8

const (
	extrapolateUnset    Extrapolation = iota
	ExtrapolateExtend                 // continue the outer segment linearly
	ExtrapolateClamp                  // pin to the nearest output
	ExtrapolateIdentity               // return the input unchanged
)

// String returns the policy name.
func (e Extrapolation) String() string {
	switch e {
	case extrapolateUnset, ExtrapolateExtend:
		return "extend"
	case ExtrapolateClamp:
		return "clamp"
	case ExtrapolateIdentity:
		return "identity"
	default:
		return fmt.Sprintf("Extrapolation(%d)", int(e))
	}
}

// ParseExtrapolation maps a policy name to its value. The empty string
// yields the unset value.
func ParseExtrapolation(s string) (Extrapolation, error) {
	switch s {
	case "":
		return extrapolateUnset, nil
	case "extend":
		return ExtrapolateExtend, nil
	case "clamp":
		return ExtrapolateClamp, nil
	case "identity":
		return ExtrapolateIdentity, nil
	default:
		return extrapolateUnset, fmt.Errorf("unknown extrapolation %q", s)
	}
}
