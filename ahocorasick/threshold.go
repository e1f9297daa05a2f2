package ahocorasick

import "math"

// Thresholder decides the physical representation of a node once all of its
// children are known. occupied is the number of children, level the node's
// depth (root is 0) and interval the width of the key range max-min+1, which
// is zero or negative for a node without children.
//
// Returning true selects a dense range node.
type Thresholder interface {
	Dense(occupied, level, interval int) bool
}

// ThresholdFunc adapts a function to the Thresholder interface.
type ThresholdFunc func(occupied, level, interval int) bool

func (f ThresholdFunc) Dense(occupied, level, interval int) bool {
	return f(occupied, level, interval)
}

var (
	// AlwaysHash keeps every node as a hash node.
	AlwaysHash Thresholder = ThresholdFunc(func(int, int, int) bool { return false })
	// AlwaysRange turns every node into a range node.
	AlwaysRange Thresholder = ThresholdFunc(func(int, int, int) bool { return true })
)

// RangeNodeThreshold weighs the cost of a hash node (a child slot plus a key
// slot per entry, with fixed overhead for the key array) against a dense
// array spanning the key interval. Deeper nodes need a denser interval.
type RangeNodeThreshold struct {
	Exponent       float64
	LinearFactor   float64
	MaxValue       float64
	ConstantFactor float64
}

// DefaultThreshold returns the threshold used when Options.Threshold is nil.
func DefaultThreshold() RangeNodeThreshold {
	return RangeNodeThreshold{
		Exponent:       1,
		LinearFactor:   1,
		MaxValue:       0.65,
		ConstantFactor: 2,
	}
}

func (t RangeNodeThreshold) Dense(occupied, level, interval int) bool {
	if interval <= 8 {
		return true
	}
	keyArrayCost := occupied/4 + 3
	ratio := t.MaxValue - t.LinearFactor/math.Pow(t.ConstantFactor+float64(level), t.Exponent)
	return float64(occupied+keyArrayCost) > float64(interval)*ratio
}
