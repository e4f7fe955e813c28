package mambo

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Vec is an immutable dense vector. Every operation returns a fresh Vec and
// leaves its operands untouched, so snapshots of training state can be shared
// across goroutines without copying.
type Vec struct {
	values []float64
}

// NewVec builds a vector from the given components. A NaN component fails
// fast with ErrNaNVector; it is the canary that catches malformed worker
// replies before they poison the weights.
func NewVec(values []float64) (Vec, error) {
	if floats.HasNaN(values) {
		return Vec{}, fmt.Errorf("%w (len=%d)", ErrNaNVector, len(values))
	}
	out := make([]float64, len(values))
	copy(out, values)
	return Vec{values: out}, nil
}

// MustVec is NewVec for literals; it panics on NaN components.
func MustVec(values ...float64) Vec {
	v, err := NewVec(values)
	if err != nil {
		panic(err)
	}
	return v
}

// Zeros returns the zero vector of dimension n.
func Zeros(n int) Vec {
	return Vec{values: make([]float64, n)}
}

// Const returns a vector of dimension n with every component set to c.
func Const(n int, c float64) Vec {
	values := make([]float64, n)
	for i := range values {
		values[i] = c
	}
	return Vec{values: values}
}

func (v Vec) Len() int { return len(v.values) }

func (v Vec) At(i int) float64 { return v.values[i] }

// Values returns a copy of the components.
func (v Vec) Values() []float64 {
	out := make([]float64, len(v.values))
	copy(out, v.values)
	return out
}

func (v Vec) clone() []float64 {
	out := make([]float64, len(v.values))
	copy(out, v.values)
	return out
}

// Add returns v + o. Panics on dimension mismatch, as gonum does.
func (v Vec) Add(o Vec) Vec {
	out := v.clone()
	floats.Add(out, o.values)
	return Vec{values: out}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	out := v.clone()
	floats.Sub(out, o.values)
	return Vec{values: out}
}

// Scale returns c * v.
func (v Vec) Scale(c float64) Vec {
	out := v.clone()
	floats.Scale(c, out)
	return Vec{values: out}
}

func (v Vec) Dot(o Vec) float64 {
	return floats.Dot(v.values, o.values)
}

func (v Vec) Sum() float64 {
	return floats.Sum(v.values)
}

func (v Vec) Mean() float64 {
	if len(v.values) == 0 {
		return 0
	}
	return floats.Sum(v.values) / float64(len(v.values))
}

// Sparsity reports the fraction of exactly-zero components.
func (v Vec) Sparsity() float64 {
	if len(v.values) == 0 {
		return 0
	}
	zeros := 0
	for _, x := range v.values {
		if x == 0 {
			zeros++
		}
	}
	return float64(zeros) / float64(len(v.values))
}

// EqualApprox reports whether v and o agree component-wise within tol.
func (v Vec) EqualApprox(o Vec, tol float64) bool {
	return floats.EqualApprox(v.values, o.values, tol)
}

// MeanVecs reduces a non-empty slice of same-dimension vectors to their
// component-wise mean.
func MeanVecs(vs []Vec) (Vec, error) {
	if len(vs) == 0 {
		return Vec{}, fmt.Errorf("mean of zero vectors")
	}
	out := vs[0].clone()
	for _, v := range vs[1:] {
		floats.Add(out, v.values)
	}
	floats.Scale(1/float64(len(vs)), out)
	return Vec{values: out}, nil
}
