// Package regression provides the site-specific flow-to-concentration curve
// fits and the per-site catalog they are loaded into.
//
// Each fitted form is its own variant carrying only the coefficients it
// needs, so an invalid coefficient combination cannot be represented and an
// unrecognized kind fails at load time rather than falling through at
// evaluation time.
package regression

import (
	"errors"
	"fmt"
	"math"
)

// Kind labels one of the supported curve-fit forms.
type Kind string

const (
	KindLinear      Kind = "Linear"
	KindExponential Kind = "Exponential"
	KindPolynomial  Kind = "Polynomial"
	KindLogarithmic Kind = "Logarithmic"
	KindPower       Kind = "Power"
)

// ErrOutOfDomain is returned when a flow value lies outside a curve's
// mathematical domain (non-positive flow for a logarithmic fit). The sample
// yields no prediction; the site is not aborted.
var ErrOutOfDomain = errors.New("flow out of regression domain")

// Curve predicts suspended-sediment concentration from flow.
type Curve interface {
	Kind() Kind
	Predict(flow float64) (float64, error)
}

// Linear is concentration = Slope*flow + Intercept.
type Linear struct {
	Slope     float64
	Intercept float64
}

func (c Linear) Kind() Kind { return KindLinear }

func (c Linear) Predict(flow float64) (float64, error) {
	return c.Slope*flow + c.Intercept, nil
}

// Exponential is concentration = Coefficient*exp(Rate*flow).
type Exponential struct {
	Coefficient float64
	Rate        float64
}

func (c Exponential) Kind() Kind { return KindExponential }

func (c Exponential) Predict(flow float64) (float64, error) {
	return c.Coefficient * math.Exp(c.Rate*flow), nil
}

// Polynomial is the degree-2 fit concentration = A*flow² + B*flow + C.
type Polynomial struct {
	A float64
	B float64
	C float64
}

func (c Polynomial) Kind() Kind { return KindPolynomial }

func (c Polynomial) Predict(flow float64) (float64, error) {
	return c.A*flow*flow + c.B*flow + c.C, nil
}

// Logarithmic is concentration = A*ln(flow) + B, defined for flow > 0 only.
type Logarithmic struct {
	A float64
	B float64
}

func (c Logarithmic) Kind() Kind { return KindLogarithmic }

func (c Logarithmic) Predict(flow float64) (float64, error) {
	if flow <= 0 {
		return 0, ErrOutOfDomain
	}
	return c.A*math.Log(flow) + c.B, nil
}

// Power is concentration = A*flow^B.
type Power struct {
	A float64
	B float64
}

func (c Power) Kind() Kind { return KindPower }

func (c Power) Predict(flow float64) (float64, error) {
	return c.A * math.Pow(flow, c.B), nil
}

// New builds a Curve from a kind label and the three generic coefficient
// columns of the catalog table. Forms with fewer than three coefficients
// ignore the trailing columns.
func New(kind string, a, b, c float64) (Curve, error) {
	switch Kind(kind) {
	case KindLinear:
		return Linear{Slope: a, Intercept: b}, nil
	case KindExponential:
		return Exponential{Coefficient: a, Rate: b}, nil
	case KindPolynomial:
		return Polynomial{A: a, B: b, C: c}, nil
	case KindLogarithmic:
		return Logarithmic{A: a, B: b}, nil
	case KindPower:
		return Power{A: a, B: b}, nil
	default:
		return nil, fmt.Errorf("unrecognized regression kind %q", kind)
	}
}
