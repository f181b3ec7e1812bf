package regression

import (
	"errors"
	"math"
	"testing"
)

func TestCurvePredict(t *testing.T) {
	tests := []struct {
		name     string
		curve    Curve
		flow     float64
		expected float64
		epsilon  float64
	}{
		{
			name:     "linear",
			curve:    Linear{Slope: 0.01, Intercept: 5},
			flow:     1000,
			expected: 15,
			epsilon:  1e-9,
		},
		{
			name:     "linear negative prediction passes through",
			curve:    Linear{Slope: -1, Intercept: 2},
			flow:     10,
			expected: -8,
			epsilon:  1e-9,
		},
		{
			name:     "exponential",
			curve:    Exponential{Coefficient: 2, Rate: 0.001},
			flow:     1000,
			expected: 2 * math.E,
			epsilon:  1e-9,
		},
		{
			name:     "polynomial",
			curve:    Polynomial{A: 2, B: 3, C: 4},
			flow:     10,
			expected: 234,
			epsilon:  1e-9,
		},
		{
			name:     "logarithmic",
			curve:    Logarithmic{A: 3, B: 1},
			flow:     math.E,
			expected: 4,
			epsilon:  1e-9,
		},
		{
			name:     "power",
			curve:    Power{A: 2, B: 0.5},
			flow:     16,
			expected: 8,
			epsilon:  1e-9,
		},
		{
			name:     "power identity",
			curve:    Power{A: 1, B: 1},
			flow:     1800,
			expected: 1800,
			epsilon:  1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.curve.Predict(tt.flow)
			if err != nil {
				t.Fatalf("Predict(%v) returned error: %v", tt.flow, err)
			}
			if math.Abs(got-tt.expected) > tt.epsilon {
				t.Errorf("Predict(%v) = %v, want %v", tt.flow, got, tt.expected)
			}
		})
	}
}

func TestLogarithmicDomain(t *testing.T) {
	curve := Logarithmic{A: 2, B: 1}

	for _, flow := range []float64{0, -5} {
		_, err := curve.Predict(flow)
		if !errors.Is(err, ErrOutOfDomain) {
			t.Errorf("Predict(%v) error = %v, want ErrOutOfDomain", flow, err)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		want    Kind
		wantErr bool
	}{
		{name: "linear", kind: "Linear", want: KindLinear},
		{name: "exponential", kind: "Exponential", want: KindExponential},
		{name: "polynomial", kind: "Polynomial", want: KindPolynomial},
		{name: "logarithmic", kind: "Logarithmic", want: KindLogarithmic},
		{name: "power", kind: "Power", want: KindPower},
		{name: "unknown kind", kind: "Quadratic", wantErr: true},
		{name: "empty kind", kind: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve, err := New(tt.kind, 1, 2, 3)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New(%q) error = nil, want error", tt.kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) returned error: %v", tt.kind, err)
			}
			if curve.Kind() != tt.want {
				t.Errorf("New(%q).Kind() = %v, want %v", tt.kind, curve.Kind(), tt.want)
			}
		})
	}
}
