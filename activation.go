package rbm

import "github.com/chewxy/math32"

// expClamp bounds the exponent so that math32.Exp never overflows a float32.
const expClamp = 88

// Logistic is the sigmoid 1/(1+e^-x). The argument is clamped to ±88.
func Logistic(x float32) float32 {
	switch {
	case x > expClamp:
		x = expClamp
	case x < -expClamp:
		x = -expClamp
	}
	return 1 / (1 + math32.Exp(-x))
}

func isFinite(a []float32) bool {
	for _, v := range a {
		if math32.IsInf(v, 0) {
			return false
		}
		if math32.IsNaN(v) {
			return false
		}
	}
	return true
}
