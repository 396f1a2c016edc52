package stretch

// MTF is the midtones transfer function. It maps 0 to 0, 1 to 1 and m to
// 0.5, and is the identity when m is 0.5. For m in (0,1) it is continuous
// and strictly increasing in x.
func MTF(m, x float64) float64 {
	switch {
	case x <= 0: return 0
	case x >= 1: return 1
	case m <= 0: return 1
	case m >= 1: return 0
	}
	return (m - 1) * x / ((2*m - 1)*x - m)
}

// MidtonesBalance solves MTF(m, x) == y for m. Inputs at the ends of the
// range can't be moved, so they get the identity curve.
func MidtonesBalance(x, y float64) float64 {
	if x <= 0 || x >= 1 || y <= 0 || y >= 1 {
		return 0.5
	}
	return x * (y - 1) / (2*x*y - x - y)
}
