package causal

import "math"

// olsFit is an ordinary least squares fit of y on an intercept plus the
// given regressor columns, solved through the normal equations.
type olsFit struct {
	beta []float64 // intercept first, then one coefficient per regressor
	se   []float64 // standard errors, aligned with beta; NaN when df <= 0
	df   int       // residual degrees of freedom (n - p)
}

// fitOLS solves y ~ 1 + xs[0] + xs[1] + ... for n rows. It returns an
// EstimationError when the design matrix is singular (collinear columns,
// constant treatment) or when there are more parameters than rows.
func fitOLS(y []float64, xs [][]float64) (*olsFit, error) {
	n := len(y)
	p := len(xs) + 1
	if n < p {
		return nil, &EstimationError{Reason: "more parameters than rows"}
	}

	// row returns the design-matrix entry for row i, column j.
	row := func(i, j int) float64 {
		if j == 0 {
			return 1
		}
		return xs[j-1][i]
	}

	// Normal equations: (X'X) beta = X'y.
	xtx := make([][]float64, p)
	xty := make([]float64, p)
	for j := 0; j < p; j++ {
		xtx[j] = make([]float64, p)
		for k := 0; k < p; k++ {
			var s float64
			for i := 0; i < n; i++ {
				s += row(i, j) * row(i, k)
			}
			xtx[j][k] = s
		}
		var s float64
		for i := 0; i < n; i++ {
			s += row(i, j) * y[i]
		}
		xty[j] = s
	}

	inv, err := invertSPD(xtx)
	if err != nil {
		return nil, err
	}

	beta := make([]float64, p)
	for j := 0; j < p; j++ {
		for k := 0; k < p; k++ {
			beta[j] += inv[j][k] * xty[k]
		}
	}

	// Residual variance and coefficient standard errors.
	var rss float64
	for i := 0; i < n; i++ {
		pred := 0.0
		for j := 0; j < p; j++ {
			pred += beta[j] * row(i, j)
		}
		r := y[i] - pred
		rss += r * r
	}
	df := n - p
	se := make([]float64, p)
	if df > 0 {
		s2 := rss / float64(df)
		for j := 0; j < p; j++ {
			se[j] = math.Sqrt(s2 * inv[j][j])
		}
	} else {
		for j := range se {
			se[j] = math.NaN()
		}
	}

	return &olsFit{beta: beta, se: se, df: df}, nil
}

// invertSPD inverts a symmetric positive semi-definite matrix by
// Gauss-Jordan elimination with partial pivoting. A vanishing pivot
// (relative to the largest diagonal entry) means collinear columns.
func invertSPD(a [][]float64) ([][]float64, error) {
	p := len(a)

	// Work on an augmented copy [A | I].
	m := make([][]float64, p)
	var scale float64
	for i := 0; i < p; i++ {
		m[i] = make([]float64, 2*p)
		copy(m[i], a[i])
		m[i][p+i] = 1
		if d := math.Abs(a[i][i]); d > scale {
			scale = d
		}
	}
	if scale == 0 {
		return nil, &EstimationError{Reason: "zero design matrix"}
	}
	tol := scale * 1e-12

	for col := 0; col < p; col++ {
		pivot := col
		for r := col + 1; r < p; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < tol {
			return nil, &EstimationError{Reason: "singular design matrix"}
		}
		m[col], m[pivot] = m[pivot], m[col]

		pv := m[col][col]
		for k := 0; k < 2*p; k++ {
			m[col][k] /= pv
		}
		for r := 0; r < p; r++ {
			if r == col {
				continue
			}
			f := m[r][col]
			if f == 0 {
				continue
			}
			for k := 0; k < 2*p; k++ {
				m[r][k] -= f * m[col][k]
			}
		}
	}

	inv := make([][]float64, p)
	for i := 0; i < p; i++ {
		inv[i] = m[i][p:]
	}
	return inv, nil
}
