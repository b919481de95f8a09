package utils

import "fmt"

// MaxMonomialOrder bounds the total degree accepted by MonomialPowers
const MaxMonomialOrder = 8

// NumMonomials returns the number of multi-indices in dim variables with
// total degree <= order, i.e. binomial(order+dim, dim)
func NumMonomials(dim, order int) int {
	return Binomial(order+dim, dim)
}

// MonomialPowers lists every multi-index of total degree <= order in dim
// variables. The ordering increments component 0 first and carries into
// higher components once the total degree overflows, so the list starts
// (0,0), (1,0), ..., (order,0), (0,1), (1,1), ...
func MonomialPowers(dim, order int) []IntVect {
	if dim < 1 || dim > MaxDim {
		panic(fmt.Sprintf("utils: monomial dimension %d out of range", dim))
	}
	if order < 0 || order > MaxMonomialOrder {
		panic(fmt.Sprintf("utils: monomial order %d out of range", order))
	}
	size := NumMonomials(dim, order)
	powers := make([]IntVect, size)

	var index IntVect
	for ix := 0; ix < size; ix++ {
		// shift overflow to the right
		for d := 0; index.Sum(dim) > order && d < dim-1; d++ {
			index[d] = 0
			index[d+1]++
		}
		powers[ix] = index
		index[0]++
	}
	return powers
}

// MultiIndicesOfOrder returns the multi-indices of exactly the given total
// degree, in MonomialPowers order
func MultiIndicesOfOrder(dim, order int) []IntVect {
	all := MonomialPowers(dim, order)
	out := make([]IntVect, 0, len(all))
	for _, iv := range all {
		if iv.Sum(dim) == order {
			out = append(out, iv)
		}
	}
	return out
}

// SubIndices returns every beta with 0 <= beta <= alpha component-wise
func SubIndices(alpha IntVect, dim int) []IntVect {
	n := 1
	for d := 0; d < dim; d++ {
		n *= alpha[d] + 1
	}
	out := make([]IntVect, 0, n)
	var beta IntVect
	for i := 0; i < n; i++ {
		out = append(out, beta)
		for d := 0; d < dim; d++ {
			if beta[d] < alpha[d] {
				beta[d]++
				break
			}
			beta[d] = 0
		}
	}
	return out
}

// Binomial returns n choose k
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}

// MultiBinomial returns the multi-index binomial coefficient
// prod_d binomial(alpha_d, beta_d)
func MultiBinomial(alpha, beta IntVect, dim int) float64 {
	r := 1
	for d := 0; d < dim; d++ {
		r *= Binomial(alpha[d], beta[d])
	}
	return float64(r)
}
