package modelutil

import (
	"math"
	"math/bits"
	"strconv"

	"github.com/cargostow/loadplan/pkg/solver"
)

// BoolTimesInt introduces prod = bit * y for a 0/1 variable bit and an
// integer variable y with bounds [lo,hi], and returns prod's index. This
// is exact (not a relaxation) because bit is binary — it is the standard
// four-inequality linearization, and the "AND of a bit and an integer"
// building block spec.md's Product encoding is built from.
func BoolTimesInt(m *solver.Model, name string, bit, y int, lo, hi float64) int {
	prod := m.NewIntVar(name, int64(math.Min(0, lo)), int64(math.Max(0, hi)))
	// prod <= hi*bit
	m.AddConstraint(name+"_ub1", solver.Expr{}.Add(prod, 1).Add(bit, -hi), solver.LE, 0)
	// prod >= lo*bit
	m.AddConstraint(name+"_lb1", solver.Expr{}.Add(prod, 1).Add(bit, -lo), solver.GE, 0)
	// prod <= y - lo*(1-bit)  =>  prod - y - lo*bit <= -lo
	m.AddConstraint(name+"_ub2", solver.Expr{}.Add(prod, 1).Add(y, -1).Add(bit, -lo), solver.LE, -lo)
	// prod >= y - hi*(1-bit)  =>  prod - y - hi*bit >= -hi
	m.AddConstraint(name+"_lb2", solver.Expr{}.Add(prod, 1).Add(y, -1).Add(bit, -hi), solver.GE, -hi)
	return prod
}

// Product introduces prod = a * b for two non-negative bounded integer
// variables and returns prod's index. It binary-expands whichever operand
// has the smaller range into bits and asserts the product as a sum of
// 2^k * AND(bit_k, other_operand) terms — the generic linearization
// spec.md's Placement Model Builder needs for base-area, large-base-lower,
// and surface-contact products, since the backend solver has no native
// multiplication.
func Product(m *solver.Model, name string, a int, loA, hiA float64, b int, loB, hiB float64) int {
	if hiA-loA > hiB-loB {
		// Decompose the smaller-range operand: swap roles so "a" is
		// always the one that gets bit-expanded.
		return Product(m, name, b, loB, hiB, a, loA, hiA)
	}

	rangeA := int64(hiA - loA)
	nbits := bits.Len64(uint64(rangeA))
	if nbits == 0 {
		nbits = 1
	}

	bitVars := make([]int, nbits)
	decompTerms := solver.Expr{}
	for k := 0; k < nbits; k++ {
		bitVars[k] = m.NewBoolVar(nameIndexed(name, "bit", k))
		decompTerms = decompTerms.Add(bitVars[k], math.Pow(2, float64(k)))
	}
	// a - loA = sum(2^k * bit_k)
	decompTerms = decompTerms.Add(a, -1)
	m.AddConstraint(name+"_decomp", decompTerms, solver.EQ, -loA)

	prodLo := loA * loB
	prodHi := hiA * hiB
	prod := m.NewIntVar(name, int64(math.Min(0, prodLo)), int64(prodHi))

	sum := solver.Expr{}.Add(prod, 1).Add(b, -loA)
	for k := 0; k < nbits; k++ {
		bitProd := BoolTimesInt(m, nameIndexed(name, "andbit", k), bitVars[k], b, loB, hiB)
		sum = sum.Add(bitProd, -math.Pow(2, float64(k)))
	}
	m.AddConstraint(name+"_assemble", sum, solver.EQ, 0)
	return prod
}

func nameIndexed(base, suffix string, k int) string {
	return base + "_" + suffix + "_" + strconv.Itoa(k)
}
