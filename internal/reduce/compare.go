package reduce

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/tonksim/internal/tonks"
)

// OccupancyRow pairs the observed and predicted probability of N objects.
type OccupancyRow struct {
	N         int
	Empirical float64
	Theory    float64
}

// Comparison is an empirical occupancy histogram set against the
// grand-canonical distribution.
type Comparison struct {
	Rows []OccupancyRow
	// TotalVariation is half the L1 distance between the distributions.
	TotalVariation float64
	// KL is the Kullback-Leibler divergence of theory from data, in bits.
	// It is +Inf when data puts weight where theory has none.
	KL float64
	// MeanEmpirical and MeanTheory are the first moments.
	MeanEmpirical float64
	MeanTheory    float64
}

// CompareOccupancy normalises hist (indexed by number of objects) and
// compares it with tonks.PnDist for the same segment and bath.
func CompareOccupancy(hist []float64, m tonks.Model, L float64) (*Comparison, error) {
	if len(hist) == 0 {
		return nil, ErrNoData
	}
	theory, err := m.PnDist(L)
	if err != nil {
		return nil, err
	}

	n := len(hist)
	if len(theory) > n {
		n = len(theory)
	}
	emp := make([]float64, n)
	th := make([]float64, n)
	copy(emp, hist)
	copy(th, theory)

	total := floats.Sum(emp)
	if total == 0 {
		return nil, ErrNoData
	}
	floats.Scale(1/total, emp)

	c := &Comparison{
		Rows:           make([]OccupancyRow, n),
		TotalVariation: floats.Distance(emp, th, 1) / 2,
		KL:             stat.KullbackLeibler(emp, th) / math.Ln2,
	}
	for i := range emp {
		c.Rows[i] = OccupancyRow{N: i, Empirical: emp[i], Theory: th[i]}
		c.MeanEmpirical += float64(i) * emp[i]
		c.MeanTheory += float64(i) * th[i]
	}
	return c, nil
}
