package tonks

// Model fixes the bath (chemical potential U and inverse temperature Beta)
// so that quantities can be evaluated as functions of length alone.
// The zero value is not usable; construct with New.
type Model struct {
	U    float64
	Beta float64
}

// New returns a Model at chemical potential u and DefaultBeta.
func New(u float64) Model {
	return Model{U: u, Beta: DefaultBeta}
}

// WithBeta returns a copy of m at inverse temperature beta.
func (m Model) WithBeta(beta float64) Model {
	m.Beta = beta
	return m
}

func (m Model) Z(L float64) (float64, error)    { return Z(L, m.U, m.Beta) }
func (m Model) LogZ(L float64) (float64, error) { return LogZ(L, m.U, m.Beta) }

func (m Model) Pn(L float64, N int) (float64, error) { return Pn(L, m.U, N, m.Beta) }
func (m Model) PnDist(L float64) ([]float64, error)  { return PnDist(L, m.U, m.Beta) }

func (m Model) Nmean(L float64) (float64, error)       { return Nmean(L, m.U, m.Beta) }
func (m Model) Density(L float64) (float64, error)     { return Density(L, m.U, m.Beta) }
func (m Model) Bistability(L float64) (float64, error) { return Bistability(L, m.U, m.Beta) }

func (m Model) R1(L, x float64) (float64, error)      { return R1(L, m.U, x, m.Beta) }
func (m Model) R2(L, x1, x2 float64) (float64, error) { return R2(L, m.U, x1, x2, m.Beta) }

func (m Model) Pr(L, r float64) (float64, error) { return Pr(L, m.U, r, m.Beta) }
func (m Model) H(L, r float64) (float64, error)  { return H(L, m.U, r, m.Beta) }

func (m Model) ZVec(ls []float64) ([]float64, error)           { return ZVec(ls, m.U, m.Beta) }
func (m Model) NmeanVec(ls []float64) ([]float64, error)       { return NmeanVec(ls, m.U, m.Beta) }
func (m Model) DensityVec(ls []float64) ([]float64, error)     { return DensityVec(ls, m.U, m.Beta) }
func (m Model) BistabilityVec(ls []float64) ([]float64, error) { return BistabilityVec(ls, m.U, m.Beta) }
func (m Model) PrVec(ls []float64, r float64) ([]float64, error) {
	return PrVec(ls, m.U, r, m.Beta)
}
func (m Model) HVec(ls []float64, r float64) ([]float64, error) {
	return HVec(ls, m.U, r, m.Beta)
}
