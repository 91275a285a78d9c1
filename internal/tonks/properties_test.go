package tonks_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tonksim/internal/tonks"
)

var _ = Describe("Tonks gas", func() {
	Describe("occupation distribution", func() {
		DescribeTable("sums to one",
			func(L, u, beta float64) {
				p, err := tonks.PnDist(L, u, beta)
				Expect(err).NotTo(HaveOccurred())

				sum := 0.0
				for _, v := range p {
					Expect(v).To(BeNumerically(">=", 0))
					Expect(v).To(BeNumerically("<=", 1))
					sum += v
				}
				Expect(sum).To(BeNumerically("~", 1, 1e-9))
			},
			Entry("dilute", 50.0, -4.0, 1.0),
			Entry("neutral", 50.0, 0.0, 1.0),
			Entry("crowded", 50.0, 3.0, 1.0),
			Entry("hot bath", 200.0, 1.0, 0.2),
			Entry("fractional length", 7.75, -0.5, 2.0),
			Entry("large lattice", 1000.0, 0.5, 1.0),
		)

		It("assigns zero weight to more rods than fit", func() {
			for N := 11; N < 15; N++ {
				q, err := tonks.Q(10, N)
				Expect(err).NotTo(HaveOccurred())
				Expect(q).To(BeZero())
			}
		})

		It("interpolates between an empty and a full lattice", func() {
			empty, err := tonks.Nmean(30.5, -60, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(empty).To(BeNumerically("~", 0, 1e-9))

			full, err := tonks.Nmean(30.5, 60, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(full).To(BeNumerically("~", 30, 1e-6))

			prev := -1.0
			for u := -5.0; u <= 5; u += 0.5 {
				nm, err := tonks.Nmean(30.5, u, 1)
				Expect(err).NotTo(HaveOccurred())
				Expect(nm).To(BeNumerically(">", prev))
				prev = nm
			}
		})
	})

	Describe("vectorised evaluation", func() {
		It("matches the scalar form element by element", func() {
			ls := []float64{5, 10}
			z, err := tonks.ZVec(ls, 0.2, 1)
			Expect(err).NotTo(HaveOccurred())

			z5, _ := tonks.Z(5, 0.2, 1)
			z10, _ := tonks.Z(10, 0.2, 1)
			Expect(z).To(Equal([]float64{z5, z10}))
		})

		It("reports the index of a failing element", func() {
			_, err := tonks.DensityVec([]float64{3, 4, -1}, 0, 1)
			var ee *tonks.ElementError
			Expect(errors.As(err, &ee)).To(BeTrue())
			Expect(ee.Index).To(Equal(2))
			Expect(err).To(MatchError(tonks.ErrInvalidArgument))
		})
	})

	Describe("gap statistics", func() {
		It("treats a packed segment as having no gaps", func() {
			for _, r := range []float64{0, 0.25, 1, 2, 10} {
				Expect(tonks.Prn(12, 12, r)).To(Equal(1.0))
			}
		})

		It("keeps probabilities within [0,1]", func() {
			m := tonks.New(0.3)
			for r := 0.0; r < 8; r += 0.5 {
				pr, err := m.Pr(40, r)
				Expect(err).NotTo(HaveOccurred())
				Expect(pr).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))

				h, err := m.H(40, r)
				Expect(err).NotTo(HaveOccurred())
				Expect(h).To(BeNumerically("~", 1-mustPr(m, 40, r+1), 1e-12))
			}
		})

		It("reports an infinite mean gap without rods", func() {
			rm, err := tonks.Rmean(10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(math.IsInf(rm, 1)).To(BeTrue())
		})
	})

	Describe("correlation functions", func() {
		It("integrates the one-particle density to the mean occupancy", func() {
			// Trapezoidal rule over [0.5, L-0.5]
			L, u := 12.0, 0.0
			const steps = 4000
			dx := (L - 1) / steps
			sum := 0.0
			for i := 0; i <= steps; i++ {
				x := 0.5 + float64(i)*dx
				r, err := tonks.R1(L, u, x, 1)
				Expect(err).NotTo(HaveOccurred())
				w := 1.0
				if i == 0 || i == steps {
					w = 0.5
				}
				sum += w * r * dx
			}

			nm, err := tonks.Nmean(L, u, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(sum).To(BeNumerically("~", nm, 1e-2))
		})

		It("rejects x1 past x2", func() {
			_, err := tonks.R2(10, 0, 5, 4, 1)
			Expect(err).To(MatchError(tonks.ErrInvalidArgument))
		})
	})
})

func mustPr(m tonks.Model, L, r float64) float64 {
	pr, err := m.Pr(L, r)
	Expect(err).NotTo(HaveOccurred())
	return pr
}
