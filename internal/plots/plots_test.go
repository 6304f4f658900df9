package plots_test

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/genplot/internal/chart"
	"github.com/san-kum/genplot/internal/plots"
	"github.com/san-kum/genplot/internal/stats"
	"github.com/san-kum/genplot/internal/table"
)

type recordingRenderer struct {
	methods []string
	charts  []chart.Chart
}

func (r *recordingRenderer) Render(method string, c chart.Chart) (*chart.Figure, error) {
	r.methods = append(r.methods, method)
	r.charts = append(r.charts, c)
	return &chart.Figure{Method: method, Path: method + ".png", Chart: c}, nil
}

func (r *recordingRenderer) last() chart.Chart {
	Expect(r.charts).NotTo(BeEmpty())
	return r.charts[len(r.charts)-1]
}

type recordingDisplay struct {
	shown []*chart.Figure
}

func (d *recordingDisplay) Show(fig *chart.Figure) error {
	d.shown = append(d.shown, fig)
	return nil
}

func newPlots(csv string, opts ...plots.Option) (*plots.Plots, *recordingRenderer, *recordingDisplay, *bytes.Buffer) {
	t, err := table.Read(strings.NewReader(csv))
	Expect(err).NotTo(HaveOccurred())

	r := &recordingRenderer{}
	d := &recordingDisplay{}
	out := &bytes.Buffer{}
	opts = append([]plots.Option{
		plots.WithRenderer(r),
		plots.WithDisplay(d),
		plots.WithOutput(out),
		plots.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return plots.NewFromTable(t, opts...), r, d, out
}

var _ = Describe("Plots", func() {
	const unsorted = "x, y\n3, 300\n1, 100\n2, 200\n"

	Describe("Plot", func() {
		It("sorts rows by x before rendering", func() {
			p, r, d, out := newPlots(unsorted)
			Expect(p.Plot("x", "y")).To(Succeed())

			Expect(r.methods).To(Equal([]string{"plot"}))
			lines, ok := r.last().(chart.Lines)
			Expect(ok).To(BeTrue())
			Expect(lines.X.Values).To(Equal([]float64{1, 2, 3}))
			Expect(lines.Ys).To(HaveLen(1))
			Expect(lines.Ys[0].Values).To(Equal([]float64{100, 200, 300}))

			dump := out.String()
			Expect(strings.Index(dump, "100")).To(BeNumerically("<", strings.Index(dump, "200")))
			Expect(strings.Index(dump, "200")).To(BeNumerically("<", strings.Index(dump, "300")))

			Expect(d.shown).To(HaveLen(1))
			Expect(d.shown[0].Path).To(Equal("plot.png"))
		})

		It("fails for an absent column without rendering", func() {
			p, r, _, _ := newPlots(unsorted)
			Expect(p.Plot("x", "z")).To(MatchError(table.ErrNoColumn))
			Expect(p.Plot("z", "y")).To(MatchError(table.ErrNoColumn))
			Expect(r.charts).To(BeEmpty())
		})
	})

	Describe("Scatter", func() {
		It("keeps table order", func() {
			p, r, _, _ := newPlots(unsorted)
			Expect(p.Scatter("x", "y")).To(Succeed())
			s := r.last().(chart.Scatter)
			Expect(s.X.Values).To(Equal([]float64{3, 1, 2}))
		})
	})

	Describe("Hist", func() {
		It("rejects a bin count below one", func() {
			p, _, _, _ := newPlots(unsorted)
			Expect(p.Hist("y", 0)).To(MatchError(plots.ErrArgs))
		})

		It("draws the column", func() {
			p, r, _, _ := newPlots(unsorted)
			Expect(p.Hist("y", 4)).To(Succeed())
			Expect(r.last()).To(Equal(chart.Histogram{
				Data: chart.Series{Name: "y", Values: []float64{300, 100, 200}},
				Bins: 4,
			}))
		})
	})

	Describe("PlotAsFunctionOf", func() {
		It("lays out the other columns three to a row", func() {
			p, r, _, _ := newPlots("x,a,b,c,d\n2,1,2,3,4\n1,5,6,7,8\n")
			Expect(p.PlotAsFunctionOf("x")).To(Succeed())

			g := r.last().(chart.LineGrid)
			Expect(g.Grid).To(Equal(chart.Grid{Rows: 2, Cols: 3, Disabled: 5}))
			Expect(g.Ys).To(HaveLen(4))
			Expect(g.Ys[0].Values).To(Equal([]float64{5, 1}))
		})

		It("fails when x is the only column", func() {
			p, _, _, _ := newPlots("x\n1\n2\n")
			Expect(p.PlotAsFunctionOf("x")).To(MatchError(chart.ErrNoColumns))
		})
	})

	Describe("PlotNormalisedAsFunctionOf", func() {
		const csv = "x,a,b\n2,-5,0\n1,0,10\n3,5,20\n"

		It("leaves zero bound columns unscaled by default", func() {
			p, r, _, _ := newPlots(csv)
			Expect(p.PlotNormalisedAsFunctionOf("x")).To(Succeed())

			l := r.last().(chart.Lines)
			Expect(l.YLabel).To(Equal("Normalised column"))
			Expect(l.X.Values).To(Equal([]float64{1, 2, 3}))
			Expect(l.Ys[0].Values).To(Equal([]float64{0.5, 0, 1}))
			Expect(l.Ys[1].Values).To(Equal([]float64{10, 0, 20}))
		})

		It("scales them under the range policy", func() {
			p, r, _, _ := newPlots(csv, plots.WithPolicy(table.ZeroRange))
			Expect(p.PlotNormalisedAsFunctionOf("x")).To(Succeed())
			Expect(r.last().(chart.Lines).Ys[1].Values).To(Equal([]float64{0.5, 0, 1}))
		})
	})

	Describe("PlotSameCanvas", func() {
		It("needs at least one y column", func() {
			p, _, _, _ := newPlots(unsorted)
			Expect(p.PlotSameCanvas("x")).To(MatchError(plots.ErrArgs))
		})

		It("draws every y on one canvas", func() {
			p, r, _, _ := newPlots("x,a,b\n2,1,2\n1,3,4\n")
			Expect(p.PlotSameCanvas("x", "b", "a")).To(Succeed())
			l := r.last().(chart.Lines)
			Expect(l.Columns()).To(Equal([]string{"x", "b", "a"}))
		})
	})

	Describe("Correlation", func() {
		It("skips text columns and does not print the table", func() {
			p, r, _, out := newPlots("name,a,b\nfoo,1,2\nbar,2,4.5\nbaz,3,5\n")
			Expect(p.Correlation()).To(Succeed())

			h := r.last().(chart.Heatmap)
			Expect(h.Names).To(Equal([]string{"a", "b"}))
			Expect(h.Matrix[0][0]).To(BeNumerically("~", 1, 1e-12))
			Expect(h.Matrix[0][1]).To(Equal(h.Matrix[1][0]))
			Expect(out.Len()).To(BeZero())
		})
	})

	Describe("Regression", func() {
		It("annotates the Pearson coefficient", func() {
			p, r, _, _ := newPlots("x,y\n3,7\n1,3\n2,5\n")
			Expect(p.Regression("x", "y")).To(Succeed())

			reg := r.last().(chart.Regression)
			Expect(reg.R).To(BeNumerically("~", 1, 1e-12))
			Expect(reg.Slope).To(BeNumerically("~", 2, 1e-12))
			Expect(reg.Intercept).To(BeNumerically("~", 1, 1e-12))
			Expect(reg.Annotation()).To(Equal("ρ = 1.000"))
		})

		It("reports a constant column as degenerate", func() {
			p, r, _, _ := newPlots("x,y\n1,5\n2,5\n3,5\n")
			Expect(p.Regression("x", "y")).To(MatchError(stats.ErrDegenerate))
			Expect(r.charts).To(BeEmpty())
		})

		It("drops rows with a missing value", func() {
			p, r, _, _ := newPlots("x,y\n1,2\n2,\n3,6\n4,8\n")
			Expect(p.Regression("x", "y")).To(Succeed())
			Expect(r.last().(chart.Regression).X.Values).To(Equal([]float64{1, 3, 4}))
		})
	})

	Describe("Pairplot", func() {
		It("uses the numeric columns", func() {
			p, r, _, _ := newPlots("name,a,b\nfoo,1,2\nbar,2,4\n", plots.WithPairBins(5))
			Expect(p.Pairplot("")).To(Succeed())
			pairs := r.last().(chart.Pairs)
			Expect(pairs.Bins).To(Equal(5))
			Expect(pairs.Data).To(HaveLen(2))
		})

		It("sorts the dump on request", func() {
			p, _, _, out := newPlots(unsorted)
			Expect(p.Pairplot("y")).To(Succeed())
			dump := out.String()
			Expect(strings.Index(dump, "100")).To(BeNumerically("<", strings.Index(dump, "300")))
		})

		It("fails for an absent sort column", func() {
			p, _, _, _ := newPlots(unsorted)
			Expect(p.Pairplot("z")).To(MatchError(table.ErrNoColumn))
		})
	})

	Describe("Residuals", func() {
		It("smooths the residuals at every point", func() {
			p, r, _, _ := newPlots("x,y\n1,1.1\n2,1.9\n3,3.2\n4,3.9\n5,5.1\n6,5.8\n")
			Expect(p.Residuals("x", "y")).To(Succeed())

			res := r.last().(chart.Residuals)
			Expect(res.Residuals).To(HaveLen(6))
			Expect(res.Smooth).To(HaveLen(6))
			sum := 0.0
			for _, v := range res.Residuals {
				sum += v
			}
			Expect(sum).To(BeNumerically("~", 0, 1e-9))
		})
	})

	Describe("Pie", func() {
		It("draws the first row", func() {
			p, r, _, _ := newPlots("a,b,c\n1,1,2\n9,9,9\n")
			Expect(p.Pie()).To(Succeed())
			pie := r.last().(chart.Pie)
			Expect(pie.Labels).To(Equal([]string{"a", "b", "c"}))
			Expect(pie.Percentages()).To(Equal([]float64{25, 25, 50}))
		})

		DescribeTable("rejects rows it cannot draw",
			func(csv string) {
				p, _, _, _ := newPlots(csv)
				Expect(p.Pie()).To(HaveOccurred())
			},
			Entry("no rows", "a,b\n"),
			Entry("negative wedge", "a,b\n-1,2\n"),
			Entry("all zero", "a,b\n0,0\n"),
			Entry("missing value", "a,b\n,2\n"),
			Entry("text column", "a,b\nfoo,2\n"),
		)
	})

	Describe("PrintHeaders", func() {
		It("lists every column after the dump", func() {
			p, r, _, out := newPlots("name,a\nfoo,1\nbar,3\n")
			Expect(p.PrintHeaders()).To(Succeed())
			Expect(r.charts).To(BeEmpty())

			dump := out.String()
			Expect(dump).To(ContainSubstring("Available headers to plot: \n    name\n    a\n"))
			Expect(dump).To(MatchRegexp(`a\s+2\s+2\s+1\.414`))
		})

		It("lists the columns of a file with no rows", func() {
			p, _, _, out := newPlots("a, b\n")
			Expect(p.PrintHeaders()).To(Succeed())

			dump := out.String()
			Expect(dump).To(ContainSubstring("Available headers to plot: \n    a\n    b\n"))
			Expect(dump).To(MatchRegexp(`a\s+0\s+NaN`))
		})
	})

	Describe("New", func() {
		It("fails for a missing file", func() {
			_, err := plots.New(filepath.Join(GinkgoT().TempDir(), "missing.csv"))
			Expect(err).To(MatchError(os.ErrNotExist))
		})

		It("loads a file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "data.csv")
			Expect(os.WriteFile(path, []byte(unsorted), 0644)).To(Succeed())
			p, err := plots.New(path, plots.WithDisplay(&recordingDisplay{}), plots.WithRenderer(&recordingRenderer{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Table().Names()).To(Equal([]string{"x", "y"}))
		})
	})
})

var _ = Describe("completeness", func() {
	It("keeps NaN out of correlation input", func() {
		p, r, _, _ := newPlots("a,b\n1,2\n2,\n3,6.5\n4,8\n")
		Expect(p.Correlation()).To(Succeed())
		m := r.last().(chart.Heatmap).Matrix
		Expect(math.IsNaN(m[0][1])).To(BeFalse())
	})
})
