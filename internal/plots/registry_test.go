package plots_test

import (
	"errors"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/genplot/internal/chart"
	"github.com/san-kum/genplot/internal/plots"
)

var _ = Describe("Registry", func() {
	var reg *plots.Registry

	BeforeEach(func() {
		reg = plots.NewRegistry()
	})

	It("lists every chart method in order", func() {
		var names []string
		for _, m := range reg.List() {
			names = append(names, m.Name)
		}
		Expect(names).To(Equal([]string{
			"print_headers", "hist", "scatter", "plot", "plot_as_function_of",
			"plot_normalised_as_function_of", "plot_same_canvas", "correlation",
			"regression", "pairplot", "residuals", "pie",
		}))
	})

	It("accepts kebab-case names", func() {
		m, err := reg.Get("plot-same-canvas")
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Usage()).To(Equal("plot_same_canvas x y..."))
	})

	It("rejects unknown methods", func() {
		_, err := reg.Get("violin")
		Expect(err).To(MatchError(plots.ErrUnknownMethod))
	})

	DescribeTable("binds arguments",
		func(method string, args []string, want [][]string) {
			m, err := reg.Get(method)
			Expect(err).NotTo(HaveOccurred())
			b, err := m.Bind(args)
			Expect(err).NotTo(HaveOccurred())
			Expect(boundValues(m, b)).To(Equal(want))
		},
		Entry("positional", "scatter", []string{"a", "b"}, [][]string{{"a"}, {"b"}}),
		Entry("keyword with equals", "scatter", []string{"--y=b", "--x=a"}, [][]string{{"a"}, {"b"}}),
		Entry("keyword then value", "hist", []string{"--bins", "5", "a"}, [][]string{{"a"}, {"5"}}),
		Entry("variadic", "plot_same_canvas", []string{"x", "a", "b", "c"}, [][]string{{"x"}, {"a", "b", "c"}}),
		Entry("optional given", "pairplot", []string{"a"}, [][]string{{"a"}}),
		Entry("optional omitted", "pairplot", nil, [][]string{nil}),
		Entry("kebab keyword", "pairplot", []string{"--sort-on=a"}, [][]string{{"a"}}),
		Entry("no parameters", "pie", nil, [][]string{}),
		Entry("variadic keeps command line order", "plot_same_canvas",
			[]string{"time", "speed", "--y", "accel"}, [][]string{{"time"}, {"speed", "accel"}}),
		Entry("variadic keyword first", "plot_same_canvas",
			[]string{"--y=accel", "time", "speed"}, [][]string{{"time"}, {"accel", "speed"}}),
		Entry("variadic keywords between positionals", "plot_same_canvas",
			[]string{"time", "--y", "a", "b", "--y=c", "d"}, [][]string{{"time"}, {"a", "b", "c", "d"}}),
		Entry("terminator makes the rest positional", "plot", []string{"x", "--", "--y"}, [][]string{{"x"}, {"--y"}}),
		Entry("terminator before all arguments", "plot", []string{"--", "x", "y"}, [][]string{{"x"}, {"y"}}),
	)

	DescribeTable("rejects arguments that do not fit",
		func(method string, args []string, param string) {
			m, err := reg.Get(method)
			Expect(err).NotTo(HaveOccurred())
			_, err = m.Bind(args)
			Expect(err).To(MatchError(plots.ErrArgs))

			var argErr *plots.ArgError
			Expect(errors.As(err, &argErr)).To(BeTrue())
			Expect(argErr.Method).To(Equal(method))
			Expect(argErr.Param).To(Equal(param))
		},
		Entry("missing", "scatter", []string{"a"}, "y"),
		Entry("surplus", "plot", []string{"a", "b", "c"}, ""),
		Entry("not an integer", "hist", []string{"a", "ten"}, "bins"),
		Entry("not an integer by keyword", "hist", []string{"a", "--bins=ten"}, "bins"),
		Entry("unknown keyword", "hist", []string{"--colour=red"}, ""),
		Entry("keyword without value", "hist", []string{"a", "--bins"}, ""),
		Entry("given twice", "scatter", []string{"--x=a", "--x=b", "c"}, "x"),
		Entry("terminator only", "plot", []string{"--", "y"}, "y"),
	)

	It("calls the bound method", func() {
		p, r, d, _ := newPlots("x,y\n2,20\n1,10\n")
		Expect(reg.Call(p, "plot", []string{"x", "--y", "y"})).To(Succeed())
		Expect(r.methods).To(Equal([]string{"plot"}))
		Expect(r.last().(chart.Lines).X.Values).To(Equal([]float64{1, 2}))
		Expect(d.shown).To(HaveLen(1))
	})

	It("draws the variadic columns in command line order", func() {
		p, r, _, _ := newPlots("time,speed,accel\n2,20,1\n1,10,2\n")
		Expect(reg.Call(p, "plot-same-canvas", []string{"time", "speed", "--y", "accel"})).To(Succeed())
		Expect(r.last().Columns()).To(Equal([]string{"time", "speed", "accel"}))
	})

	It("passes an integer bin count to hist", func() {
		p, r, _, _ := newPlots("x,y\n2,20\n1,10\n")
		Expect(reg.Call(p, "hist", []string{"y", "7"})).To(Succeed())
		Expect(r.last().(chart.Histogram).Bins).To(Equal(7))
	})

	It("does not call anything for unknown methods", func() {
		p, r, _, _ := newPlots("x,y\n2,20\n1,10\n")
		Expect(reg.Call(p, "violin", nil)).To(MatchError(plots.ErrUnknownMethod))
		Expect(r.charts).To(BeEmpty())
	})
})

// boundValues lists the values bound to each parameter of m, nil for an
// omitted one.
func boundValues(m *plots.Method, b *plots.Bound) [][]string {
	out := make([][]string, len(m.Params))
	for i, p := range m.Params {
		switch {
		case p.Kind == plots.Variadic:
			out[i] = b.Strings(p.Name)
		case !b.Changed(p.Name):
		case p.Int:
			out[i] = []string{strconv.Itoa(b.Int(p.Name))}
		default:
			out[i] = []string{b.String(p.Name)}
		}
	}
	return out
}
