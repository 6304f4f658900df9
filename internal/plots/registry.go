package plots

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

type ParamKind int

const (
	Required ParamKind = iota
	Optional
	Variadic
)

type Param struct {
	Name string
	Kind ParamKind
	Int  bool
}

func (p Param) usage() string {
	switch p.Kind {
	case Optional:
		return "[" + p.Name + "]"
	case Variadic:
		return p.Name + "..."
	}
	return p.Name
}

// Method is one chart method callable from the command line.
type Method struct {
	Name   string
	Help   string
	Params []Param
	call   func(p *Plots, b *Bound) error
}

// Usage renders the method with its parameters, e.g. "hist x bins".
func (m *Method) Usage() string {
	parts := []string{m.Name}
	for _, p := range m.Params {
		parts = append(parts, p.usage())
	}
	return strings.Join(parts, " ")
}

// flagSet declares one flag per parameter. Dashes in flag names are
// read as underscores.
func (m *Method) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(m.Name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(canonical(name))
	})
	for _, p := range m.Params {
		switch {
		case p.Kind == Variadic:
			fs.StringArray(p.Name, nil, "")
		case p.Int:
			fs.Int(p.Name, 0, "")
		default:
			fs.String(p.Name, "", "")
		}
	}
	return fs
}

// keyed is a value given by name to the variadic parameter, with the
// number of positional arguments that preceded it.
type keyed struct {
	at    int
	value string
}

// Bind assigns args to the method's parameters. "--name=value" and
// "--name value" bind by name; the remaining positional arguments fill
// the other parameters in order and a variadic parameter takes the rest,
// merged with its named values in command line order. Everything after
// "--" is positional.
func (m *Method) Bind(args []string) (*Bound, error) {
	fs := m.flagSet()
	var bindErr error
	var named []keyed

	err := fs.ParseAll(args, func(f *pflag.Flag, value string) error {
		p := m.Params[m.param(f.Name)]
		if p.Kind == Variadic {
			named = append(named, keyed{at: len(fs.Args()), value: value})
			return nil
		}
		if f.Changed {
			bindErr = argErr(m.Name, p.Name, "given more than once")
			return bindErr
		}
		if err := fs.Set(f.Name, value); err != nil {
			bindErr = argErr(m.Name, p.Name, "invalid value %q", value)
			return bindErr
		}
		return nil
	})
	if bindErr != nil {
		return nil, bindErr
	}
	if err != nil {
		return nil, &ArgError{Method: m.Name, Err: fmt.Errorf("%w: %v", ErrArgs, err)}
	}

	positional := fs.Args()
	next := 0
	for _, p := range m.Params {
		if p.Kind == Variadic || fs.Changed(p.Name) {
			continue
		}
		if next < len(positional) {
			if err := fs.Set(p.Name, positional[next]); err != nil {
				return nil, argErr(m.Name, p.Name, "invalid value %q", positional[next])
			}
			next++
		} else if p.Kind == Required {
			return nil, argErr(m.Name, p.Name, "missing value")
		}
	}

	for _, p := range m.Params {
		if p.Kind != Variadic {
			continue
		}
		values := make([]string, 0, len(positional)-next+len(named))
		k := 0
		for i := next; i < len(positional); i++ {
			for ; k < len(named) && named[k].at <= i; k++ {
				values = append(values, named[k].value)
			}
			values = append(values, positional[i])
		}
		for ; k < len(named); k++ {
			values = append(values, named[k].value)
		}
		if err := fs.Lookup(p.Name).Value.(pflag.SliceValue).Replace(values); err != nil {
			return nil, argErr(m.Name, p.Name, "%v", err)
		}
		next = len(positional)
	}

	if next < len(positional) {
		return nil, argErr(m.Name, "", "unexpected arguments %q", positional[next:])
	}
	return &Bound{fs: fs}, nil
}

func (m *Method) param(name string) int {
	name = canonical(name)
	for j, p := range m.Params {
		if p.Name == name {
			return j
		}
	}
	return -1
}

// Bound holds the arguments bound to a method's parameters.
type Bound struct {
	fs *pflag.FlagSet
}

func (b *Bound) String(name string) string {
	v, _ := b.fs.GetString(name)
	return v
}

func (b *Bound) Int(name string) int {
	v, _ := b.fs.GetInt(name)
	return v
}

// Strings returns the values of a variadic parameter.
func (b *Bound) Strings(name string) []string {
	v, _ := b.fs.GetStringArray(name)
	return v
}

// Changed reports whether the parameter was given.
func (b *Bound) Changed(name string) bool {
	return b.fs.Changed(name)
}

// Registry maps method names to chart methods.
type Registry struct {
	methods map[string]*Method
	order   []string
}

func NewRegistry() *Registry {
	r := &Registry{methods: make(map[string]*Method)}

	r.add(&Method{
		Name: "print_headers",
		Help: "print the table and its column names",
		call: func(p *Plots, _ *Bound) error { return p.PrintHeaders() },
	})
	r.add(&Method{
		Name:   "hist",
		Help:   "histogram of one column",
		Params: []Param{{Name: "x"}, {Name: "bins", Int: true}},
		call:   func(p *Plots, b *Bound) error { return p.Hist(b.String("x"), b.Int("bins")) },
	})
	r.add(&Method{
		Name:   "scatter",
		Help:   "scatter plot of y against x",
		Params: []Param{{Name: "x"}, {Name: "y"}},
		call:   func(p *Plots, b *Bound) error { return p.Scatter(b.String("x"), b.String("y")) },
	})
	r.add(&Method{
		Name:   "plot",
		Help:   "line plot of y against x",
		Params: []Param{{Name: "x"}, {Name: "y"}},
		call:   func(p *Plots, b *Bound) error { return p.Plot(b.String("x"), b.String("y")) },
	})
	r.add(&Method{
		Name:   "plot_as_function_of",
		Help:   "every other column against x, one subplot each",
		Params: []Param{{Name: "x"}},
		call:   func(p *Plots, b *Bound) error { return p.PlotAsFunctionOf(b.String("x")) },
	})
	r.add(&Method{
		Name:   "plot_normalised_as_function_of",
		Help:   "every other column against x, normalised to 0-1",
		Params: []Param{{Name: "x"}},
		call:   func(p *Plots, b *Bound) error { return p.PlotNormalisedAsFunctionOf(b.String("x")) },
	})
	r.add(&Method{
		Name:   "plot_same_canvas",
		Help:   "the given columns against x on one canvas",
		Params: []Param{{Name: "x"}, {Name: "y", Kind: Variadic}},
		call:   func(p *Plots, b *Bound) error { return p.PlotSameCanvas(b.String("x"), b.Strings("y")...) },
	})
	r.add(&Method{
		Name: "correlation",
		Help: "correlation heatmap of the numeric columns",
		call: func(p *Plots, _ *Bound) error { return p.Correlation() },
	})
	r.add(&Method{
		Name:   "regression",
		Help:   "least squares fit of y on x with Pearson's rho",
		Params: []Param{{Name: "x"}, {Name: "y"}},
		call:   func(p *Plots, b *Bound) error { return p.Regression(b.String("x"), b.String("y")) },
	})
	r.add(&Method{
		Name:   "pairplot",
		Help:   "pairwise scatter plots with histograms on the diagonal",
		Params: []Param{{Name: "sort_on", Kind: Optional}},
		call:   func(p *Plots, b *Bound) error { return p.Pairplot(b.String("sort_on")) },
	})
	r.add(&Method{
		Name:   "residuals",
		Help:   "residuals of the linear fit of y on x",
		Params: []Param{{Name: "x"}, {Name: "y"}},
		call:   func(p *Plots, b *Bound) error { return p.Residuals(b.String("x"), b.String("y")) },
	})
	r.add(&Method{
		Name: "pie",
		Help: "pie chart of the first row",
		call: func(p *Plots, _ *Bound) error { return p.Pie() },
	})

	return r
}

func (r *Registry) add(m *Method) {
	r.methods[m.Name] = m
	r.order = append(r.order, m.Name)
}

// Get looks a method up by name, accepting dashes for underscores.
func (r *Registry) Get(name string) (*Method, error) {
	m, ok := r.methods[canonical(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	return m, nil
}

// List returns the methods in the order they were registered.
func (r *Registry) List() []*Method {
	out := make([]*Method, len(r.order))
	for i, name := range r.order {
		out[i] = r.methods[name]
	}
	return out
}

// Call binds args to the named method and runs it on p.
func (r *Registry) Call(p *Plots, name string, args []string) error {
	m, err := r.Get(name)
	if err != nil {
		return err
	}
	bound, err := m.Bind(args)
	if err != nil {
		return err
	}
	p.log.Debug("calling method", "method", m.Name, "args", args)
	return m.call(p, bound)
}

func canonical(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
