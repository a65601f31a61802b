package api_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tabkit/frames/api"
	"github.com/tabkit/frames/expr"
	"github.com/tabkit/frames/frame"
	"github.com/tabkit/frames/lazyframe"
	"github.com/tabkit/frames/namespace"
	"github.com/tabkit/frames/pkg/logger"
	"github.com/tabkit/frames/series"
)

// Namespace names registered in this suite are unique per test: the
// registries are package globals shared across parallel tests.

func TestReservedNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"meta", "str"}, api.ReservedNames())
	assert.True(t, api.IsReserved("str"))
	assert.True(t, api.IsReserved("meta"))
	assert.False(t, api.IsReserved("power"))
}

func TestRegister_ReservedNamePanics(t *testing.T) {
	t.Parallel()

	// "str" is reserved across every host kind, including frame and
	// lazyframe whose own built-in catalogs are empty.
	t.Run("expr", func(t *testing.T) {
		t.Parallel()

		require.PanicsWithError(t, `cannot override reserved namespace: "str"`, func() {
			api.RegisterExprNamespace("str")(func(e *expr.Expr) (any, error) {
				return nil, nil
			})
		})
	})

	t.Run("frame", func(t *testing.T) {
		t.Parallel()

		require.PanicsWithError(t, `cannot override reserved namespace: "str"`, func() {
			api.RegisterFrameNamespace("str")(func(df *frame.Frame) (any, error) {
				return nil, nil
			})
		})
	})

	t.Run("lazyframe", func(t *testing.T) {
		t.Parallel()

		require.PanicsWithError(t, `cannot override reserved namespace: "meta"`, func() {
			api.RegisterLazyFrameNamespace("meta")(func(lf *lazyframe.LazyFrame) (any, error) {
				return nil, nil
			})
		})
	})

	t.Run("series", func(t *testing.T) {
		t.Parallel()

		require.PanicsWithError(t, `cannot override reserved namespace: "str"`, func() {
			api.RegisterSeriesNamespace("str")(func(s *series.Series) (any, error) {
				return nil, nil
			})
		})
	})
}

func TestRegister_InvalidNamePanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		api.RegisterSeriesNamespace("not a name")(func(s *series.Series) (any, error) {
			return nil, nil
		})
	})
}

type greeter struct {
	s *series.Series
}

func (g *greeter) Greet() string {
	return "hello, " + g.s.Name()
}

func TestRegister_InstanceAccess(t *testing.T) {
	t.Parallel()

	api.RegisterSeriesNamespace("greet")(func(s *series.Series) (any, error) {
		return &greeter{s: s}, nil
	})

	s := series.NewInt64("world", []int64{1})
	g, err := namespace.As[*greeter](s.Namespace("greet"))
	require.NoError(t, err)
	assert.Equal(t, "hello, world", g.Greet())
}

func TestRegister_DecoratorReturnsConstructor(t *testing.T) {
	t.Parallel()

	ctor := func(s *series.Series) (any, error) {
		return &greeter{s: s}, nil
	}
	got := api.RegisterSeriesNamespace("echoctor")(ctor)
	require.NotNil(t, got)

	// The returned constructor is usable directly, same as the input.
	ns, err := got(series.NewInt64("x", []int64{1}))
	require.NoError(t, err)
	assert.IsType(t, &greeter{}, ns)
}

func TestRegister_TypeLevelLookup(t *testing.T) {
	t.Parallel()

	api.RegisterSeriesNamespace("lookupable")(func(s *series.Series) (any, error) {
		return &greeter{s: s}, nil
	})

	ctor, ok := series.Namespaces().Lookup("lookupable")
	require.True(t, ok)

	ns, err := ctor(series.NewInt64("direct", []int64{1}))
	require.NoError(t, err)
	g, ok := ns.(*greeter)
	require.True(t, ok)
	assert.Equal(t, "hello, direct", g.Greet())

	_, ok = series.Namespaces().Lookup("neverregistered")
	assert.False(t, ok)
}

func TestRegister_SecondRegistrationWinsAndWarns(t *testing.T) {
	lggr, logs := logger.TestObserved(t, zapcore.WarnLevel)
	api.SetLogger(lggr)
	t.Cleanup(func() { api.SetLogger(logger.Nop()) })

	api.RegisterSeriesNamespace("contested")(func(s *series.Series) (any, error) {
		return "first", nil
	})
	warned := func() int {
		return logs.
			FilterMessage("Overriding existing custom namespace").
			FilterField(zap.String("name", "contested")).
			Len()
	}
	require.Equal(t, 0, warned())

	api.RegisterSeriesNamespace("contested")(func(s *series.Series) (any, error) {
		return "second", nil
	})
	require.Equal(t, 1, warned())

	got, err := series.NewInt64("s", []int64{1}).Namespace("contested")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestNamespace_CachedPerInstance(t *testing.T) {
	t.Parallel()

	var constructions atomic.Int64
	api.RegisterSeriesNamespace("cachedonce")(func(s *series.Series) (any, error) {
		constructions.Add(1)

		return &greeter{s: s}, nil
	})

	s := series.NewInt64("a", []int64{1})
	first, err := s.Namespace("cachedonce")
	require.NoError(t, err)
	second, err := s.Namespace("cachedonce")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), constructions.Load())

	// A different instance gets its own namespace object.
	other, err := series.NewInt64("b", []int64{2}).Namespace("cachedonce")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, int64(2), constructions.Load())
}

func TestNamespace_ConcurrentAccessConstructsOnce(t *testing.T) {
	t.Parallel()

	var constructions atomic.Int64
	api.RegisterFrameNamespace("contended")(func(df *frame.Frame) (any, error) {
		constructions.Add(1)

		return df.Columns(), nil
	})

	df, err := frame.New(series.NewInt64("n", []int64{1}))
	require.NoError(t, err)

	const goroutines = 16
	results := make([]any, goroutines)

	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ns, err := df.Namespace("contended")
			assert.NoError(t, err)
			results[i] = ns
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), constructions.Load())
	for i := 1; i < goroutines; i++ {
		assert.Equal(t, results[0], results[i])
	}
}

func TestNamespace_ConstructionErrorNotCached(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken namespace")
	calls := 0
	api.RegisterLazyFrameNamespace("flaky")(func(lf *lazyframe.LazyFrame) (any, error) {
		calls++
		if calls == 1 {
			return nil, errBroken
		}

		return "recovered", nil
	})

	df, err := frame.New(series.NewInt64("n", []int64{1}))
	require.NoError(t, err)
	lf := lazyframe.From(df)

	_, err = lf.Namespace("flaky")
	require.Error(t, err)
	require.ErrorIs(t, err, errBroken)

	// The failure is not cached, so the next access retries.
	got, err := lf.Namespace("flaky")
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
}

func TestNamespace_KindsAreIsolated(t *testing.T) {
	t.Parallel()

	api.RegisterFrameNamespace("frameonly")(func(df *frame.Frame) (any, error) {
		return df.Width(), nil
	})

	df, err := frame.New(series.NewInt64("n", []int64{1}))
	require.NoError(t, err)
	got, err := df.Namespace("frameonly")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	// The same name resolves nowhere on the other host kinds.
	_, err = series.NewInt64("n", []int64{1}).Namespace("frameonly")
	require.ErrorIs(t, err, namespace.ErrNamespaceNotFound)

	_, err = expr.Col("n").Namespace("frameonly")
	require.ErrorIs(t, err, namespace.ErrNamespaceNotFound)

	_, err = lazyframe.From(df).Namespace("frameonly")
	require.ErrorIs(t, err, namespace.ErrNamespaceNotFound)
}

func TestNamespace_UnregisteredName(t *testing.T) {
	t.Parallel()

	_, err := series.NewInt64("n", []int64{1}).Namespace("nosuch")
	require.Error(t, err)
	require.ErrorIs(t, err, namespace.ErrNamespaceNotFound)
}

func TestRegisterWith_Metadata(t *testing.T) {
	t.Parallel()

	api.RegisterSeriesNamespaceWith("described",
		namespace.WithVersion(semver.MustParse("1.2.0")),
		namespace.WithDescription("extra series helpers"),
	)(func(s *series.Series) (any, error) {
		return &greeter{s: s}, nil
	})

	def, ok := series.Namespaces().Describe("described")
	require.True(t, ok)
	assert.Equal(t, "described", def.Name)
	assert.Equal(t, "extra series helpers", def.Description)
	require.NotNil(t, def.Version)
	assert.Equal(t, "1.2.0", def.Version.String())
}

// mathExpr mirrors the canonical extension example: numeric helpers
// registered under a custom expression namespace.
type mathExpr struct {
	e *expr.Expr
}

func newMathExpr(e *expr.Expr) (any, error) {
	return &mathExpr{e: e}, nil
}

// NextPow returns the smallest power of p greater than the expression value.
func (m *mathExpr) NextPow(p int64) *expr.Expr {
	return expr.Lit(p).
		Pow(m.e.Log(float64(p)).Ceil()).
		Cast(series.Int64)
}

// PrevPow returns the largest power of p at most the expression value.
func (m *mathExpr) PrevPow(p int64) *expr.Expr {
	return expr.Lit(p).
		Pow(m.e.Log(float64(p)).Floor()).
		Cast(series.Int64)
}

func TestRegister_EndToEnd(t *testing.T) {
	t.Parallel()

	api.RegisterExprNamespace("mathpow")(newMathExpr)

	df, err := frame.New(series.NewFloat64("n", []float64{1.4, 24.3, 55.0, 64.001}))
	require.NoError(t, err)

	e := expr.Col("n")
	m, err := namespace.As[*mathExpr](e.Namespace("mathpow"))
	require.NoError(t, err)

	out, err := df.Select(
		expr.Col("n"),
		m.NextPow(2).Alias("next_pow2"),
		m.PrevPow(2).Alias("prev_pow2"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"n", "next_pow2", "prev_pow2"}, out.Columns())

	next, err := out.Column("next_pow2")
	require.NoError(t, err)
	nextVals, err := next.Int64s()
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 32, 64, 128}, nextVals)

	prev, err := out.Column("prev_pow2")
	require.NoError(t, err)
	prevVals, err := prev.Int64s()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 16, 32, 64}, prevVals)
}
