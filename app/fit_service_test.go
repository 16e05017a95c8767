package app

import (
	"context"
	"io"
	"math"
	"math/rand"
	"strings"
	"testing"

	"normfit/adapters/rng"
	"normfit/adapters/stats/binning"
	"normfit/domain/core"
	"normfit/domain/fit"
	"normfit/internal"
	"normfit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// MockRNGPort records stream requests
type MockRNGPort struct {
	mock.Mock
}

func (m *MockRNGPort) Stream(ctx context.Context, runID string, seed *int64) (*rand.Rand, error) {
	args := m.Called(ctx, runID, seed)
	r, _ := args.Get(0).(*rand.Rand)
	return r, args.Error(1)
}

func quietLogger() *internal.Logger {
	return internal.NewLoggerTo(io.Discard, internal.LogLevelError, false)
}

func newService(t *testing.T, port *MockRNGPort) *FitService {
	t.Helper()
	svc, err := NewFitService(port, quietLogger(), DefaultFitOptions())
	require.NoError(t, err)
	return svc
}

func seed(v int64) *int64 { return &v }

func TestFitService_Run(t *testing.T) {
	svc, err := NewFitService(rng.NewRNGAdapter(), quietLogger(), DefaultFitOptions())
	require.NoError(t, err)

	rep, err := svc.Run(context.Background(), fit.Params{Mean: 5, Variance: 4, Size: 1000, Seed: seed(42)})
	require.NoError(t, err)

	k := binning.IntervalCount(1000)
	assert.False(t, rep.RunID == "")
	assert.Equal(t, fit.ExpectationLegacy, rep.Params.Expectation)
	assert.Equal(t, 1000, rep.Sample.Size)
	assert.Equal(t, k, rep.Intervals.Len())
	assert.Len(t, rep.Histogram.Labels, k)
	assert.Len(t, rep.Histogram.Expected, k)
	assert.InDelta(t, 1.0, floats.Sum(rep.Histogram.Frequencies), 1e-9)
	assert.Equal(t, k-1, rep.ChiSquared.DegreesOfFreedom)

	assert.InDelta(t, 5.0, rep.Characteristics.Mean, 0.5)
	assert.InDelta(t, 4.0, rep.Characteristics.Variance, 0.5)

	assert.True(t, strings.HasPrefix(rep.MeanText, "Average: "))
	assert.True(t, strings.HasPrefix(rep.VarianceText, "Variance: "))
	assert.True(t, strings.HasPrefix(rep.ChiSquaredText, "Chi-squared: "))
	assert.True(t, strings.HasPrefix(rep.Histogram.Labels[0], "["))
	assert.True(t, strings.HasPrefix(rep.Histogram.Labels[1], "("))
}

func TestFitService_SeededRunsAreReproducible(t *testing.T) {
	svc, err := NewFitService(rng.NewRNGAdapter(), quietLogger(), DefaultFitOptions())
	require.NoError(t, err)

	params := fit.Params{Mean: -1, Variance: 0.5, Size: 2000, Seed: seed(7)}
	a, err := svc.Run(context.Background(), params)
	require.NoError(t, err)
	b, err := svc.Run(context.Background(), params)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.Equal(t, a.Characteristics, b.Characteristics)
	assert.Equal(t, a.Histogram, b.Histogram)
	assert.Equal(t, a.ChiSquared, b.ChiSquared)
}

func TestFitService_CDFMode(t *testing.T) {
	opts := DefaultFitOptions()
	opts.ExpectationMode = fit.ExpectationCDF
	svc, err := NewFitService(rng.NewRNGAdapter(), quietLogger(), opts)
	require.NoError(t, err)

	rep, err := svc.Run(context.Background(), fit.Params{Mean: 3, Variance: 1, Size: 5000, Seed: seed(99)})
	require.NoError(t, err)

	assert.Equal(t, fit.ExpectationCDF, rep.Params.Expectation)
	for _, p := range rep.Histogram.Expected {
		assert.Greater(t, p, 0.0)
		assert.Less(t, p, 1.0)
	}
	assert.False(t, rep.ChiSquared.Reject)
}

func TestFitService_RejectsDomainErrorsBeforeSampling(t *testing.T) {
	port := &MockRNGPort{}
	svc := newService(t, port)

	cases := []struct {
		name   string
		params fit.Params
		want   error
	}{
		{"zero mean", fit.Params{Mean: 0, Variance: 1, Size: 100}, core.ErrZeroExpected},
		{"zero variance", fit.Params{Mean: 1, Variance: 0, Size: 100}, core.ErrZeroExpected},
		{"negative variance", fit.Params{Mean: 1, Variance: -1, Size: 100}, core.ErrNegativeVariance},
		{"size one", fit.Params{Mean: 1, Variance: 1, Size: 1}, core.ErrSampleTooSmall},
		{"size too large", fit.Params{Mean: 1, Variance: 1, Size: 100001}, core.ErrSampleTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rep, err := svc.Run(context.Background(), tc.params)
			assert.Nil(t, rep)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, errors.CodeDomainError, errors.GetCode(err))
		})
	}
	port.AssertNotCalled(t, "Stream", mock.Anything, mock.Anything, mock.Anything)
}

func TestFitService_StreamFailure(t *testing.T) {
	port := &MockRNGPort{}
	port.On("Stream", mock.Anything, mock.AnythingOfType("string"), (*int64)(nil)).
		Return(nil, context.Canceled)
	svc := newService(t, port)

	rep, err := svc.Run(context.Background(), fit.Params{Mean: 1, Variance: 1, Size: 100})
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, context.Canceled)
	port.AssertExpectations(t)
}

func TestFitService_DegenerateSourceFailsWholeRun(t *testing.T) {
	port := &MockRNGPort{}
	port.On("Stream", mock.Anything, mock.Anything, mock.Anything).
		Return(rand.New(zeroSource{}), nil)
	svc := newService(t, port)

	rep, err := svc.Run(context.Background(), fit.Params{Mean: 1, Variance: 1, Size: 100})
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, core.ErrDegenerateUniform)
	assert.Equal(t, errors.CodeDegenerate, errors.GetCode(err))
}

// zeroSource makes rand.Rand.Float64 return 0 forever
type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}

// scriptedSource replays uniforms in order, cycling when exhausted
type scriptedSource struct {
	uniforms []float64
	next     int
}

func (s *scriptedSource) Int63() int64 {
	u := s.uniforms[s.next%len(s.uniforms)]
	s.next++
	return int64(u * (1 << 63))
}

func (s *scriptedSource) Seed(int64) {}

func TestFitService_EmptyLegacyIntervalFailsWholeRun(t *testing.T) {
	// u1 = e^-2 gives |z| = 2; u2 = 0 and 0.5 pick the sign. The sample is
	// four values at mean-2 and four at mean+2, so both middle intervals are empty.
	u1 := math.Exp(-2)
	src := &scriptedSource{uniforms: []float64{u1, 0, u1, 0.5}}

	port := &MockRNGPort{}
	port.On("Stream", mock.Anything, mock.Anything, mock.Anything).
		Return(rand.New(src), nil)
	svc := newService(t, port)

	rep, err := svc.Run(context.Background(), fit.Params{
		Mean: 10, Variance: 1, Size: 8, Expectation: fit.ExpectationLegacy,
	})
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, core.ErrZeroProbability)
	assert.Equal(t, errors.CodeDomainError, errors.GetCode(err))
	assert.Equal(t, 16, src.next, "every value is drawn before the test fails")
	port.AssertExpectations(t)
}

func TestFitService_OverflowingVarianceIsRejected(t *testing.T) {
	svc, err := NewFitService(rng.NewRNGAdapter(), quietLogger(), DefaultFitOptions())
	require.NoError(t, err)

	for _, mode := range []fit.ExpectationMode{fit.ExpectationLegacy, fit.ExpectationCDF} {
		t.Run(string(mode), func(t *testing.T) {
			rep, err := svc.Run(context.Background(), fit.Params{
				Mean: 1, Variance: 1e307, Size: 1000, Seed: seed(42), Expectation: mode,
			})
			assert.Nil(t, rep)
			assert.ErrorIs(t, err, core.ErrNonFinite)
			assert.Equal(t, errors.CodeDegenerate, errors.GetCode(err))
		})
	}
}

func TestNewFitService_UnsupportedOptions(t *testing.T) {
	opts := DefaultFitOptions()
	opts.Alpha = 0.01
	_, err := NewFitService(rng.NewRNGAdapter(), quietLogger(), opts)
	assert.ErrorIs(t, err, core.ErrUntabulatedDF)

	opts = DefaultFitOptions()
	opts.ExpectationMode = "exact"
	_, err = NewFitService(rng.NewRNGAdapter(), quietLogger(), opts)
	assert.Error(t, err)
}
