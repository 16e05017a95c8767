package app

import (
	"context"
	"math"
	"time"

	"normfit/adapters/stats/binning"
	"normfit/adapters/stats/expectation"
	"normfit/adapters/stats/goodness"
	"normfit/adapters/stats/variate"
	"normfit/domain/core"
	"normfit/domain/fit"
	"normfit/internal"
	"normfit/internal/errors"
	"normfit/internal/report"
	"normfit/ports"
)

// FitService runs the sample-and-test pipeline. It holds no per-run state,
// so one instance may serve concurrent callers.
type FitService struct {
	rngPort ports.RNGPort
	logger  *internal.Logger
	opts    FitOptions
}

// FitOptions are the service-wide limits applied to every run
type FitOptions struct {
	MaxSampleSize   int
	Alpha           float64
	ExpectationMode fit.ExpectationMode
}

// DefaultFitOptions mirrors config.Default
func DefaultFitOptions() FitOptions {
	return FitOptions{
		MaxSampleSize:   100000,
		Alpha:           goodness.DefaultAlpha,
		ExpectationMode: fit.ExpectationLegacy,
	}
}

// NewFitService creates a fit service. The significance level must be tabulated.
func NewFitService(rngPort ports.RNGPort, logger *internal.Logger, opts FitOptions) (*FitService, error) {
	if _, err := goodness.CriticalValueAt(opts.Alpha, 1); err != nil {
		return nil, errors.Wrap(err, "unsupported significance level")
	}
	if _, err := fit.ParseExpectationMode(string(opts.ExpectationMode)); err != nil {
		return nil, errors.Wrap(err, "unsupported expectation mode")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &FitService{rngPort: rngPort, logger: logger, opts: opts}, nil
}

// Options returns the limits the service was built with
func (s *FitService) Options() FitOptions {
	return s.opts
}

// Validate checks params against every input domain rule without drawing anything
func (s *FitService) Validate(params fit.Params) error {
	if err := params.Validate(s.opts.MaxSampleSize); err != nil {
		return errors.Wrap(err, "invalid fit parameters")
	}
	df := binning.IntervalCount(params.Size) - 1
	if _, err := goodness.CriticalValueAt(s.opts.Alpha, df); err != nil {
		return errors.Wrap(err, "invalid fit parameters")
	}
	return nil
}

// Run draws a sample from N(mean, variance) and tests it against the same hypothesis.
// The run is all-or-nothing: on error no partial report is returned.
func (s *FitService) Run(ctx context.Context, params fit.Params) (*fit.Report, error) {
	startTime := time.Now()

	if params.Expectation == "" {
		params.Expectation = s.opts.ExpectationMode
	}
	if err := s.Validate(params); err != nil {
		return nil, err
	}

	runID := core.NewRunID()
	logger := s.logger.WithField("run_id", runID.String())

	stream, err := s.rngPort.Stream(ctx, runID.String(), params.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open random stream")
	}

	sample, err := variate.DrawSample(variate.NewGenerator(stream), params.Mean, params.Variance, params.Size)
	if err != nil {
		return nil, errors.Wrap(err, "sampling failed")
	}

	intervals, err := binning.BuildIntervals(sample)
	if err != nil {
		return nil, errors.Wrap(err, "binning failed")
	}
	logger.WithFields(map[string]interface{}{
		"intervals": intervals.Len(),
		"step":      intervals.Step,
	}).Debug("binned sample of %d values", len(sample))

	freqs, err := binning.ClassifyAndCount(sample, intervals)
	if err != nil {
		return nil, errors.Wrap(err, "classification failed")
	}

	estimator, err := expectation.New(params.Expectation, params.Mean, params.Deviation())
	if err != nil {
		return nil, errors.Wrap(err, "invalid fit parameters")
	}
	probs, err := estimator.Estimate(intervals, sample)
	if err != nil {
		return nil, errors.Wrap(err, "expectation estimate failed")
	}
	if err := requireFinite("expected probability", probs...); err != nil {
		return nil, errors.Wrap(err, "expectation estimate failed")
	}

	characteristics, err := goodness.Characteristics(sample)
	if err != nil {
		return nil, errors.Wrap(err, "characteristics failed")
	}
	relErrors, err := goodness.RelativeErrors(fit.Characteristics{Mean: params.Mean, Variance: params.Variance}, characteristics)
	if err != nil {
		return nil, errors.Wrap(err, "relative error failed")
	}
	if err := requireFinite("relative error", relErrors.Mean, relErrors.Variance); err != nil {
		return nil, errors.Wrap(err, "relative error failed")
	}

	chi, err := goodness.ChiSquaredTest(len(sample), freqs, probs, s.opts.Alpha)
	if err != nil {
		return nil, errors.Wrap(err, "chi-squared test failed")
	}
	if err := requireFinite("chi-squared statistic", chi.Statistic); err != nil {
		return nil, errors.Wrap(err, "chi-squared test failed")
	}

	rep := &fit.Report{
		RunID:       runID,
		Fingerprint: fingerprint(params, s.opts.Alpha),
		CreatedAt:   core.Now(),
		Params:      params,
		Sample: fit.SampleSummary{
			Size: len(sample),
			Min:  intervals.Min,
			Max:  intervals.Bounds[intervals.Len()-1],
		},
		Intervals:       intervals,
		Characteristics: characteristics,
		RelativeErrors:  relErrors,
		ChiSquared:      chi,
		Histogram: fit.Histogram{
			Frequencies: freqs,
			Expected:    probs,
		},
		RuntimeMs: time.Since(startTime).Milliseconds(),
	}
	report.Fill(rep)

	logger.Info("%s | %s | %s", rep.MeanText, rep.VarianceText, rep.ChiSquaredText)
	return rep, nil
}

// requireFinite rejects Inf and NaN so a report always encodes to JSON
func requireFinite(field string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewDomainError(core.ErrNonFinite, field, v)
		}
	}
	return nil
}

func fingerprint(params fit.Params, alpha float64) core.Hash {
	var seed interface{} = "entropy"
	if params.Seed != nil {
		seed = *params.Seed
	}
	return core.ComputeFingerprint(params.Mean, params.Variance, params.Size, seed, params.Expectation, alpha)
}
