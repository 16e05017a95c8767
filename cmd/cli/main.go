package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"normfit/adapters/excel"
	"normfit/adapters/rng"
	"normfit/adapters/stats/goodness"
	"normfit/app"
	"normfit/domain/fit"
	"normfit/internal"
	"normfit/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	appConfig := config.Default()

	rootCmd := &cobra.Command{
		Use:           "normfit",
		Short:         "Sample a normal distribution and test the sample against it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			*appConfig = *cfg
			return nil
		},
	}

	rootCmd.AddCommand(
		newRunCmd(appConfig),
		newCriticalCmd(),
		newShowCmd(),
	)
	return rootCmd
}

func newRunCmd(appConfig *config.Config) *cobra.Command {
	var (
		mean        float64
		variance    float64
		size        int
		seed        int64
		expectation string
		asJSON      bool
		xlsxPath    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Draw a sample from N(mean, variance) and run the chi-squared goodness-of-fit test",
		Long: `Draw a sample from N(mean, variance), bin it with Sturges' rule and test it
against the same hypothesis with a chi-squared test at alpha = 0.05.

Unset flags fall back to NORMFIT_DEFAULT_MEAN, NORMFIT_DEFAULT_VARIANCE and
NORMFIT_DEFAULT_SIZE.

Example: normfit run --mean 5 --variance 4 --size 1000 --seed 42 --xlsx report.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := fit.Params{
				Mean:     appConfig.Fit.DefaultMean,
				Variance: appConfig.Fit.DefaultVariance,
				Size:     appConfig.Fit.DefaultSize,
			}
			flags := cmd.Flags()
			if flags.Changed("mean") {
				params.Mean = mean
			}
			if flags.Changed("variance") {
				params.Variance = variance
			}
			if flags.Changed("size") {
				params.Size = size
			}
			if flags.Changed("seed") {
				params.Seed = &seed
			}
			if expectation != "" {
				mode, err := fit.ParseExpectationMode(expectation)
				if err != nil {
					return err
				}
				params.Expectation = mode
			}

			logger := internal.NewLoggerTo(cmd.ErrOrStderr(), internal.ParseLogLevel(appConfig.Log.Level), appConfig.Log.Format == "json")
			service, err := app.NewFitService(rng.NewRNGAdapter(), logger, app.FitOptions{
				MaxSampleSize:   appConfig.Fit.MaxSampleSize,
				Alpha:           appConfig.Fit.Alpha,
				ExpectationMode: fit.ExpectationMode(appConfig.Fit.ExpectationMode),
			})
			if err != nil {
				return err
			}

			rep, err := service.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				if err := excel.NewReportWriter().WriteFile(xlsxPath, rep); err != nil {
					return err
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			printReport(cmd.OutOrStdout(), rep)
			if xlsxPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nWorkbook written to %s\n", xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&mean, "mean", 0, "Hypothesized mean (non-zero)")
	cmd.Flags().Float64Var(&variance, "variance", 0, "Hypothesized variance (> 0)")
	cmd.Flags().IntVar(&size, "size", 0, "Sample size")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for a reproducible sample")
	cmd.Flags().StringVar(&expectation, "expectation", "", "Expected probability estimator: legacy|cdf")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the report to this .xlsx workbook")

	return cmd
}

func newCriticalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "critical [degrees-of-freedom]",
		Short: "Print the tabulated chi-squared critical value at alpha = 0.05",
		Long: `Print the tabulated chi-squared critical value at alpha = 0.05.
Without an argument every tabulated value is listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "DF\tCRITICAL")
				for _, df := range goodness.TabulatedDegrees(goodness.DefaultAlpha) {
					v, _ := goodness.CriticalValue(df)
					fmt.Fprintf(w, "%d\t%.6f\n", df, v)
				}
				return w.Flush()
			}
			df, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid degrees of freedom %q: %w", args[0], err)
			}
			v, err := goodness.CriticalValue(df)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%.6f\n", v)
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [workbook.xlsx]",
		Short: "Print the summary and histogram stored in an exported workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := excel.ReadWorkbook(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			keys := make([]string, 0, len(data.Summary))
			for k := range data.Summary {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, k := range keys {
				fmt.Fprintf(w, "%s\t%s\n", k, data.Summary[k])
			}
			if err := w.Flush(); err != nil {
				return err
			}

			labels := make([]string, len(data.Histogram))
			freqs := make([]float64, len(data.Histogram))
			for i, row := range data.Histogram {
				labels[i] = row.Label
				freqs[i] = row.Frequency
			}
			fmt.Fprintln(out)
			printHistogram(out, labels, freqs)
			return nil
		},
	}
}

func printReport(out io.Writer, rep *fit.Report) {
	fmt.Fprintln(out, rep.MeanText)
	fmt.Fprintln(out, rep.VarianceText)
	fmt.Fprintln(out, rep.ChiSquaredText)
	fmt.Fprintln(out)
	printHistogram(out, rep.Histogram.Labels, rep.Histogram.Frequencies)
}

const barWidth = 50

// printHistogram draws a horizontal bar per interval scaled to the largest frequency
func printHistogram(out io.Writer, labels []string, freqs []float64) {
	peak := 0.0
	for _, f := range freqs {
		if f > peak {
			peak = f
		}
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTERVAL\tFREQUENCY\t")
	for i, label := range labels {
		n := 0
		if peak > 0 {
			n = int(freqs[i] / peak * barWidth)
		}
		fmt.Fprintf(w, "%s\t%.4f\t%s\n", label, freqs[i], strings.Repeat("#", n))
	}
	w.Flush()
}
