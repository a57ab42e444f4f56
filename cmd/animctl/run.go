package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/phanxgames/animated"
	"github.com/phanxgames/animated/promstats"
	"github.com/phanxgames/animated/script"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Run a scenario script",
	Long:  `Runs every step of the script on a virtual frame clock and prints the props writes, listener calls and animation ends it produced.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		metrics, _ := cmd.Flags().GetBool("metrics")
		log, err := loggerFor(cmd)
		if err != nil {
			return err
		}

		s, err := script.Load(args[0])
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		if metrics {
			prev := animated.SetObserver(promstats.New(reg))
			defer animated.SetObserver(prev)
		}

		r, err := script.NewRunner(s, script.WithLogger(log))
		if err != nil {
			return err
		}
		log.Info("running script", "path", args[0], "steps", len(s.Steps))
		if err := r.Run(cmd.Context()); err != nil {
			return err
		}
		log.Info("script done", "frames", r.Frame(), "records", len(r.Records()))

		out := cmd.OutOrStdout()
		if err := printRecords(out, r.Records(), jsonMode); err != nil {
			return err
		}
		if metrics {
			return printMetrics(out, reg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Print records as NDJSON")
	runCmd.Flags().Bool("metrics", false, "Print graph metrics after the run")
}

func printRecords(w io.Writer, records []script.Record, jsonMode bool) error {
	if jsonMode {
		enc := json.NewEncoder(w)
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(w, "%4d %-8s %-12s %v\n", rec.Frame, rec.Kind, rec.Target, rec.Values)
	}
	return nil
}

func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName() + labels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(w, "%s %v\n", name, m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				fmt.Fprintf(w, "%s %v\n", name, m.GetGauge().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s count=%d sum=%v\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}

func labels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("%s=%q", p.GetName(), p.GetValue())
	}
	return "{" + strings.Join(parts, ",") + "}"
}
