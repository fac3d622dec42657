package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/trainstop/trainstop/stop"
)

var (
	replayPolicyPath  string // Path to the policy bundle YAML file
	replayTracePath   string // Path to the metrics trace CSV file
	replayStopAtFirst bool   // Stop replaying after the first stop vote
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a metrics trace through an early-stopping policy",
	Long:  "Load a policy bundle and a CSV metrics trace, run every check through the policy, and print a decision summary.",
	Run: func(cmd *cobra.Command, args []string) {
		bundle, err := stop.LoadPolicyBundle(replayPolicyPath)
		if err != nil {
			logrus.Fatalf("Failed to load policy bundle: %v", err)
		}
		if err := bundle.Validate(); err != nil {
			logrus.Fatalf("Invalid policy bundle: %v", err)
		}
		handler, err := bundle.Build()
		if err != nil {
			logrus.Fatalf("Failed to build policy: %v", err)
		}

		checks, err := loadMetricsTrace(replayTracePath)
		if err != nil {
			logrus.Fatalf("Failed to load metrics trace: %v", err)
		}

		trace := &stop.DecisionTrace{}
		for i, c := range checks {
			stopNow, err := handler.Check(c.epoch, c.values)
			if err != nil {
				logrus.Fatalf("Check failed at row %d: %v", i+2, err)
			}
			trace.Record(stop.CheckRecord{Step: i, Epoch: c.epoch, Stop: stopNow})
			if stopNow {
				logrus.Infof("Stop signalled at epoch %d (check %d)", c.epoch, i)
				if replayStopAtFirst {
					break
				}
			}
		}
		printSummary(stop.Summarize(trace))
	},
}

// traceCheck is one parsed row of a metrics trace.
type traceCheck struct {
	epoch  int
	values stop.Measurement
}

// traceHeader is the required CSV column order.
var traceHeader = []string{"epoch", "train_acc", "train_loss", "val_acc", "val_loss"}

// traceMetrics maps metric columns (after epoch) to metric names.
var traceMetrics = []stop.Metric{stop.MetricTrainAcc, stop.MetricTrainLoss, stop.MetricValAcc, stop.MetricValLoss}

// loadMetricsTrace parses a CSV metrics trace. An empty cell means the
// metric was not measured at that check.
func loadMetricsTrace(path string) ([]traceCheck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metrics trace: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read metrics trace: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("metrics trace empty or missing header")
	}
	if len(rows[0]) != len(traceHeader) {
		return nil, fmt.Errorf("metrics trace header: expected columns %v", traceHeader)
	}
	for i, name := range traceHeader {
		if rows[0][i] != name {
			return nil, fmt.Errorf("metrics trace header: expected columns %v", traceHeader)
		}
	}

	checks := make([]traceCheck, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(traceHeader) {
			return nil, fmt.Errorf("metrics trace row %d: expected %d columns", i+2, len(traceHeader))
		}
		epoch, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("metrics trace row %d: invalid epoch: %w", i+2, err)
		}
		values := stop.Measurement{}
		for j, m := range traceMetrics {
			cell := row[j+1]
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("metrics trace row %d: invalid %s: %w", i+2, m, err)
			}
			values[m] = v
		}
		checks = append(checks, traceCheck{epoch: epoch, values: values})
	}
	return checks, nil
}

func printSummary(s *stop.TraceSummary) {
	fmt.Printf("checks: %d\n", s.TotalChecks)
	fmt.Printf("stop votes: %d\n", s.StopCount)
	if s.FirstStopStep >= 0 {
		fmt.Printf("first stop: check %d (epoch %d)\n", s.FirstStopStep, s.FirstStopEpoch)
	} else {
		fmt.Printf("first stop: never\n")
	}
}

func init() {
	replayCmd.Flags().StringVar(&replayPolicyPath, "policy", "", "Path to policy bundle YAML file")
	replayCmd.Flags().StringVar(&replayTracePath, "trace", "", "Path to metrics trace CSV file")
	replayCmd.Flags().BoolVar(&replayStopAtFirst, "stop-at-first", false, "Stop replaying after the first stop vote")
	_ = replayCmd.MarkFlagRequired("policy")
	_ = replayCmd.MarkFlagRequired("trace")

	rootCmd.AddCommand(replayCmd)
}
