package stop

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Default configuration values, applied by DefaultConfig.
const (
	DefaultMinDelta = 1e-14
	DefaultPatience = 5
)

// Config holds EarlyStopping construction parameters.
type Config struct {
	Monitor   Metric  // metric watched for improvement (required)
	MinDelta  float64 // minimum absolute change that counts as an improvement
	Patience  int     // non-improving, non-missing checks tolerated before stopping
	Threshold float64 // immediate-stop bound; 0 disables the rule
}

// DefaultConfig returns a Config for the given monitor with the default
// min-delta and patience and the threshold rule disabled.
func DefaultConfig(monitor Metric) Config {
	return Config{Monitor: monitor, MinDelta: DefaultMinDelta, Patience: DefaultPatience}
}

// validate checks all parameter constraints. Configuration errors are
// programmer errors; retrying with the same arguments will fail again.
func (c Config) validate() error {
	if !validMetrics[c.Monitor] {
		return fmt.Errorf("unsupported metric %q; valid metrics: [train_acc, train_loss, val_acc, val_loss]", c.Monitor)
	}
	if c.MinDelta < 0 {
		return fmt.Errorf("min_delta must be non-negative, got %v", c.MinDelta)
	}
	if c.Patience < 1 {
		return fmt.Errorf("patience must be greater or equal 1, got %d", c.Patience)
	}
	if c.Monitor.Direction() > 0 && (c.Threshold < 0 || c.Threshold > 1) {
		return fmt.Errorf("threshold must be within [0, 1] for accuracy metrics, got %v", c.Threshold)
	}
	return nil
}

// EarlyStopping stops training based on a threshold or on (lack of)
// improvement of a single monitored metric.
type EarlyStopping struct {
	cfg       Config
	history   History
	indexBest int // index into history of the best observed value; -1 until one is seen
}

// New creates an EarlyStopping handler. Configuration is validated eagerly;
// invalid parameters are never silently corrected.
func New(cfg Config) (*EarlyStopping, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &EarlyStopping{cfg: cfg, indexBest: -1}, nil
}

// Check records the measured values and reports whether training should
// stop. The decision sequence:
//
//  1. The threshold rule fires if the monitored value strictly crosses the
//     configured threshold in the favorable direction. A value exactly equal
//     to the threshold does not fire.
//  2. A missing monitored value never stops on its own; the check still
//     occupies a history slot.
//  3. Otherwise the value is compared against the best observed so far; once
//     more than Patience measured values have arrived without improvement,
//     the patience rule fires.
func (es *EarlyStopping) Check(epoch int, values Measurement) (bool, error) {
	if epoch <= 0 {
		return false, fmt.Errorf("epoch must be greater than zero, got %d", epoch)
	}
	es.history.Append(epoch, values)

	direction := es.cfg.Monitor.Direction()
	value, present := values[es.cfg.Monitor]

	if es.cfg.Threshold > 0 && present && sign(value-es.cfg.Threshold) == direction {
		logrus.Debugf("early stopping: threshold crossed [monitor=%s value=%v threshold=%v]",
			es.cfg.Monitor, value, es.cfg.Threshold)
		return true, nil
	}
	if !present {
		return false, nil
	}
	if es.indexBest < 0 {
		// First measured value of the monitored metric.
		es.indexBest = es.history.Len() - 1
		return false, nil
	}
	return es.checkForImprovement(value, direction), nil
}

func (es *EarlyStopping) checkForImprovement(value float64, direction int) bool {
	previousBest, _ := es.history.At(es.indexBest).Value(es.cfg.Monitor)
	indexLast := es.history.Len() - 1

	delta := value - previousBest
	improvement := sign(delta) == direction
	if es.cfg.MinDelta > 0 {
		improvement = improvement && math.Abs(delta) >= es.cfg.MinDelta
	}
	if improvement {
		es.indexBest = indexLast
		return false
	}

	// Count measured values since the best; checks where the monitored
	// metric was missing neither extend nor reset the patience window.
	measured := 0
	for _, rec := range es.history.Since(es.indexBest + 1) {
		if _, ok := rec.Value(es.cfg.Monitor); ok {
			measured++
		}
	}
	if measured > es.cfg.Patience {
		logrus.Debugf("early stopping: patience exceeded [monitor=%s checks=%d patience=%d]",
			es.cfg.Monitor, measured, es.cfg.Patience)
		return true
	}
	return false
}

// BestIndex returns the history index of the best observed value of the
// monitored metric, or -1 if no measured value has been seen yet.
func (es *EarlyStopping) BestIndex() int {
	return es.indexBest
}

// History returns the handler's check history. The returned pointer is the
// internal store -- callers may read it but MUST NOT append.
func (es *EarlyStopping) History() *History {
	return &es.history
}

// sign returns -1, 0 or +1 matching the sign of x.
func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
