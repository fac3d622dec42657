package stop

// Metric identifies a measured training quantity that can be monitored for
// early stopping.
type Metric string

const (
	MetricTrainAcc  Metric = "train_acc"
	MetricTrainLoss Metric = "train_loss"
	MetricValAcc    Metric = "val_acc"
	MetricValLoss   Metric = "val_loss"
)

// validMetrics maps recognized metric names.
var validMetrics = map[Metric]bool{
	MetricTrainAcc:  true,
	MetricTrainLoss: true,
	MetricValAcc:    true,
	MetricValLoss:   true,
}

// IsValidMetric returns true if the given name is a recognized metric name.
func IsValidMetric(name string) bool {
	return validMetrics[Metric(name)]
}

// Direction returns +1 for greater-is-better metrics (accuracy) and -1 for
// lesser-is-better metrics (loss).
func (m Metric) Direction() int {
	switch m {
	case MetricTrainAcc, MetricValAcc:
		return 1
	default:
		return -1
	}
}

// Measurement maps metric names to measured values. A missing key means the
// metric was not measured for this check; keys outside the recognized set
// are ignored.
type Measurement map[Metric]float64
