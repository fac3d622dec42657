package stop

// Record is a single entry in a check history. Metric fields are nil when
// the metric was not part of the measurement for that check.
type Record struct {
	Epoch     int // epoch number supplied by the caller (1-indexed)
	Count     int // how many earlier entries carry the same epoch number
	TrainAcc  *float64
	TrainLoss *float64
	ValAcc    *float64
	ValLoss   *float64
}

// Value returns the recorded value for the given metric.
// ok is false when the metric was not measured for this entry.
func (r Record) Value(m Metric) (float64, bool) {
	var v *float64
	switch m {
	case MetricTrainAcc:
		v = r.TrainAcc
	case MetricTrainLoss:
		v = r.TrainLoss
	case MetricValAcc:
		v = r.ValAcc
	case MetricValLoss:
		v = r.ValLoss
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// History is an append-only ordered store of check records. The position of
// a record in the store is its identity: best-value tracking refers to
// records by index. A History never shrinks.
type History struct {
	records []Record
}

// Append builds a record from the measurement and adds it to the store.
// Count is the number of existing entries with the same epoch, which allows
// multiple checks per epoch to be told apart.
func (h *History) Append(epoch int, values Measurement) Record {
	count := 0
	for _, r := range h.records {
		if r.Epoch == epoch {
			count++
		}
	}
	rec := Record{
		Epoch:     epoch,
		Count:     count,
		TrainAcc:  optValue(values, MetricTrainAcc),
		TrainLoss: optValue(values, MetricTrainLoss),
		ValAcc:    optValue(values, MetricValAcc),
		ValLoss:   optValue(values, MetricValLoss),
	}
	h.records = append(h.records, rec)
	return rec
}

func optValue(values Measurement, m Metric) *float64 {
	if v, ok := values[m]; ok {
		return &v
	}
	return nil
}

// At returns the record at index i.
func (h *History) At(i int) Record {
	return h.records[i]
}

// Since returns the records from index i onward.
// The returned slice is backed by the store's internal storage -- callers
// may iterate over it but MUST NOT append to or reslice it.
func (h *History) Since(i int) []Record {
	return h.records[i:]
}

// Len returns the number of records.
func (h *History) Len() int {
	return len(h.records)
}
