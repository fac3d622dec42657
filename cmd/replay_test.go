package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainstop/trainstop/stop"
)

func writeTrace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMetricsTrace_ParsesRows(t *testing.T) {
	path := writeTrace(t, "epoch,train_acc,train_loss,val_acc,val_loss\n"+
		"1,0.80,0.50,0.75,0.35\n"+
		"1,,,0.76,0.34\n"+
		"2,0.82,0.45,,\n")

	checks, err := loadMetricsTrace(path)
	require.NoError(t, err)
	require.Len(t, checks, 3)

	assert.Equal(t, 1, checks[0].epoch)
	assert.Equal(t, stop.Measurement{
		stop.MetricTrainAcc:  0.80,
		stop.MetricTrainLoss: 0.50,
		stop.MetricValAcc:    0.75,
		stop.MetricValLoss:   0.35,
	}, checks[0].values)

	// Empty cells mean the metric was not measured at that check.
	assert.Equal(t, stop.Measurement{
		stop.MetricValAcc:  0.76,
		stop.MetricValLoss: 0.34,
	}, checks[1].values)
	assert.Equal(t, 2, checks[2].epoch)
	assert.Equal(t, stop.Measurement{
		stop.MetricTrainAcc:  0.82,
		stop.MetricTrainLoss: 0.45,
	}, checks[2].values)
}

func TestLoadMetricsTrace_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "wrong header",
			content: "epoch,acc,loss,vacc,vloss\n1,0.8,0.5,0.7,0.3\n",
			wantErr: "metrics trace header",
		},
		{
			name:    "invalid epoch",
			content: "epoch,train_acc,train_loss,val_acc,val_loss\nx,0.8,0.5,0.7,0.3\n",
			wantErr: "invalid epoch",
		},
		{
			name:    "invalid value",
			content: "epoch,train_acc,train_loss,val_acc,val_loss\n1,abc,0.5,0.7,0.3\n",
			wantErr: "invalid train_acc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadMetricsTrace(writeTrace(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMetricsTrace_MissingFile(t *testing.T) {
	_, err := loadMetricsTrace(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open metrics trace")
}
