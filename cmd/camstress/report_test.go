package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)

	stats := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	stats.Finalize()
	assert.Equal(t, time.Millisecond, stats.Min)
	assert.Equal(t, 3*time.Millisecond, stats.Max)
	assert.Equal(t, 2*time.Millisecond, stats.Avg)
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Duration:     time.Second,
		Cameras:      10,
		Windows:      2,
		ResizeRate:   0.25,
		TotalUpdates: 60,
		Resizes:      4,
		Passes:       120,
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# Camera Stress Test Report")
	assert.Contains(t, out, "- **Cameras:** 10")
	assert.Contains(t, out, "- **Resize Rate:** 0.25")
	assert.Contains(t, out, "- **Clear Passes Recorded:** 120")
	assert.NotContains(t, out, "GC Pause Durations")
}
