package airquality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeBuckets(t *testing.T) {
	tests := []struct {
		name string
		aqi  float64
		want string
	}{
		{"well below good threshold", 20, "good"},
		{"just below good threshold", 49, "good"},
		{"at good threshold", 50, "moderate"},
		{"just below moderate threshold", 99, "moderate"},
		{"at moderate threshold", 100, "poor"},
		{"well above moderate threshold", 180, "poor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Summarize(&Observation{AQI: tt.aqi})
			assert.Equal(t, tt.want, summary.Status)
			assert.Equal(t, tt.aqi, summary.AQI)
		})
	}
}

func TestSummarizeNil(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, "unknown", summary.Status)
	assert.Zero(t, summary.AQI)
}
