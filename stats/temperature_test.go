package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FamilyQT/models"
)

func TestTemperatureIsMonotonicAndSaturates(t *testing.T) {
	prev := QTTemperature(0)
	assert.Equal(t, 0.0, prev)

	for n := 1; n <= 1500; n++ {
		cur := QTTemperature(n)
		assert.GreaterOrEqual(t, cur, prev, "n=%d", n)
		assert.LessOrEqual(t, cur, MaxTemperature)
		prev = cur
	}

	assert.Less(t, QTTemperature(1190), MaxTemperature)
	assert.Equal(t, MaxTemperature, QTTemperature(1191))
	assert.Equal(t, MaxTemperature, BibleTemperature(5000))
}

func TestTemperatureNeverNegative(t *testing.T) {
	assert.Equal(t, 0.0, QTTemperature(-10))
	assert.Equal(t, 0.0, TotalTemperature(-5, -5))
}

func TestTotalTemperatureExample(t *testing.T) {
	records := []models.DailyRecord{
		{User_Name: "가온", Qt_Count: 10, Bible_Read_Count: 5},
		{User_Name: "가온", Qt_Count: 20, Bible_Read_Count: 15},
	}

	temps := UserTemperatures(records)
	require.Len(t, temps, 1)

	temp := temps[0]
	assert.Equal(t, 30, temp.QtTotal)
	assert.Equal(t, 20, temp.BibleTotal)
	assert.InDelta(t, 2.52, temp.QtTemp, 1e-9)
	assert.InDelta(t, 1.68, temp.BibleTemp, 1e-9)
	assert.InDelta(t, 2.1, temp.TotalTemp, 1e-9)
	assert.Equal(t, "cold", temp.Band.Name)
}

func TestTotalTemperatureCaps(t *testing.T) {
	assert.Equal(t, MaxTemperature, TotalTemperature(100, 100))
	assert.Equal(t, 50.0, TotalTemperature(100, 0))
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		temp     float64
		expected string
	}{
		{0, "cold"},
		{24.9, "cold"},
		{25, "lukewarm"},
		{49.99, "lukewarm"},
		{50, "warm"},
		{75, "hot"},
		{99.9, "hot"},
		{100, "boiling"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, BandFor(tt.temp).Name, "temp=%v", tt.temp)
	}
}
