package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/urbanflow/internal/domain"
)

func pm25(v float64) *float64 { return &v }

func TestRender(t *testing.T) {
	d := domain.NewDataset("New York City", []domain.Record{
		{Location: "bronx", TrafficVolume: 356, PM25: pm25(12.5), Date: "2016-05-08"},
		{Location: "queens", TrafficVolume: 1247, PM25: pm25(9.8), Date: "2017-01-09"},
	})

	got, err := Render(d, 0.01)
	require.NoError(t, err)

	want := `========================================
UrbanFlow Analysis Report
========================================
City: New York City
Total Records: 2
Overall Average Traffic: 801.50 vehicles/hour
Overall Average PM2.5: 11.15 µg/m³

Yearly Averages and Differences:
2016: Avg Traffic = 356.00 (Diff -445.50), Avg PM2.5 = 12.50 (Diff +1.35)
2017: Avg Traffic = 1247.00 (Diff +445.50), Avg PM2.5 = 9.80 (Diff -1.35)

Hotspots:
bronx - Ratio: 0.035112
`
	assert.Equal(t, want, got)
}

func TestRenderIsDeterministic(t *testing.T) {
	d := domain.NewDataset("New York City", []domain.Record{
		{Location: "bronx", TrafficVolume: 100, PM25: pm25(5.0), Date: "2016-05-08"},
		{Location: "queens", TrafficVolume: 200, PM25: pm25(4.0), Date: "2016-05-09"},
	})

	first, err := Render(d, 0.01)
	require.NoError(t, err)
	second, err := Render(d, 0.01)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderJoinsMultipleHotspots(t *testing.T) {
	d := domain.NewDataset("New York City", []domain.Record{
		{Location: "bronx", TrafficVolume: 100, PM25: pm25(5.0), Date: "2016-05-08"},
		{Location: "queens", TrafficVolume: 100, PM25: pm25(6.0), Date: "2016-05-09"},
	})

	got, err := Render(d, 0.01)
	require.NoError(t, err)

	assert.Contains(t, got, "bronx - Ratio: 0.050000, queens - Ratio: 0.060000")
}

func TestRenderEmptyDataset(t *testing.T) {
	d := domain.NewDataset("New York City", nil)

	got, err := Render(d, 0.01)

	require.ErrorIs(t, err, ErrNoRecords)
	assert.Empty(t, got)
}

func TestRenderZeroDeviationKeepsSign(t *testing.T) {
	d := domain.NewDataset("New York City", []domain.Record{
		{Location: "bronx", TrafficVolume: 150, PM25: pm25(3.0), Date: "2016-05-08"},
	})

	got, err := Render(d, 0.01)
	require.NoError(t, err)

	assert.Contains(t, got, "2016: Avg Traffic = 150.00 (Diff +0.00), Avg PM2.5 = 3.00 (Diff +0.00)")
}
