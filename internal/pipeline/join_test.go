package pipeline

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/urbanflow/internal/domain"
	"github.com/couchcryptid/urbanflow/internal/observability"
)

func newTestJoiner() *Joiner {
	return NewJoiner(domain.NYCScope(), slog.Default(), observability.NewMetricsForTesting())
}

func TestJoinerMergesTrafficAndAirQuality(t *testing.T) {
	j := newTestJoiner()

	j.IndexTraffic([]domain.TrafficRow{
		{Borough: "Bronx", Year: "2016", Month: "5", Day: "8", Volume: "356"},
	})
	j.ApplyAirQuality([]domain.AirQualityRow{
		{County: "Bronx", Date: "05/08/2016", PM25: "12.5"},
	})

	records := j.Filter()
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "bronx", r.Location)
	assert.Equal(t, 356, r.TrafficVolume)
	assert.Equal(t, 12.5, r.PM25Value())
	assert.Equal(t, "2016-05-08", r.Date)
	assert.InDelta(t, 0.035112, r.PollutionToTrafficRatio(), 1e-6)
	assert.False(t, r.IsHighTraffic())
	assert.True(t, r.IsPoorAir())
}

func TestJoinerFiltersTrafficOnlyRecords(t *testing.T) {
	j := newTestJoiner()

	j.IndexTraffic([]domain.TrafficRow{
		{Borough: "Bronx", Year: "2016", Month: "5", Day: "8", Volume: "356"},
		{Borough: "Queens", Year: "2016", Month: "5", Day: "9", Volume: "410"},
	})
	j.ApplyAirQuality([]domain.AirQualityRow{
		{County: "Bronx", Date: "05/08/2016", PM25: "12.5"},
	})

	records := j.Filter()
	require.Len(t, records, 1)
	assert.Equal(t, "bronx", records[0].Location)
}

func TestJoinerDropsUnanchoredReadings(t *testing.T) {
	j := newTestJoiner()

	// No traffic row at all; the reading has nothing to anchor to.
	j.ApplyAirQuality([]domain.AirQualityRow{
		{County: "Bronx", Date: "05/08/2016", PM25: "12.5"},
	})

	assert.Empty(t, j.Filter())
}

func TestJoinerLastTrafficWriteWins(t *testing.T) {
	j := newTestJoiner()

	j.IndexTraffic([]domain.TrafficRow{
		{Borough: "Bronx", Year: "2016", Month: "5", Day: "8", Volume: "100"},
		{Borough: "Bronx", Year: "2016", Month: "5", Day: "8", Volume: "900"},
	})
	j.ApplyAirQuality([]domain.AirQualityRow{
		{County: "Bronx", Date: "05/08/2016", PM25: "9.0"},
	})

	records := j.Filter()
	require.Len(t, records, 1)
	assert.Equal(t, 900, records[0].TrafficVolume)
}

func TestJoinerAirFilesFoldInAnyOrder(t *testing.T) {
	batchA := []domain.AirQualityRow{{County: "Bronx", Date: "05/08/2016", PM25: "12.5"}}
	batchB := []domain.AirQualityRow{{County: "Queens", Date: "05/09/2016", PM25: "7.0"}}
	traffic := []domain.TrafficRow{
		{Borough: "Bronx", Year: "2016", Month: "5", Day: "8", Volume: "356"},
		{Borough: "Queens", Year: "2016", Month: "5", Day: "9", Volume: "410"},
	}

	j1 := newTestJoiner()
	j1.IndexTraffic(traffic)
	j1.ApplyAirQuality(batchA)
	j1.ApplyAirQuality(batchB)

	j2 := newTestJoiner()
	j2.IndexTraffic(traffic)
	j2.ApplyAirQuality(batchB)
	j2.ApplyAirQuality(batchA)

	assert.Equal(t, j1.Filter(), j2.Filter())
}

func TestJoinerSkipsMalformedRowsIndividually(t *testing.T) {
	j := newTestJoiner()

	j.IndexTraffic([]domain.TrafficRow{
		{Borough: "Bronx", Year: "2016", Month: "May", Day: "8", Volume: "356"}, // bad month
		{Borough: "Hoboken", Year: "2016", Month: "5", Day: "8", Volume: "99"},  // out of scope
		{Borough: "Queens", Year: "2016", Month: "5", Day: "9", Volume: "410"},  // fine
	})
	j.ApplyAirQuality([]domain.AirQualityRow{
		{County: "Queens", Date: "not-a-date", PM25: "8.0"}, // bad date
		{County: "Queens", Date: "05/09/2016", PM25: "8.0"}, // fine
	})

	records := j.Filter()
	require.Len(t, records, 1)
	assert.Equal(t, "queens", records[0].Location)
	assert.Equal(t, 8.0, records[0].PM25Value())
}

func TestFilterOutputIsSortedByDateThenLocation(t *testing.T) {
	j := newTestJoiner()

	j.IndexTraffic([]domain.TrafficRow{
		{Borough: "Queens", Year: "2016", Month: "5", Day: "9", Volume: "410"},
		{Borough: "Manhattan", Year: "2016", Month: "5", Day: "8", Volume: "500"},
		{Borough: "Bronx", Year: "2016", Month: "5", Day: "8", Volume: "356"},
	})
	j.ApplyAirQuality([]domain.AirQualityRow{
		{County: "Queens", Date: "05/09/2016", PM25: "7.0"},
		{County: "Manhattan", Date: "05/08/2016", PM25: "9.0"},
		{County: "Bronx", Date: "05/08/2016", PM25: "12.5"},
	})

	records := j.Filter()
	require.Len(t, records, 3)
	assert.Equal(t, "bronx", records[0].Location)
	assert.Equal(t, "manhattan", records[1].Location)
	assert.Equal(t, "queens", records[2].Location)
}
