package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
)

type stubProvider struct {
	name  string
	feed  forecast.Feed
	err   error
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) FetchFeed(ctx context.Context, loc Location) (forecast.Feed, error) {
	p.calls++
	return p.feed, p.err
}

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func testFeed() forecast.Feed {
	p := func(name string, v float64) forecast.Parameter {
		return forecast.Parameter{Name: name, Values: []float64{v}}
	}
	return forecast.Feed{
		ApprovedTime: time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC),
		TimeSeries: []forecast.Entry{
			{ValidTime: "2026-10-16T10:00:00Z", Parameters: []forecast.Parameter{p("t", 5), p("Wsymb2", 2)}},
			{ValidTime: "2026-10-16T19:00:00Z", Parameters: []forecast.Parameter{p("t", 3)}},
			{ValidTime: "2026-10-17T08:00:00Z", Parameters: []forecast.Parameter{p("t", 1), p("tstm", 12)}},
			{ValidTime: "2026-10-17T13:00:00Z", Parameters: []forecast.Parameter{p("t", 7), p("Wsymb2", 18)}},
			{ValidTime: "2026-10-18T12:00:00Z", Parameters: []forecast.Parameter{p("t", 9)}},
		},
	}
}

func TestBuildReport(t *testing.T) {
	prov := &stubProvider{name: "smhi", feed: testFeed()}
	svc := NewService(nil, []FeedProvider{prov}, WithClock(func() time.Time { return fixedNow }))

	loc := Location{Name: "Karlskrona", Lat: 56.16, Lon: 15.59}
	report, err := svc.BuildReport(context.Background(), loc)
	require.NoError(t, err)

	_, err = uuid.Parse(report.ID)
	assert.NoError(t, err)
	assert.Equal(t, "smhi", report.Provider)
	assert.Equal(t, loc, report.Location)
	assert.Equal(t, fixedNow, report.GeneratedAt)
	assert.Equal(t, testFeed().ApprovedTime, report.ApprovedTime)

	require.NotNil(t, report.Current)
	assert.Equal(t, 5.0, report.Current.Parameters["t"])

	require.NotNil(t, report.Slots.Morning)
	assert.Equal(t, 1.0, report.Slots.Morning.Parameters["t"])
	require.NotNil(t, report.Slots.Noon)
	require.NotNil(t, report.Slots.Evening)
	assert.Equal(t, 3.0, report.Slots.Evening.Parameters["t"])

	require.Len(t, report.Daily, 2)
	assert.Equal(t, 1.0, *report.Daily[0].TempMin)
	assert.Equal(t, 7.0, *report.Daily[0].TempMax)
	assert.Equal(t, 12.0, report.Daily[0].StormMax)
	assert.Equal(t, "Light rain", report.Daily[0].Description)
	assert.Equal(t, "Sunday", report.Daily[1].Weekday)
}

func TestBuildReportFailover(t *testing.T) {
	down := &stubProvider{name: "smhi", err: errors.New("boom")}
	up := &stubProvider{name: "openmeteo", feed: testFeed()}
	svc := NewService(nil, []FeedProvider{down, up}, WithClock(func() time.Time { return fixedNow }))

	report, err := svc.BuildReport(context.Background(), Location{Lat: 1, Lon: 2})
	require.NoError(t, err)
	assert.Equal(t, "openmeteo", report.Provider)
	assert.Equal(t, 1, down.calls)
	assert.Equal(t, 1, up.calls)
}

func TestBuildReportAllProvidersFail(t *testing.T) {
	cause := errors.New("timeout")
	svc := NewService(nil, []FeedProvider{&stubProvider{name: "a", err: errors.New("x")}, &stubProvider{name: "b", err: cause}})

	_, err := svc.BuildReport(context.Background(), Location{})
	assert.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.ErrorIs(t, err, cause)
}

func TestBuildReportNoProviders(t *testing.T) {
	_, err := NewService(nil, nil).BuildReport(context.Background(), Location{})
	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestBuildReportMalformedFeed(t *testing.T) {
	feed := testFeed()
	feed.TimeSeries = append(feed.TimeSeries, forecast.Entry{ValidTime: "soon"})
	prov := &stubProvider{name: "smhi", feed: feed}

	_, err := NewService(nil, []FeedProvider{prov}, WithClock(func() time.Time { return fixedNow })).
		BuildReport(context.Background(), Location{})
	assert.ErrorIs(t, err, forecast.ErrMalformedEntry)

	lenient := forecast.NewAggregator(forecast.WithPolicy(forecast.SkipMalformed))
	report, err := NewService(lenient, []FeedProvider{prov}, WithClock(func() time.Time { return fixedNow })).
		BuildReport(context.Background(), Location{})
	require.NoError(t, err)
	assert.Len(t, report.Daily, 2)
}

func TestBuildReportEmptyFeed(t *testing.T) {
	prov := &stubProvider{name: "smhi"}
	report, err := NewService(nil, []FeedProvider{prov}).BuildReport(context.Background(), Location{})
	require.NoError(t, err)
	assert.Nil(t, report.Current)
	assert.Equal(t, forecast.SlotForecasts{}, report.Slots)
	assert.Empty(t, report.Daily)
}

func TestCoverage(t *testing.T) {
	prov := &stubProvider{name: "smhi", feed: testFeed()}
	rep, err := NewService(nil, []FeedProvider{prov}).Coverage(context.Background(), Location{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, "smhi", rep.Provider)
	assert.Equal(t, 5, rep.Coverage.Entries)
	assert.True(t, rep.Coverage.Ordered)
	assert.Len(t, rep.Coverage.Days, 3)
}

func TestLocationKey(t *testing.T) {
	loc := Location{Name: "Karlskrona", Lat: 56.16, Lon: 15.59}
	assert.Equal(t, "56.1600,15.5900", loc.Key())
	assert.Equal(t, "Karlskrona (56.1600,15.5900)", loc.String())
	assert.Equal(t, "0.0000,0.0000", Location{}.String())
}
