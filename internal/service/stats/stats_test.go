package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paysage-backend/internal/storage"
)

func logOn(date string, hours float64, crew []string, rate *float64) storage.WorkLog {
	d, _ := time.Parse("2006-01-02", date)
	return storage.WorkLog{
		ID:           date,
		Date:         d,
		Personnel:    crew,
		TimeTracking: &storage.TimeTracking{TotalHours: hours},
		HourlyRate:   rate,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestFilterByYear_PartitionsCollection(t *testing.T) {
	logs := []storage.WorkLog{
		logOn("2023-12-31", 2, nil, nil),
		logOn("2024-01-01", 3, nil, nil),
		logOn("2024-06-15", 4, nil, nil),
		logOn("2025-01-01", 1, nil, nil),
	}

	total := 0
	for _, year := range []int{2023, 2024, 2025} {
		subset := FilterByYear(logs, year)
		for _, l := range subset {
			assert.Equal(t, year, l.Date.Year())
		}
		total += len(subset)
	}

	// every log lands in exactly one year bucket
	assert.Equal(t, len(logs), total)
	assert.Empty(t, FilterByYear(logs, 2020))
}

func TestFilterByRange_ClosedInterval(t *testing.T) {
	logs := []storage.WorkLog{
		logOn("2024-03-01", 1, nil, nil),
		logOn("2024-03-15", 1, nil, nil),
		logOn("2024-03-31", 1, nil, nil),
		logOn("2024-04-01", 1, nil, nil),
	}

	from, _ := time.Parse("2006-01-02", "2024-03-01")
	to, _ := time.Parse("2006-01-02", "2024-03-31")

	got := FilterByRange(logs, from, to)
	assert.Len(t, got, 3, "both endpoints are inclusive")
}

func TestDayBoundaries_KeepLocation(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2024, 3, 10, 14, 45, 12, 0, loc)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), StartOfDay(ts))
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 0, loc), EndOfDay(ts))
}

func TestDerivedMetrics_MissingFieldsAreZeroNotErrors(t *testing.T) {
	empty := storage.WorkLog{Date: time.Now()}

	assert.Equal(t, 0.0, LogHours(empty))
	assert.Equal(t, 1, CrewSize(empty))
	assert.Equal(t, DefaultHourlyRate, Rate(empty))
	assert.Equal(t, 0.0, Revenue(empty))
	assert.Equal(t, 0.0, ConsumablesCost(empty))

	for _, v := range []float64{LogHours(empty), Revenue(empty), ProfitMargin(0, 0)} {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}

func TestRevenue_DefaultRateAndCrewFloor(t *testing.T) {
	// two workers, explicit rate
	a := logOn("2024-03-10", 4, []string{"Alice", "Bob"}, floatPtr(50))
	// no workers, default rate, crew floor of one
	b := logOn("2024-03-15", 2, nil, nil)

	assert.Equal(t, 400.0, Revenue(a))
	assert.Equal(t, 90.0, Revenue(b))
	assert.Equal(t, 490.0, TotalRevenue([]storage.WorkLog{a, b}))
}

func TestProfitMargin_ZeroRevenue(t *testing.T) {
	assert.Equal(t, 0.0, ProfitMargin(0, 120))
	assert.InDelta(t, 75.0, ProfitMargin(400, 100), 1e-9)
}

func TestCompletion_ZeroTargetIsZeroPercent(t *testing.T) {
	logs := []storage.WorkLog{
		logOn("2024-01-10", 3, nil, nil),
		logOn("2024-02-10", 3, nil, nil),
	}

	noTargets := storage.Project{ID: "p1"}
	assert.Equal(t, 0.0, CompletionByVisits(noTargets, logs))
	assert.Equal(t, 0.0, CompletionByHours(noTargets, logs))

	withTargets := storage.Project{ID: "p2", AnnualVisits: 10, AnnualTotalHours: 30}
	assert.InDelta(t, 20.0, CompletionByVisits(withTargets, logs), 1e-9)
	assert.InDelta(t, 20.0, CompletionByHours(withTargets, logs), 1e-9)
}

func TestConsumablesCost(t *testing.T) {
	l := storage.WorkLog{
		Consumables: []storage.Consumable{
			{Product: "Gazon", TotalPrice: 35.5},
			{Product: "Engrais", TotalPrice: 14.5},
		},
	}

	assert.Equal(t, 50.0, ConsumablesCost(l))
}

func TestComputeTotalHours(t *testing.T) {
	tests := []struct {
		name      string
		departure string
		end       string
		breakTime string
		want      float64
	}{
		{"full day with break", "08:00", "17:00", "01:00", 8},
		{"no break", "08:30", "12:30", "", 4},
		{"inverted times clamp to zero", "17:00", "08:00", "", 0},
		{"unparseable departure", "bogus", "17:00", "", 0},
		{"empty values", "", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeTotalHours(tt.departure, tt.end, tt.breakTime), 1e-9)
		})
	}
}

func TestComputeMonthlyStats_TwelveStableBuckets(t *testing.T) {
	logs := []storage.WorkLog{
		logOn("2024-03-10", 4, []string{"Alice", "Bob"}, floatPtr(50)),
		logOn("2024-03-15", 2, nil, nil),
		logOn("2024-11-02", 1, nil, nil),
	}

	monthly := ComputeMonthlyStats(logs)

	assert.Len(t, monthly, 12)
	assert.Equal(t, time.March, monthly[2].Month)
	assert.Equal(t, 2, monthly[2].VisitCount)
	assert.InDelta(t, 6.0, monthly[2].TotalHours, 1e-9)
	assert.InDelta(t, 490.0, monthly[2].Revenue, 1e-9)
	assert.Equal(t, 1, monthly[10].VisitCount)
	assert.Equal(t, 0, monthly[0].VisitCount)
}

func TestComputePersonnelStats_FullVisitHoursPerPerson(t *testing.T) {
	logs := []storage.WorkLog{
		logOn("2024-03-10", 4, []string{"Alice", "Bob"}, nil),
		logOn("2024-03-12", 3, []string{"Alice"}, nil),
	}

	got := ComputePersonnelStats(logs)

	assert.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].Name)
	assert.Equal(t, 2, got[0].VisitCount)
	assert.InDelta(t, 7.0, got[0].TotalHours, 1e-9)
	assert.Equal(t, "Bob", got[1].Name)
	assert.InDelta(t, 4.0, got[1].TotalHours, 1e-9)
}

func TestComputeTeamStats_ExplicitTeamWithProjectFallback(t *testing.T) {
	teamA := "team-a"
	teamB := "team-b"
	projectID := "p1"

	teams := []storage.Team{
		{ID: teamA, Name: "Espaces verts", Color: "#2f9e44"},
		{ID: teamB, Name: "Élagage", Color: "#e8590c"},
	}
	projects := []storage.Project{
		{ID: projectID, Name: "Résidence des Lilas", TeamID: &teamB},
	}

	withTeam := logOn("2024-05-02", 5, []string{"Alice"}, nil)
	withTeam.TeamID = &teamA

	viaProject := logOn("2024-05-03", 2, nil, nil)
	viaProject.ProjectID = &projectID

	orphan := logOn("2024-05-04", 9, nil, nil)

	got := ComputeTeamStats(teams, projects, []storage.WorkLog{withTeam, viaProject, orphan})

	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].VisitCount)
	assert.InDelta(t, 5.0, got[0].TotalHours, 1e-9)
	assert.Equal(t, 1, got[1].VisitCount)
	assert.InDelta(t, 2.0, got[1].TotalHours, 1e-9)
}

func TestComputeProjectStats(t *testing.T) {
	p := storage.Project{ID: "p1", Name: "Clos fleuri", AnnualVisits: 4, AnnualTotalHours: 12}

	invoiced := logOn("2024-04-01", 3, []string{"Alice"}, floatPtr(40))
	invoiced.Invoiced = true
	invoiced.Consumables = []storage.Consumable{{TotalPrice: 20}}

	pending := logOn("2024-05-01", 3, []string{"Alice"}, floatPtr(40))

	got := ComputeProjectStats(p, []storage.WorkLog{invoiced, pending})

	assert.Equal(t, 2, got.VisitCount)
	assert.InDelta(t, 6.0, got.TotalHours, 1e-9)
	assert.InDelta(t, 50.0, got.VisitCompletion, 1e-9)
	assert.InDelta(t, 50.0, got.HoursCompletion, 1e-9)
	assert.InDelta(t, 240.0, got.Revenue, 1e-9)
	assert.InDelta(t, 20.0, got.ConsumablesCost, 1e-9)
	assert.Equal(t, 1, got.PendingInvoices)
}
