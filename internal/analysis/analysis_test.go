package analysis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/internal/generator"
)

func score(v float64) *float64 { return &v }

func day(m time.Month, d int) time.Time { return time.Date(2023, m, d, 0, 0, 0, 0, time.UTC) }

// fixture builds four customers with hand-checkable figures.
func fixture() *domain.Dataset {
	return &domain.Dataset{Year: 2023, Records: []domain.CustomerRecord{
		{
			CustomerID: "CUST_0001", Age: 22, Gender: domain.GenderFemale, City: domain.CityZurich,
			SignupDate: day(1, 1), LastActivityDate: day(1, 11), TotalPurchases: 2, TotalSpend: 100,
			BounceRate: 0.2, SubscriptionType: domain.SubscriptionBasic, DeviceType: domain.DeviceMobile,
			SatisfactionScore: score(9), SupportTickets: 0, AcquisitionSource: domain.SourceOrganic,
		},
		{
			CustomerID: "CUST_0002", Age: 40, Gender: domain.GenderMale, City: domain.CityZurich,
			SignupDate: day(2, 1), LastActivityDate: day(12, 15), TotalPurchases: 8, TotalSpend: 300,
			BounceRate: 0.4, SubscriptionType: domain.SubscriptionPremium, DeviceType: domain.DeviceDesktop,
			SatisfactionScore: score(7), SupportTickets: 1, AcquisitionSource: domain.SourceEmail,
		},
		{
			CustomerID: "CUST_0003", Age: 55, Gender: domain.GenderFemale, City: domain.CityGeneva,
			SignupDate: day(3, 1), LastActivityDate: day(3, 21), TotalPurchases: 12, TotalSpend: 700,
			BounceRate: 0.1, SubscriptionType: domain.SubscriptionEnterprise, DeviceType: domain.DeviceMobile,
			SatisfactionScore: score(3), SupportTickets: 4, AcquisitionSource: domain.SourceReferral,
		},
		{
			CustomerID: "CUST_0004", Age: 70, Gender: domain.GenderOther, City: domain.CityBasel,
			SignupDate: day(4, 1), LastActivityDate: day(5, 1), TotalPurchases: 18, TotalSpend: 1200,
			BounceRate: 0.3, SubscriptionType: domain.SubscriptionEnterprise, DeviceType: domain.DeviceTablet,
			SatisfactionScore: nil, SupportTickets: 5, AcquisitionSource: domain.SourceReferral,
		},
	}}
}

func TestAnalyze_Empty(t *testing.T) {
	_, err := Analyze(&domain.Dataset{}, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyDataset)
	_, err = Analyze(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestAnalyze_InvalidSegments(t *testing.T) {
	opts := DefaultOptions()
	opts.SpendSegments = domain.SegmentScheme{Edges: []float64{0, 10}, Labels: []string{"a", "b"}}
	_, err := Analyze(fixture(), opts)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	an, err := Analyze(fixture(), DefaultOptions())
	require.NoError(t, err)
	s := an.Summary

	assert.Equal(t, 4, s.Customers)
	assert.True(t, s.TotalRevenue.Equal(decimal.NewFromInt(2300)), s.TotalRevenue.String())
	assert.True(t, s.AverageCLV.Equal(decimal.NewFromInt(575)), s.AverageCLV.String())
	assert.True(t, s.MedianSpend.Equal(decimal.NewFromInt(500)), s.MedianSpend.String())
	// only CUST_0002 was active on or after 2023-12-01
	assert.Equal(t, 3, s.ChurnedCustomers)
	assert.InDelta(t, 75.0, s.ChurnRate, 1e-9)
	assert.InDelta(t, 19.0/3.0, s.AverageSatisfaction, 1e-9)
	assert.InDelta(t, (10+317+20+30)/4.0, s.AverageTenureDays, 1e-9)
	assert.InDelta(t, 25.0, s.AverageBounceRate, 1e-9)
}

func TestSummarize_CustomCutoff(t *testing.T) {
	opts := DefaultOptions()
	opts.ChurnCutoff = day(3, 1)
	an, err := Analyze(fixture(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, an.Summary.ChurnedCustomers)
	assert.True(t, an.Summary.ChurnCutoff.Equal(day(3, 1)))
}

func TestDescribe(t *testing.T) {
	an, err := Analyze(fixture(), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, an.Describe, len(NumericColumns))

	spend, ok := an.ColumnStats(domain.ColTotalSpend)
	require.True(t, ok)
	assert.Equal(t, 4, spend.Count)
	assert.InDelta(t, 575.0, spend.Mean, 1e-9)
	assert.InDelta(t, 485.6267, spend.Std, 1e-3)
	assert.Equal(t, 100.0, spend.Min)
	assert.InDelta(t, 250.0, spend.P25, 1e-9)
	assert.InDelta(t, 500.0, spend.P50, 1e-9)
	assert.InDelta(t, 825.0, spend.P75, 1e-9)
	assert.Equal(t, 1200.0, spend.Max)

	sat, ok := an.ColumnStats(domain.ColSatisfactionScore)
	require.True(t, ok)
	assert.Equal(t, 3, sat.Count)
}

func TestDescribe_SingleValueHasZeroStd(t *testing.T) {
	stats := Describe(fixture().Records[:1])
	for _, cs := range stats {
		assert.Zero(t, cs.Std, cs.Column)
	}
}

func TestDistributions(t *testing.T) {
	an, err := Analyze(fixture(), DefaultOptions())
	require.NoError(t, err)

	city, ok := an.Distribution(domain.ColCity)
	require.True(t, ok)
	top, ok := city.Top()
	require.True(t, ok)
	assert.Equal(t, "Zurich", top.Label)
	assert.Equal(t, 2, top.Count)
	assert.InDelta(t, 50.0, top.Percent, 1e-9)
	// ties are ordered by label
	assert.Equal(t, "Basel", city.Shares[1].Label)
	assert.Equal(t, "Geneva", city.Shares[2].Label)

	gender, _ := an.Distribution(domain.ColGender)
	f, ok := gender.Share("F")
	require.True(t, ok)
	assert.Equal(t, 2, f.Count)
}

func TestSpendBy(t *testing.T) {
	an, err := Analyze(fixture(), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, an.SpendByCity, 3)
	assert.Equal(t, "Basel", an.SpendByCity[0].Group)
	assert.Equal(t, "Zurich", an.SpendByCity[2].Group)
	assert.True(t, an.SpendByCity[2].Mean.Equal(decimal.NewFromInt(200)))
	assert.True(t, an.SpendByCity[2].Sum.Equal(decimal.NewFromInt(400)))

	mean, ok := MeanOf(an.SpendBySource, "Referral")
	require.True(t, ok)
	assert.True(t, mean.Equal(decimal.NewFromInt(950)))
}

func TestSpendBy_EqualMeansOrderedByGroup(t *testing.T) {
	records := []domain.CustomerRecord{
		{City: domain.CityZurich, TotalSpend: 120.10},
		{City: domain.CityGeneva, TotalSpend: 80},
		{City: domain.CityBasel, TotalSpend: 100},
		{City: domain.CityBasel, TotalSpend: 140.20},
		{City: domain.CityZurich, TotalSpend: 120.10},
	}
	groups := SpendBy(records, func(r domain.CustomerRecord) string { return string(r.City) })
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"Basel", "Zurich", "Geneva"}, []string{groups[0].Group, groups[1].Group, groups[2].Group})
	assert.True(t, groups[0].Mean.Equal(groups[1].Mean))
}

func TestSegments(t *testing.T) {
	an, err := Analyze(fixture(), DefaultOptions())
	require.NoError(t, err)

	labels := []string{}
	counts := []int{}
	for _, s := range an.SpendSegments.Shares {
		labels = append(labels, s.Label)
		counts = append(counts, s.Count)
	}
	assert.Equal(t, []string{"Low", "Medium", "High", "VIP"}, labels)
	assert.Equal(t, []int{1, 1, 1, 1}, counts)

	ages := map[string]int{}
	for _, s := range an.AgeSegments.Shares {
		ages[s.Label] = s.Count
	}
	assert.Equal(t, map[string]int{"18-25": 1, "26-35": 0, "36-50": 1, "51-65": 1, "65+": 1}, ages)
}

func TestSatisfaction(t *testing.T) {
	an, err := Analyze(fixture(), DefaultOptions())
	require.NoError(t, err)
	s := an.Satisfaction

	assert.Equal(t, 3, s.Respondents)
	assert.Equal(t, 7.0, s.Median)
	assert.Equal(t, 1, s.Satisfied)
	assert.Equal(t, 1, s.Dissatisfied)
	assert.InDelta(t, 100.0/3.0, s.SatisfiedPercent, 1e-9)
}

func TestSpendSatisfactionTrend(t *testing.T) {
	records := []domain.CustomerRecord{
		{TotalSpend: 100, SatisfactionScore: score(2)},
		{TotalSpend: 200, SatisfactionScore: score(4)},
		{TotalSpend: 300, SatisfactionScore: score(6)},
		{TotalSpend: 400},
	}
	tr := SpendSatisfactionTrend(records)
	assert.Equal(t, 3, tr.Points)
	assert.InDelta(t, 1.0, tr.Correlation, 1e-9)
	assert.InDelta(t, 0.02, tr.Slope, 1e-12)
	assert.InDelta(t, 0.0, tr.Intercept, 1e-9)
	assert.InDelta(t, 5.0, tr.At(250), 1e-9)

	flat := SpendSatisfactionTrend(records[:1])
	assert.Equal(t, domain.Trend{Points: 1}, flat)
}

func TestInsights(t *testing.T) {
	an, err := Analyze(fixture(), DefaultOptions())
	require.NoError(t, err)
	in := an.Insights

	assert.Equal(t, "Basel", in.ChampionCity.Group)
	assert.Equal(t, "Referral", in.BestSource.Group)
	assert.Equal(t, "Enterprise", in.BestSubscription.Group)
	// CUST_0001: satisfied, Low band
	assert.Equal(t, 1, in.UpsellCandidates)
	// CUST_0003 (dissatisfied, 4 tickets) and CUST_0004 (no answer, 5 tickets), both churned
	assert.Equal(t, 2, in.AtRiskCustomers)
	// CUST_0003 is High and dissatisfied
	assert.Equal(t, 1, in.HighValueDissatisfied)
}

func TestAnalyze_GeneratedDataset(t *testing.T) {
	ds, err := generator.Generate(1000, 42)
	require.NoError(t, err)
	an, err := Analyze(ds, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 1000, an.Summary.Customers)
	total := 0
	for _, s := range an.SpendSegments.Shares {
		total += s.Count
	}
	assert.Equal(t, 1000, total)

	sub, ok := an.Distribution(domain.ColSubscriptionType)
	require.True(t, ok)
	assert.Len(t, sub.Shares, 3)
	assert.Greater(t, an.SpendSatisfaction.Points, 900)
}

func TestOptionsFromSettings(t *testing.T) {
	opts := OptionsFromSettings(domain.AnalysisSettings{AtRiskTicketThreshold: 5})
	assert.Equal(t, 5, opts.AtRiskTicketThreshold)
	assert.Equal(t, domain.DefaultSatisfiedThreshold, opts.SatisfiedThreshold)
	assert.True(t, opts.ChurnCutoff.Equal(domain.DefaultChurnCutoff()))
}
