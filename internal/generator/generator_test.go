package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/pkg/dateutil"
	"github.com/swisscx/customer-insights/pkg/stats"
)

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(1000, 42)
	require.NoError(t, err)
	b, err := Generate(1000, 42)
	require.NoError(t, err)

	require.Equal(t, len(a.Records), len(b.Records))
	for i := range a.Records {
		require.Equal(t, a.Records[i], b.Records[i], "record %d differs", i)
	}
	assert.Equal(t, a.Fingerprint, b.Fingerprint)

	c, err := Generate(1000, 43)
	require.NoError(t, err)
	assert.NotEqual(t, a.Spend(), c.Spend(), "different seeds should give different spend")
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
}

func TestGenerate_InvalidCount(t *testing.T) {
	for _, n := range []int{0, -1, -1000} {
		ds, err := Generate(n, 42)
		assert.Nil(t, ds)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestGenerate_InvalidYear(t *testing.T) {
	_, err := New(Options{Year: -5}).Generate(10, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGenerate_Identifiers(t *testing.T) {
	ds, err := Generate(250, 7)
	require.NoError(t, err)
	require.Len(t, ds.Records, 250)
	assert.Equal(t, 250, ds.Size)

	seen := make(map[string]bool, len(ds.Records))
	for i, r := range ds.Records {
		assert.Equal(t, fmt.Sprintf("CUST_%04d", i+1), r.CustomerID)
		assert.False(t, seen[r.CustomerID], "duplicate id %s", r.CustomerID)
		seen[r.CustomerID] = true
	}
}

func TestGenerate_Bounds(t *testing.T) {
	for _, year := range []int{2023, 2024} {
		t.Run(fmt.Sprintf("year_%d", year), func(t *testing.T) {
			ds, err := New(Options{Year: year}).Generate(1000, 42)
			require.NoError(t, err)
			assert.Equal(t, year, ds.Year)

			for _, r := range ds.Records {
				assert.GreaterOrEqual(t, r.Age, 18)
				assert.LessOrEqual(t, r.Age, 80)
				assert.GreaterOrEqual(t, r.TotalSpend, 0.5)
				assert.GreaterOrEqual(t, r.TotalPurchases, 1)
				assert.LessOrEqual(t, r.TotalPurchases, 20)
				assert.GreaterOrEqual(t, r.AvgSessionDuration, 0.5)
				assert.LessOrEqual(t, r.AvgSessionDuration, 35.0)
				assert.GreaterOrEqual(t, r.PageviewsPerSession, 2)
				assert.LessOrEqual(t, r.PageviewsPerSession, 25)
				assert.GreaterOrEqual(t, r.BounceRate, 0.01)
				assert.LessOrEqual(t, r.BounceRate, 0.8)
				assert.GreaterOrEqual(t, r.SupportTickets, 0)
				assert.LessOrEqual(t, r.SupportTickets, 8)

				assert.False(t, r.LastActivityDate.Before(r.SignupDate), "%s: activity before signup", r.CustomerID)
				assert.True(t, dateutil.InYear(r.SignupDate, year))
				assert.True(t, dateutil.InYear(r.LastActivityDate, year))

				if r.SatisfactionScore != nil {
					assert.GreaterOrEqual(t, *r.SatisfactionScore, 1.0)
					assert.LessOrEqual(t, *r.SatisfactionScore, 10.0)
				}
				assert.Contains(t, domain.Genders, r.Gender)
				assert.Contains(t, domain.Cities, r.City)
				assert.Contains(t, domain.SubscriptionTypes, r.SubscriptionType)
				assert.Contains(t, domain.DeviceTypes, r.DeviceType)
				assert.Contains(t, domain.AcquisitionSources, r.AcquisitionSource)
			}
		})
	}
}

func TestGenerate_MissingSatisfactionRate(t *testing.T) {
	ds, err := Generate(1000, 42)
	require.NoError(t, err)

	missing := 0
	for _, r := range ds.Records {
		if !r.HasSatisfaction() {
			missing++
		}
	}
	pct := float64(missing) / float64(len(ds.Records)) * 100
	assert.GreaterOrEqual(t, pct, 2.0)
	assert.LessOrEqual(t, pct, 8.0)
}

func TestGenerate_BasicDominatesLowerSpendHalf(t *testing.T) {
	ds, err := Generate(1000, 42)
	require.NoError(t, err)

	median := stats.Median(ds.Spend())
	counts := map[domain.SubscriptionType]int{}
	for _, r := range ds.Records {
		if r.TotalSpend <= median {
			counts[r.SubscriptionType]++
		}
	}
	for _, other := range []domain.SubscriptionType{domain.SubscriptionPremium, domain.SubscriptionEnterprise} {
		assert.Greater(t, counts[domain.SubscriptionBasic], counts[other], "Basic should outnumber %s below the median", other)
	}

	// the bottom quartile is Basic without exception
	q25, _, _ := stats.Quartiles(ds.Spend())
	for _, r := range ds.Records {
		if r.TotalSpend <= q25 {
			assert.Equal(t, domain.SubscriptionBasic, r.SubscriptionType, r.CustomerID)
		}
	}
}

func TestGenerate_SingleRecord(t *testing.T) {
	ds, err := Generate(1, 99)
	require.NoError(t, err)
	require.Len(t, ds.Records, 1)
	assert.Equal(t, "CUST_0001", ds.Records[0].CustomerID)
	assert.Equal(t, domain.SubscriptionBasic, ds.Records[0].SubscriptionType)
}

func TestGenerate_LogsEveryStep(t *testing.T) {
	rec := &recordingLogger{}
	_, err := New(Options{Logger: rec}).Generate(10, 1)
	require.NoError(t, err)
	assert.Len(t, rec.debug, len(Pipeline()))
	require.Len(t, rec.info, 1)
	assert.Contains(t, rec.info[0], "10 customers generated")
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint(1000, 42, 2023), Fingerprint(1000, 42, 2023))
	assert.NotEqual(t, Fingerprint(1000, 42, 2023), Fingerprint(1000, 42, 2024))
	assert.Len(t, Fingerprint(1, 1, 2023), 36)
}

// TestGenerate_SpendSumGolden pins the total_spend sum of generate(1000, 42).
func TestGenerate_SpendSumGolden(t *testing.T) {
	ds, err := Generate(1000, 42)
	require.NoError(t, err)

	sum := 0.0
	for _, v := range ds.Spend() {
		sum += v
	}
	got := fmt.Sprintf("%.6f\n", sum)

	goldenPath := filepath.Join("testdata", "spend_sum.golden")
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	if update {
		if err := os.WriteFile(goldenPath, []byte(got), 0644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}
	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Equal(t, string(data), got, "spend sum drifted; run UPDATE_GOLDEN=1 to accept")
}

type recordingLogger struct {
	NopLogger
	debug []string
	info  []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}
