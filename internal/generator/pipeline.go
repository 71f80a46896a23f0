package generator

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/pkg/dateutil"
	"github.com/swisscx/customer-insights/pkg/stats"
)

// Fixed weights of the categorical draws, aligned with the domain slices.
var (
	genderWeights = []float64{0.4, 0.5, 0.1}
	deviceWeights = []float64{0.6, 0.3, 0.1}
	sourceWeights = []float64{0.30, 0.25, 0.20, 0.15, 0.10}

	midLowTiers   = []domain.SubscriptionType{domain.SubscriptionBasic, domain.SubscriptionPremium}
	midLowWeights = []float64{0.4, 0.6}
	upperTiers    = []domain.SubscriptionType{domain.SubscriptionPremium, domain.SubscriptionEnterprise}
	midHighWeight = []float64{0.7, 0.3}
	topWeights    = []float64{0.3, 0.7}
)

// Bounds applied to the generated columns. Out-of-range draws are clipped.
const (
	MinAge, MaxAge             = 18, 80
	MinPurchases, MaxPurchases = 1, 20
	MinSpend                   = 0.5
	MinSession, MaxSession     = 0.5, 35.0
	MinPageviews, MaxPageviews = 2, 25
	MinBounce, MaxBounce       = 0.01, 0.8
	MinSatisfaction            = 1.0
	MaxSatisfaction            = 10.0
	MinTickets, MaxTickets     = 0, 8
	MissingSatisfactionRate    = 0.05
)

// columns is the partially built table threaded through the pipeline.
// Each step reads earlier columns and fills exactly one new one.
type columns struct {
	n    int
	year int

	ages           []int
	genders        []domain.Gender
	cities         []domain.City
	signupOffsets  []int
	ageFactors     []float64
	purchases      []int
	spend          []float64
	sessions       []float64
	pageviews      []int
	bounce         []float64
	activityDelays []int
	subscriptions  []domain.SubscriptionType
	devices        []domain.DeviceType
	satisfaction   []*float64
	tickets        []int
	sources        []domain.AcquisitionSource

	records []domain.CustomerRecord
}

func newColumns(n, year int) *columns {
	return &columns{n: n, year: year}
}

// Step is one named stage of the generation pipeline.
type Step struct {
	Name string
	Run  func(c *columns, s *Streams)
}

// Pipeline returns the generation steps in their fixed draw order. Reordering
// them changes every downstream value for a given seed.
func Pipeline() []Step {
	return []Step{
		{"ages", drawAges},
		{"genders", drawGenders},
		{"cities", drawCities},
		{"signup_dates", drawSignupDates},
		{"age_factor", computeAgeFactor},
		{"total_purchases", drawPurchases},
		{"total_spend", drawSpend},
		{"avg_session_duration", drawSessions},
		{"pageviews_per_session", drawPageviews},
		{"bounce_rate", drawBounce},
		{"last_activity_date", drawLastActivity},
		{"subscription_type", assignSubscriptions},
		{"device_type", drawDevices},
		{"satisfaction_score", drawSatisfaction},
		{"support_tickets", drawTickets},
		{"acquisition_source", drawSources},
		{"assemble", assemble},
	}
}

func drawAges(c *columns, s *Streams) {
	c.ages = make([]int, c.n)
	for i := range c.ages {
		// truncation toward zero before clipping
		c.ages[i] = stats.ClampInt(int(normal(s.Continuous, 45, 15)), MinAge, MaxAge)
	}
}

func drawGenders(c *columns, s *Streams) {
	c.genders = make([]domain.Gender, c.n)
	for i := range c.genders {
		c.genders[i] = choose(s.Continuous, domain.Genders, genderWeights)
	}
}

func drawCities(c *columns, s *Streams) {
	c.cities = make([]domain.City, c.n)
	for i := range c.cities {
		c.cities[i] = uniformChoice(s.Continuous, domain.Cities)
	}
}

func drawSignupDates(c *columns, s *Streams) {
	last := dateutil.DaysInYear(c.year) - 1
	c.signupOffsets = make([]int, c.n)
	for i := range c.signupOffsets {
		c.signupOffsets[i] = intBetween(s.General, 0, last)
	}
}

// computeAgeFactor standardizes ages with the population standard deviation.
// A constant age column yields a zero factor for every record.
func computeAgeFactor(c *columns, _ *Streams) {
	ages := make([]float64, c.n)
	for i, a := range c.ages {
		ages[i] = float64(a)
	}
	mean, std := stat.PopMeanStdDev(ages, nil)
	c.ageFactors = make([]float64, c.n)
	if std == 0 || math.IsNaN(std) {
		return
	}
	for i, a := range ages {
		c.ageFactors[i] = (a - mean) / std
	}
}

func drawPurchases(c *columns, s *Streams) {
	base := make([]int, c.n)
	for i := range base {
		base[i] = poisson(s.Continuous, 5)
	}
	extra := make([]int, c.n)
	for i := range extra {
		extra[i] = poisson(s.Continuous, 2)
	}
	c.purchases = make([]int, c.n)
	for i := range c.purchases {
		v := float64(base[i]) + float64(extra[i])*(1+0.1*c.ageFactors[i])
		c.purchases[i] = int(stats.Clamp(v, MinPurchases, MaxPurchases))
	}
}

func drawSpend(c *columns, s *Streams) {
	c.spend = make([]float64, c.n)
	for i := range c.spend {
		v := 50 + 30*float64(c.purchases[i]) + 2*float64(c.ages[i]) + normal(s.Continuous, 0, 50)
		c.spend[i] = math.Max(v, MinSpend)
	}
}

func drawSessions(c *columns, s *Streams) {
	c.sessions = make([]float64, c.n)
	for i := range c.sessions {
		c.sessions[i] = stats.Clamp(exponential(s.Continuous, 10)+5, MinSession, MaxSession)
	}
}

func drawPageviews(c *columns, s *Streams) {
	first := make([]int, c.n)
	for i := range first {
		first[i] = poisson(s.Continuous, 8)
	}
	c.pageviews = make([]int, c.n)
	for i := range c.pageviews {
		c.pageviews[i] = stats.ClampInt(first[i]+poisson(s.Continuous, 3), MinPageviews, MaxPageviews)
	}
}

// drawBounce scales a Beta(2,5) draw down for longer sessions so bounce
// rate falls as engagement rises.
func drawBounce(c *columns, s *Streams) {
	longest := stats.Max(c.sessions)
	c.bounce = make([]float64, c.n)
	for i := range c.bounce {
		v := beta(s.Continuous, 2, 5) * (1 - 0.3*(c.sessions[i]/longest))
		c.bounce[i] = stats.Clamp(v, MinBounce, MaxBounce)
	}
}

func drawLastActivity(c *columns, s *Streams) {
	last := dateutil.DaysInYear(c.year) - 1
	c.activityDelays = make([]int, c.n)
	for i := range c.activityDelays {
		c.activityDelays[i] = intBetween(s.General, 0, last-c.signupOffsets[i])
	}
}

// assignSubscriptions ties plan choice to spend quartiles. The bottom
// quartile is always Basic and consumes no draw.
func assignSubscriptions(c *columns, s *Streams) {
	q25, q50, q75 := stats.Quartiles(c.spend)
	c.subscriptions = make([]domain.SubscriptionType, c.n)
	for i, v := range c.spend {
		switch {
		case v <= q25:
			c.subscriptions[i] = domain.SubscriptionBasic
		case v <= q50:
			c.subscriptions[i] = choose(s.Continuous, midLowTiers, midLowWeights)
		case v <= q75:
			c.subscriptions[i] = choose(s.Continuous, upperTiers, midHighWeight)
		default:
			c.subscriptions[i] = choose(s.Continuous, upperTiers, topWeights)
		}
	}
}

func drawDevices(c *columns, s *Streams) {
	c.devices = make([]domain.DeviceType, c.n)
	for i := range c.devices {
		c.devices[i] = choose(s.Continuous, domain.DeviceTypes, deviceWeights)
	}
}

// drawSatisfaction flips the missing coin on the general stream first and
// only draws the score for respondents.
func drawSatisfaction(c *columns, s *Streams) {
	top := stats.Max(c.spend)
	c.satisfaction = make([]*float64, c.n)
	for i := range c.satisfaction {
		if s.General.Float64() < MissingSatisfactionRate {
			continue
		}
		v := stats.Clamp(5+0.5*(c.spend[i]/top)+normal(s.Continuous, 0, 1.5), MinSatisfaction, MaxSatisfaction)
		c.satisfaction[i] = &v
	}
}

func drawTickets(c *columns, s *Streams) {
	c.tickets = make([]int, c.n)
	for i := range c.tickets {
		base := poisson(s.Continuous, 1)
		factor := 0.5
		if sat := c.satisfaction[i]; sat != nil {
			factor = math.Max(0, 6-*sat) / 5
		}
		total := base + int(float64(c.purchases[i])*0.1) + int(factor*2)
		c.tickets[i] = stats.ClampInt(total, MinTickets, MaxTickets)
	}
}

func drawSources(c *columns, s *Streams) {
	c.sources = make([]domain.AcquisitionSource, c.n)
	for i := range c.sources {
		c.sources[i] = choose(s.Continuous, domain.AcquisitionSources, sourceWeights)
	}
}

func assemble(c *columns, _ *Streams) {
	c.records = make([]domain.CustomerRecord, c.n)
	for i := range c.records {
		signup := dateutil.DayOfYear(c.year, c.signupOffsets[i])
		c.records[i] = domain.CustomerRecord{
			CustomerID:          domain.CustomerID(i + 1),
			Age:                 c.ages[i],
			Gender:              c.genders[i],
			City:                c.cities[i],
			SignupDate:          signup,
			TotalPurchases:      c.purchases[i],
			TotalSpend:          c.spend[i],
			AvgSessionDuration:  c.sessions[i],
			PageviewsPerSession: c.pageviews[i],
			BounceRate:          c.bounce[i],
			LastActivityDate:    signup.AddDate(0, 0, c.activityDelays[i]),
			SubscriptionType:    c.subscriptions[i],
			DeviceType:          c.devices[i],
			SatisfactionScore:   c.satisfaction[i],
			SupportTickets:      c.tickets[i],
			AcquisitionSource:   c.sources[i],
		}
	}
}
