package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Gender is the self-reported gender of a customer
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "Other"
)

// City is one of the Swiss cities the business operates in
type City string

const (
	CityZurich   City = "Zurich"
	CityGeneva   City = "Geneva"
	CityBasel    City = "Basel"
	CityBern     City = "Bern"
	CityLausanne City = "Lausanne"
	CityLucerne  City = "Lucerne"
)

// SubscriptionType is the plan a customer is subscribed to
type SubscriptionType string

const (
	SubscriptionBasic      SubscriptionType = "Basic"
	SubscriptionPremium    SubscriptionType = "Premium"
	SubscriptionEnterprise SubscriptionType = "Enterprise"
)

// DeviceType is the device a customer mostly shops from
type DeviceType string

const (
	DeviceMobile  DeviceType = "Mobile"
	DeviceDesktop DeviceType = "Desktop"
	DeviceTablet  DeviceType = "Tablet"
)

// AcquisitionSource is the channel through which a customer was acquired
type AcquisitionSource string

const (
	SourceOrganic     AcquisitionSource = "Organic"
	SourceSocialMedia AcquisitionSource = "Social Media"
	SourceEmail       AcquisitionSource = "Email"
	SourcePaidAds     AcquisitionSource = "Paid Ads"
	SourceReferral    AcquisitionSource = "Referral"
)

// Genders, Cities, etc. list the categorical domains in their canonical order.
var (
	Genders            = []Gender{GenderMale, GenderFemale, GenderOther}
	Cities             = []City{CityZurich, CityGeneva, CityBasel, CityBern, CityLausanne, CityLucerne}
	SubscriptionTypes  = []SubscriptionType{SubscriptionBasic, SubscriptionPremium, SubscriptionEnterprise}
	DeviceTypes        = []DeviceType{DeviceMobile, DeviceDesktop, DeviceTablet}
	AcquisitionSources = []AcquisitionSource{SourceOrganic, SourceSocialMedia, SourceEmail, SourcePaidAds, SourceReferral}
)

// Column names of the customer table, in export order.
const (
	ColCustomerID          = "customer_id"
	ColAge                 = "age"
	ColGender              = "gender"
	ColCity                = "city"
	ColSignupDate          = "signup_date"
	ColTotalPurchases      = "total_purchases"
	ColTotalSpend          = "total_spend"
	ColAvgSessionDuration  = "avg_session_duration"
	ColPageviewsPerSession = "pageviews_per_session"
	ColBounceRate          = "bounce_rate"
	ColLastActivityDate    = "last_activity_date"
	ColSubscriptionType    = "subscription_type"
	ColDeviceType          = "device_type"
	ColSatisfactionScore   = "satisfaction_score"
	ColSupportTickets      = "support_tickets"
	ColAcquisitionSource   = "acquisition_source"
)

// Columns is the ordered list of the 16 customer table columns.
var Columns = []string{
	ColCustomerID,
	ColAge,
	ColGender,
	ColCity,
	ColSignupDate,
	ColTotalPurchases,
	ColTotalSpend,
	ColAvgSessionDuration,
	ColPageviewsPerSession,
	ColBounceRate,
	ColLastActivityDate,
	ColSubscriptionType,
	ColDeviceType,
	ColSatisfactionScore,
	ColSupportTickets,
	ColAcquisitionSource,
}

// CustomerRecord is one row of the synthetic customer table
type CustomerRecord struct {
	CustomerID          string            `json:"customer_id"`
	Age                 int               `json:"age"`
	Gender              Gender            `json:"gender"`
	City                City              `json:"city"`
	SignupDate          time.Time         `json:"signup_date"`
	TotalPurchases      int               `json:"total_purchases"`
	TotalSpend          float64           `json:"total_spend"`          // CHF
	AvgSessionDuration  float64           `json:"avg_session_duration"` // minutes
	PageviewsPerSession int               `json:"pageviews_per_session"`
	BounceRate          float64           `json:"bounce_rate"`
	LastActivityDate    time.Time         `json:"last_activity_date"`
	SubscriptionType    SubscriptionType  `json:"subscription_type"`
	DeviceType          DeviceType        `json:"device_type"`
	SatisfactionScore   *float64          `json:"satisfaction_score"` // nil when the customer did not answer
	SupportTickets      int               `json:"support_tickets"`
	AcquisitionSource   AcquisitionSource `json:"acquisition_source"`
}

// HasSatisfaction reports whether the satisfaction score is present.
func (r CustomerRecord) HasSatisfaction() bool { return r.SatisfactionScore != nil }

// TenureDays returns the number of days between signup and last activity.
func (r CustomerRecord) TenureDays() int {
	return int(r.LastActivityDate.Sub(r.SignupDate).Hours() / 24)
}

// IsMissing reports whether the named column has no value for this record.
// Only satisfaction_score can be missing in generated data.
func (r CustomerRecord) IsMissing(column string) bool {
	switch column {
	case ColCustomerID:
		return r.CustomerID == ""
	case ColGender:
		return r.Gender == ""
	case ColCity:
		return r.City == ""
	case ColSignupDate:
		return r.SignupDate.IsZero()
	case ColLastActivityDate:
		return r.LastActivityDate.IsZero()
	case ColSubscriptionType:
		return r.SubscriptionType == ""
	case ColDeviceType:
		return r.DeviceType == ""
	case ColSatisfactionScore:
		return r.SatisfactionScore == nil
	case ColAcquisitionSource:
		return r.AcquisitionSource == ""
	default:
		return false
	}
}

// DateLayout is the textual form of signup and activity dates.
const DateLayout = "2006-01-02"

// FormatFloat renders a float in its shortest round-trip form.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Value renders one column of the record as text. Missing values render empty.
func (r CustomerRecord) Value(column string) string {
	switch column {
	case ColCustomerID:
		return r.CustomerID
	case ColAge:
		return strconv.Itoa(r.Age)
	case ColGender:
		return string(r.Gender)
	case ColCity:
		return string(r.City)
	case ColSignupDate:
		return r.SignupDate.Format(DateLayout)
	case ColTotalPurchases:
		return strconv.Itoa(r.TotalPurchases)
	case ColTotalSpend:
		return FormatFloat(r.TotalSpend)
	case ColAvgSessionDuration:
		return FormatFloat(r.AvgSessionDuration)
	case ColPageviewsPerSession:
		return strconv.Itoa(r.PageviewsPerSession)
	case ColBounceRate:
		return FormatFloat(r.BounceRate)
	case ColLastActivityDate:
		return r.LastActivityDate.Format(DateLayout)
	case ColSubscriptionType:
		return string(r.SubscriptionType)
	case ColDeviceType:
		return string(r.DeviceType)
	case ColSatisfactionScore:
		if r.SatisfactionScore == nil {
			return ""
		}
		return FormatFloat(*r.SatisfactionScore)
	case ColSupportTickets:
		return strconv.Itoa(r.SupportTickets)
	case ColAcquisitionSource:
		return string(r.AcquisitionSource)
	}
	return ""
}

// CustomerID formats the sequential identifier for the i-th customer (1-based).
func CustomerID(i int) string {
	return fmt.Sprintf("CUST_%04d", i)
}

// Dataset is the immutable customer table produced by one generation pass
type Dataset struct {
	Records     []CustomerRecord `json:"records"`
	Size        int              `json:"size"`
	Seed        int64            `json:"seed"`
	Year        int              `json:"year"`
	Fingerprint string           `json:"fingerprint"`
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Spend returns the total_spend column.
func (d *Dataset) Spend() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.TotalSpend
	}
	return out
}

// Ages returns the age column as floats.
func (d *Dataset) Ages() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = float64(r.Age)
	}
	return out
}

// Satisfaction returns the present satisfaction scores together with the
// matching spend values, skipping rows where the score is missing.
func (d *Dataset) Satisfaction() (scores, spend []float64) {
	for _, r := range d.Records {
		if r.SatisfactionScore == nil {
			continue
		}
		scores = append(scores, *r.SatisfactionScore)
		spend = append(spend, r.TotalSpend)
	}
	return scores, spend
}
