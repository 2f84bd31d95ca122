package service

import (
	"fmt"
	"testing"

	"contractguard-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findDeviation(deviations []models.Deviation, category string) (models.Deviation, bool) {
	for _, d := range deviations {
		if d.Category == category {
			return d, true
		}
	}
	return models.Deviation{}, false
}

func TestPaymentVendorCriticalTier(t *testing.T) {
	d := NewDeviationChecker(true)
	text := "Payment shall be made within 120 days of receipt of the invoice."
	cctx := models.ContractContext{ContractType: models.ContractVendor}

	dev, ok := findDeviation(d.Check(text, cctx), CategoryPayment)

	require.True(t, ok)
	assert.Equal(t, models.DeviationExtreme, dev.DeviationLevel)
	assert.Equal(t, "Net 120 days", dev.FoundInContract)
	assert.Equal(t, "Payment within 45 days", dev.FairStandard)
}

func TestPaymentVendorBaselineIsLooser(t *testing.T) {
	d := NewDeviationChecker(true)
	text := "Payment shall be made within 50 days of receipt of the invoice."

	// 50 days is a deviation for freelance work but within vendor norms
	_, freelance := findDeviation(d.Check(text, models.ContractContext{ContractType: models.ContractFreelance}), CategoryPayment)
	_, vendor := findDeviation(d.Check(text, models.ContractContext{ContractType: models.ContractVendor}), CategoryPayment)

	assert.True(t, freelance)
	assert.False(t, vendor)
}

func TestPaymentTiersMonotonic(t *testing.T) {
	d := NewDeviationChecker(true)
	cctx := models.ContractContext{ContractType: models.ContractFreelance}

	cases := []struct {
		days  int
		level models.DeviationLevel
	}{
		{45, models.DeviationMinor},
		{59, models.DeviationMinor},
		{60, models.DeviationSignificant},
		{89, models.DeviationSignificant},
		{90, models.DeviationExtreme},
	}
	for _, tc := range cases {
		text := fmt.Sprintf("Payment shall be made within %d days of completion.", tc.days)
		dev, ok := findDeviation(d.Check(text, cctx), CategoryPayment)
		require.True(t, ok, "days=%d", tc.days)
		assert.Equal(t, tc.level, dev.DeviationLevel, "days=%d", tc.days)
	}

	// Below the warning tier there is no deviation at all
	_, ok := findDeviation(d.Check("Payment shall be made within 30 days of completion.", cctx), CategoryPayment)
	assert.False(t, ok)
}

func TestNoticeImmediateTermination(t *testing.T) {
	d := NewDeviationChecker(true)
	text := "The Client may terminate this Agreement at any time without notice to the Contractor."

	dev, ok := findDeviation(d.Check(text, models.ContractContext{}), CategoryNotice)

	require.True(t, ok)
	assert.Equal(t, models.DeviationExtreme, dev.DeviationLevel)
	assert.Equal(t, "Immediate termination without notice", dev.FoundInContract)
}

func TestNoticeWithoutNoticeNeedsTerminationContext(t *testing.T) {
	d := NewDeviationChecker(true)
	// "without notice" far from any termination language must not trip
	text := "All notices shall be delivered by courier. Invoices submitted without notice periods attached are still valid."

	_, ok := findDeviation(d.Check(text, models.ContractContext{}), CategoryNotice)

	assert.False(t, ok)
}

func TestNoticeShortPeriodForFreelancer(t *testing.T) {
	d := NewDeviationChecker(true)
	cctx := models.ContractContext{ContractType: models.ContractFreelance}

	dev, ok := findDeviation(d.Check("Either party may terminate this Agreement upon 10 days' notice.", cctx), CategoryNotice)
	require.True(t, ok)
	assert.Equal(t, models.DeviationSignificant, dev.DeviationLevel)

	_, ok = findDeviation(d.Check("Either party may terminate this Agreement upon 30 days' notice.", cctx), CategoryNotice)
	assert.False(t, ok)
}

func TestNoticeLongPeriodForEmployee(t *testing.T) {
	d := NewDeviationChecker(true)
	cctx := models.ContractContext{ContractType: models.ContractEmployment}

	// Direction flips for employment: long lock-in is the problem
	dev, ok := findDeviation(d.Check("The Employee may resign by giving 120 days notice in writing.", cctx), CategoryNotice)
	require.True(t, ok)
	assert.Equal(t, models.DeviationExtreme, dev.DeviationLevel)

	_, ok = findDeviation(d.Check("The Employee may resign by giving 30 days notice in writing.", cctx), CategoryNotice)
	assert.False(t, ok)
}

func TestLiabilityUnlimited(t *testing.T) {
	d := NewDeviationChecker(true)
	text := "The Contractor's liability shall be unlimited in respect of all claims arising under this Agreement."

	dev, ok := findDeviation(d.Check(text, models.ContractContext{}), CategoryLiability)

	require.True(t, ok)
	assert.Equal(t, models.DeviationExtreme, dev.DeviationLevel)
}

func TestLiabilityMultiplierTiers(t *testing.T) {
	d := NewDeviationChecker(true)

	// 2x is significant for freelance, within norms for vendor
	text := "Liability is capped at 2 times the contract value."
	dev, ok := findDeviation(d.Check(text, models.ContractContext{ContractType: models.ContractFreelance}), CategoryLiability)
	require.True(t, ok)
	assert.Equal(t, models.DeviationSignificant, dev.DeviationLevel)

	_, ok = findDeviation(d.Check(text, models.ContractContext{ContractType: models.ContractVendor}), CategoryLiability)
	assert.False(t, ok)

	// 5x is extreme for every context
	text = "Liability is capped at 5 times the contract value."
	dev, ok = findDeviation(d.Check(text, models.ContractContext{ContractType: models.ContractVendor}), CategoryLiability)
	require.True(t, ok)
	assert.Equal(t, models.DeviationExtreme, dev.DeviationLevel)
}

func TestWorkingHoursRoundTheClock(t *testing.T) {
	d := NewDeviationChecker(true)
	text := "The Consultant shall be available 24/7 to respond to production incidents."

	dev, ok := findDeviation(d.Check(text, models.ContractContext{}), CategoryWorkingHours)

	require.True(t, ok)
	assert.Equal(t, models.DeviationExtreme, dev.DeviationLevel)
}

func TestWorkingHoursWeeklyTiers(t *testing.T) {
	d := NewDeviationChecker(true)

	cases := []struct {
		hours int
		level models.DeviationLevel
	}{
		{45, models.DeviationMinor},
		{55, models.DeviationSignificant},
		{70, models.DeviationExtreme},
	}
	for _, tc := range cases {
		text := fmt.Sprintf("The Contractor shall work %d hours per week.", tc.hours)
		dev, ok := findDeviation(d.Check(text, models.ContractContext{}), CategoryWorkingHours)
		require.True(t, ok, "hours=%d", tc.hours)
		assert.Equal(t, tc.level, dev.DeviationLevel, "hours=%d", tc.hours)
	}

	_, ok := findDeviation(d.Check("The Contractor shall work 40 hours per week.", models.ContractContext{}), CategoryWorkingHours)
	assert.False(t, ok)
}

func TestConfidentialityPerpetual(t *testing.T) {
	d := NewDeviationChecker(true)
	text := "The Contractor shall keep all Confidential Information confidential in perpetuity."

	dev, ok := findDeviation(d.Check(text, models.ContractContext{}), CategoryConfidentiality)

	require.True(t, ok)
	assert.Equal(t, models.DeviationExtreme, dev.DeviationLevel)
	assert.Equal(t, "Perpetual confidentiality obligation", dev.FoundInContract)
}

func TestConfidentialityExplicitYearsSuppressPerpetual(t *testing.T) {
	d := NewDeviationChecker(true)
	// An explicit duration near the confidentiality context overrides the
	// perpetual reading; 3 years is within the fair range.
	text := "Confidential Information shall be held indefinitely secure, with the confidentiality obligation lasting 3 years from disclosure."

	_, ok := findDeviation(d.Check(text, models.ContractContext{}), CategoryConfidentiality)

	assert.False(t, ok)
}

func TestConfidentialityLongPeriod(t *testing.T) {
	d := NewDeviationChecker(true)
	text := "The non-disclosure obligations in this Agreement shall survive for 7 years after termination."

	dev, ok := findDeviation(d.Check(text, models.ContractContext{}), CategoryConfidentiality)

	require.True(t, ok)
	assert.Equal(t, models.DeviationSignificant, dev.DeviationLevel)
	assert.Equal(t, "7 year confidentiality period", dev.FoundInContract)
}

func TestConfidentialityYearsNeedContext(t *testing.T) {
	d := NewDeviationChecker(true)
	// A year-count with no confidentiality language nearby is not a
	// confidentiality deviation
	text := "The project is expected to run for 7 years across multiple phases."

	_, ok := findDeviation(d.Check(text, models.ContractContext{}), CategoryConfidentiality)

	assert.False(t, ok)
}

func TestJurisdictionForeignForum(t *testing.T) {
	d := NewDeviationChecker(true)
	text := "Any dispute shall be subject to the exclusive jurisdiction of the courts of Singapore."

	dev, ok := findDeviation(d.Check(text, models.ContractContext{}), CategoryJurisdiction)

	require.True(t, ok)
	assert.Equal(t, models.DeviationSignificant, dev.DeviationLevel)
	assert.Contains(t, dev.FoundInContract, "Singapore")
}

func TestJurisdictionAllForumsSameSeverity(t *testing.T) {
	d := NewDeviationChecker(true)

	texts := []string{
		"This Agreement is governed by the laws of the State of Delaware.",
		"Disputes shall be resolved in the courts of New York.",
		"This Agreement shall be construed under the laws of England.",
	}
	for _, text := range texts {
		dev, ok := findDeviation(d.Check(text, models.ContractContext{}), CategoryJurisdiction)
		require.True(t, ok, text)
		assert.Equal(t, models.DeviationSignificant, dev.DeviationLevel, text)
	}
}

func TestRestraintDurationTiers(t *testing.T) {
	d := NewDeviationChecker(true)

	dev, ok := findDeviation(d.Check("The Contractor shall not compete with the Client for 3 years after termination.", models.ContractContext{}), CategoryRestraint)
	require.True(t, ok)
	assert.Equal(t, models.DeviationSignificant, dev.DeviationLevel)

	dev, ok = findDeviation(d.Check("The Contractor shall not compete with the Client for 6 years after termination.", models.ContractContext{}), CategoryRestraint)
	require.True(t, ok)
	assert.Equal(t, models.DeviationExtreme, dev.DeviationLevel)
}

func TestRestraintBlanketNoDuration(t *testing.T) {
	d := NewDeviationChecker(true)
	text := "Following termination the Contractor shall not engage in any competing business."

	dev, ok := findDeviation(d.Check(text, models.ContractContext{}), CategoryRestraint)

	require.True(t, ok)
	assert.Equal(t, models.DeviationExtreme, dev.DeviationLevel)
}

func TestRestraintOnlyInEnhancedMode(t *testing.T) {
	text := "The Contractor shall not compete with the Client for 3 years after termination."

	_, enhanced := findDeviation(NewDeviationChecker(true).Check(text, models.ContractContext{}), CategoryRestraint)
	_, legacy := findDeviation(NewDeviationChecker(false).Check(text, models.ContractContext{}), CategoryRestraint)

	assert.True(t, enhanced)
	assert.False(t, legacy)
}

func TestOneDeviationPerCategory(t *testing.T) {
	d := NewDeviationChecker(true)
	// Two payment phrasings in the same contract still yield one payment
	// deviation (first extraction wins)
	text := "Payment shall be made within 90 days of delivery. Residual amounts are due 120 days after receipt of the invoice."

	deviations := d.Check(text, models.ContractContext{ContractType: models.ContractFreelance})

	count := 0
	for _, dev := range deviations {
		if dev.Category == CategoryPayment {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCleanContractHasNoDeviations(t *testing.T) {
	d := NewDeviationChecker(true)
	text := "Payment shall be made within 30 days of invoice. Either party may terminate this Agreement upon 30 days' notice. Liability is capped at 1 times the contract value. Confidentiality obligations last 2 years. Disputes are subject to the courts of Mumbai, India."

	assert.Empty(t, d.Check(text, models.ContractContext{ContractType: models.ContractFreelance}))
}
