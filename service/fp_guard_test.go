package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardVetoesPaymentConditionedIPAssignment(t *testing.T) {
	g := NewFalsePositiveGuard()

	clause := "Upon full payment of all invoices, the Contractor shall assign all rights in the deliverables to the Client."

	assert.True(t, g.Vetoes("uncompensated_ip_transfer", clause))
}

func TestGuardKeepsUnconditionalIPAssignment(t *testing.T) {
	g := NewFalsePositiveGuard()

	clause := "The Contractor hereby assigns all intellectual property rights in the work to the Client, irrespective of payment."

	assert.False(t, g.Vetoes("uncompensated_ip_transfer", clause))
}

func TestGuardVetoesPortfolioAndPreExistingIP(t *testing.T) {
	g := NewFalsePositiveGuard()

	assert.True(t, g.Vetoes("uncompensated_ip_transfer",
		"The Contractor retains the right to display the work in their portfolio."))
	assert.True(t, g.Vetoes("uncompensated_ip_transfer",
		"Pre-existing intellectual property remains the property of the Contractor."))
}

func TestGuardVetoesFairPaymentTerms(t *testing.T) {
	g := NewFalsePositiveGuard()

	assert.True(t, g.Vetoes("delayed_payment_terms",
		"The Client shall make payment within 30 days of invoice."))
	assert.False(t, g.Vetoes("delayed_payment_terms",
		"Payment shall be released only upon client satisfaction with the deliverables."))
}

func TestGuardVetoesScopeAnchoredToAnnexure(t *testing.T) {
	g := NewFalsePositiveGuard()

	assert.True(t, g.Vetoes("vague_scope_section29",
		"The Contractor shall perform the services detailed in Annexure A."))
	assert.False(t, g.Vetoes("vague_scope_section29",
		"The Contractor shall perform such other services as needed from time to time."))
}

func TestGuardIgnoresUnknownFamilies(t *testing.T) {
	g := NewFalsePositiveGuard()

	// No safe-pattern heuristics exist for non-compete findings
	assert.False(t, g.Vetoes("non_compete_section27",
		"Upon full payment the Contractor shall not assign work to competitors."))
}
