package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"contractguard-backend/models"
)

// DeviationChecker scans the whole contract text (not per-clause) for
// terms that fall outside fair-practice baselines. Each category yields
// at most one deviation per analysis; the first match in a category wins.
type DeviationChecker struct {
	// enhanced enables the restraint-of-trade category in addition to
	// the six baseline categories
	enhanced bool
}

// NewDeviationChecker creates a checker. enhanced selects the extended
// category set used by the enhanced scoring path.
func NewDeviationChecker(enhanced bool) *DeviationChecker {
	return &DeviationChecker{enhanced: enhanced}
}

// Deviation category names as they appear in reports
const (
	CategoryPayment         = "Payment Terms"
	CategoryNotice          = "Termination Notice"
	CategoryLiability       = "Liability Cap"
	CategoryWorkingHours    = "Working Hours"
	CategoryConfidentiality = "Confidentiality Period"
	CategoryJurisdiction    = "Jurisdiction"
	CategoryRestraint       = "Restraint of Trade"
)

// paymentTiers are day-count thresholds per contract type. Crossing
// warning/danger/critical maps to MINOR/SIGNIFICANT/EXTREME.
type paymentTiers struct {
	standard, warning, danger, critical int
}

var paymentBaselines = map[models.ContractType]paymentTiers{
	models.ContractFreelance:  {30, 45, 60, 90},
	models.ContractConsultant: {30, 45, 60, 90},
	models.ContractEmployment: {30, 45, 60, 90},
	models.ContractVendor:     {45, 60, 90, 120},
	models.ContractGeneral:    {30, 45, 60, 90},
}

// liabilityDangerTier is the contract-value multiplier at which a
// liability cap becomes a significant deviation; five times contract
// value is extreme for every context
var liabilityDangerTier = map[models.ContractType]float64{
	models.ContractFreelance:  2,
	models.ContractConsultant: 2,
	models.ContractEmployment: 3,
	models.ContractVendor:     3,
	models.ContractGeneral:    3,
}

const liabilityExtremeTier = 5.0

var (
	paymentWithinDays = regexp.MustCompile(`payment\s+(?:shall\s+be\s+made\s+)?within\s+(\d+)\s+days`)
	paymentNetDays    = regexp.MustCompile(`\bnet\s+(\d+)\b`)
	paymentInvoice    = regexp.MustCompile(`(\d+)\s+days\s+(?:from|after|of)\s+(?:receipt\s+of\s+)?(?:the\s+)?invoice`)

	noticeDays      = regexp.MustCompile(`(\d+)\s+days?'?\s+(?:prior\s+)?(?:written\s+)?notice|notice\s+(?:period\s+)?of\s+(\d+)\s+days`)
	terminationWord = regexp.MustCompile(`terminat|cancel|end\s+this\s+agreement`)

	liabilityUnlimited  = regexp.MustCompile(`unlimited\s+liability|liability\s+(?:is|shall\s+be)\s+unlimited`)
	liabilityMultiplier = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:x|times)\s+(?:the\s+)?(?:total\s+)?contract\s+value`)

	roundTheClock    = regexp.MustCompile(`24\s*[/x]\s*7|around\s+the\s+clock|at\s+all\s+times`)
	availabilityWord = regexp.MustCompile(`availab|on\s+call|respond|reachable`)
	hoursPerWeek     = regexp.MustCompile(`(\d+)\s+hours?\s+(?:per|a|each)\s+week`)

	perpetualWord       = regexp.MustCompile(`perpetual|perpetuity|indefinite|forever`)
	confidentialityWord = regexp.MustCompile(`confidential|non-?disclosure|\bnda\b`)
	confidentialYears   = regexp.MustCompile(`(\d+)\s+years?`)

	nonCompeteDuration = regexp.MustCompile(`(?:not\s+(?:to\s+)?compete|non-?compete|competing\s+business)[^.]*?(\d+)\s+(year|month)s?`)
	blanketNonCompete  = regexp.MustCompile(`shall\s+not\s+compete|not\s+engage\s+in\s+any\s+competing\s+business|refrain\s+from\s+any\s+competing`)
)

// foreignForums are jurisdiction names whose selection makes enforcement
// impractical for an Indian contractor. Any match is SIGNIFICANT; no
// forum is worse than another.
var foreignForums = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`courts?\s+of\s+new\s+york|state\s+of\s+new\s+york`), "New York, USA"},
	{regexp.MustCompile(`laws?\s+of\s+(?:the\s+state\s+of\s+)?delaware|courts?\s+of\s+delaware`), "Delaware, USA"},
	{regexp.MustCompile(`courts?\s+of\s+california|state\s+of\s+california`), "California, USA"},
	{regexp.MustCompile(`courts?\s+of\s+(?:england|london)|laws?\s+of\s+england`), "England"},
	{regexp.MustCompile(`courts?\s+of\s+singapore|laws?\s+of\s+singapore`), "Singapore"},
	{regexp.MustCompile(`\bdifc\b|courts?\s+of\s+dubai`), "Dubai, UAE"},
	{regexp.MustCompile(`courts?\s+of\s+hong\s+kong|laws?\s+of\s+hong\s+kong`), "Hong Kong"},
}

// Check runs every category routine over the lower-cased contract text
func (d *DeviationChecker) Check(text string, cctx models.ContractContext) []models.Deviation {
	cctx = cctx.Normalize()
	lower := strings.ToLower(text)

	var deviations []models.Deviation
	appendIf := func(dev models.Deviation, ok bool) {
		if ok {
			deviations = append(deviations, dev)
		}
	}

	appendIf(d.checkPayment(lower, cctx))
	appendIf(d.checkNotice(lower, cctx))
	appendIf(d.checkLiability(lower, cctx))
	appendIf(d.checkWorkingHours(lower))
	appendIf(d.checkConfidentiality(lower))
	appendIf(d.checkJurisdiction(lower))
	if d.enhanced {
		appendIf(d.checkRestraint(lower))
	}

	return deviations
}

// extractDays returns the first day-count produced by any of the payment
// extraction regexes, in regex order
func extractPaymentDays(lower string) (int, string, bool) {
	for _, re := range []*regexp.Regexp{paymentWithinDays, paymentNetDays, paymentInvoice} {
		if m := re.FindStringSubmatch(lower); m != nil {
			days, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return days, m[0], true
		}
	}
	return 0, "", false
}

func (d *DeviationChecker) checkPayment(lower string, cctx models.ContractContext) (models.Deviation, bool) {
	days, matched, ok := extractPaymentDays(lower)
	if !ok {
		return models.Deviation{}, false
	}

	tiers := paymentBaselines[cctx.ContractType]
	var level models.DeviationLevel
	switch {
	case days >= tiers.critical:
		level = models.DeviationExtreme
	case days >= tiers.danger:
		level = models.DeviationSignificant
	case days >= tiers.warning:
		level = models.DeviationMinor
	default:
		return models.Deviation{}, false
	}

	return models.Deviation{
		Category:        CategoryPayment,
		FoundInContract: fmt.Sprintf("Net %d days", days),
		FairStandard:    fmt.Sprintf("Payment within %d days", tiers.standard),
		DeviationLevel:  level,
		Explanation:     fmt.Sprintf("A %d-day credit period is well beyond the %d-day fair standard for %s contracts and shifts working-capital risk onto the supplier of the work.", days, tiers.standard, cctx.ContractType),
		LegalReference:  "Indian Contract Act, 1872, Section 73",
		MatchedText:     matched,
	}, true
}

// extractNoticeDays returns an explicit notice period day-count, if any
func extractNoticeDays(lower string) (int, string, bool) {
	if m := noticeDays.FindStringSubmatch(lower); m != nil {
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			if days, err := strconv.Atoi(g); err == nil {
				return days, m[0], true
			}
		}
	}
	return 0, "", false
}

func (d *DeviationChecker) checkNotice(lower string, cctx models.ContractContext) (models.Deviation, bool) {
	days, matched, hasExplicit := extractNoticeDays(lower)

	// Immediate-termination signals: the exact phrase, or "without
	// notice" within 150 characters of a termination-context word. The
	// proximity window keeps boilerplate like "notices shall be sent
	// without delay" from tripping the check.
	immediate := strings.Contains(lower, "immediate termination") || strings.Contains(lower, "terminate immediately")
	if !immediate {
		immediate = phrasesNear(lower, "without notice", terminationWord, 150)
	}

	if immediate && !hasExplicit {
		return models.Deviation{
			Category:        CategoryNotice,
			FoundInContract: "Immediate termination without notice",
			FairStandard:    "30 days written notice",
			DeviationLevel:  models.DeviationExtreme,
			Explanation:     "The agreement can be ended with no notice at all, leaving no time to wind down work in progress or replace the income.",
			LegalReference:  "Indian Contract Act, 1872, Section 39",
		}, true
	}
	if !hasExplicit {
		return models.Deviation{}, false
	}

	// Direction-aware baseline: a short notice period hurts the
	// freelancer/consultant; an overlong one locks in an employee.
	var level models.DeviationLevel
	if cctx.ContractType == models.ContractEmployment {
		switch {
		case days > 90:
			level = models.DeviationExtreme
		case days > 60:
			level = models.DeviationSignificant
		case days > 30:
			level = models.DeviationMinor
		default:
			return models.Deviation{}, false
		}
	} else {
		switch {
		case days < 7:
			level = models.DeviationExtreme
		case days < 15:
			level = models.DeviationSignificant
		case days < 30:
			level = models.DeviationMinor
		default:
			return models.Deviation{}, false
		}
	}

	return models.Deviation{
		Category:        CategoryNotice,
		FoundInContract: fmt.Sprintf("%d days notice", days),
		FairStandard:    "30 days written notice",
		DeviationLevel:  level,
		Explanation:     fmt.Sprintf("A %d-day notice period deviates from the 30-day norm for %s engagements.", days, cctx.ContractType),
		LegalReference:  "Indian Contract Act, 1872, Section 39",
		MatchedText:     matched,
	}, true
}

func (d *DeviationChecker) checkLiability(lower string, cctx models.ContractContext) (models.Deviation, bool) {
	if m := liabilityUnlimited.FindString(lower); m != "" {
		return models.Deviation{
			Category:        CategoryLiability,
			FoundInContract: "Unlimited liability",
			FairStandard:    "Liability capped at contract value",
			DeviationLevel:  models.DeviationExtreme,
			Explanation:     "Liability is not capped at all; a single claim could exceed everything earned under the contract many times over.",
			LegalReference:  "Indian Contract Act, 1872, Sections 73-74",
			MatchedText:     m,
		}, true
	}

	m := liabilityMultiplier.FindStringSubmatch(lower)
	if m == nil {
		return models.Deviation{}, false
	}
	mult, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return models.Deviation{}, false
	}

	var level models.DeviationLevel
	switch {
	case mult >= liabilityExtremeTier:
		level = models.DeviationExtreme
	case mult >= liabilityDangerTier[cctx.ContractType]:
		level = models.DeviationSignificant
	default:
		return models.Deviation{}, false
	}

	return models.Deviation{
		Category:        CategoryLiability,
		FoundInContract: fmt.Sprintf("Liability capped at %gx contract value", mult),
		FairStandard:    "Liability capped at 1x contract value",
		DeviationLevel:  level,
		Explanation:     fmt.Sprintf("A liability cap of %g times the contract value exposes the contractor to losses far beyond the engagement's worth.", mult),
		LegalReference:  "Indian Contract Act, 1872, Sections 73-74",
		MatchedText:     m[0],
	}, true
}

func (d *DeviationChecker) checkWorkingHours(lower string) (models.Deviation, bool) {
	if m := roundTheClock.FindString(lower); m != "" && availabilityWord.MatchString(lower) {
		return models.Deviation{
			Category:        CategoryWorkingHours,
			FoundInContract: "Round-the-clock availability",
			FairStandard:    "40-48 hours per week",
			DeviationLevel:  models.DeviationExtreme,
			Explanation:     "The contract expects availability at all hours, which is incompatible with any reasonable working-hours standard.",
			MatchedText:     m,
		}, true
	}

	m := hoursPerWeek.FindStringSubmatch(lower)
	if m == nil {
		return models.Deviation{}, false
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return models.Deviation{}, false
	}

	var level models.DeviationLevel
	switch {
	case hours > 60:
		level = models.DeviationExtreme
	case hours > 48:
		level = models.DeviationSignificant
	case hours > 40:
		level = models.DeviationMinor
	default:
		return models.Deviation{}, false
	}

	return models.Deviation{
		Category:        CategoryWorkingHours,
		FoundInContract: fmt.Sprintf("%d hours per week", hours),
		FairStandard:    "40-48 hours per week",
		DeviationLevel:  level,
		Explanation:     fmt.Sprintf("%d hours per week exceeds the 48-hour weekly ceiling recognized in Indian labour standards.", hours),
		MatchedText:     m[0],
	}, true
}

func (d *DeviationChecker) checkConfidentiality(lower string) (models.Deviation, bool) {
	// Perpetual phrasing only counts within 200 characters of a
	// confidentiality-context keyword, and an explicit year-count near
	// the context suppresses the perpetual reading.
	if phrasesNearRe(lower, perpetualWord, confidentialityWord, 200) {
		if !phrasesNearRe(lower, confidentialYears, confidentialityWord, 200) {
			return models.Deviation{
				Category:        CategoryConfidentiality,
				FoundInContract: "Perpetual confidentiality obligation",
				FairStandard:    "2-3 year confidentiality period",
				DeviationLevel:  models.DeviationExtreme,
				Explanation:     "Confidentiality never expires, operating as a permanent restraint on future work in the same field.",
				LegalReference:  "Indian Contract Act, 1872, Section 27",
			}, true
		}
	}

	years, matched, ok := confidentialityYearsNear(lower)
	if !ok {
		return models.Deviation{}, false
	}

	var level models.DeviationLevel
	switch {
	case years > 10:
		level = models.DeviationExtreme
	case years > 5:
		level = models.DeviationSignificant
	case years > 3:
		level = models.DeviationMinor
	default:
		return models.Deviation{}, false
	}

	return models.Deviation{
		Category:        CategoryConfidentiality,
		FoundInContract: fmt.Sprintf("%d year confidentiality period", years),
		FairStandard:    "2-3 year confidentiality period",
		DeviationLevel:  level,
		Explanation:     fmt.Sprintf("A %d-year confidentiality period is far longer than the 2-3 years commercial information normally stays sensitive.", years),
		LegalReference:  "Indian Contract Act, 1872, Section 27",
		MatchedText:     matched,
	}, true
}

// confidentialityYearsNear returns the first explicit year-count that
// appears within 200 characters of a confidentiality-context keyword
func confidentialityYearsNear(lower string) (int, string, bool) {
	for _, loc := range confidentialYears.FindAllStringSubmatchIndex(lower, -1) {
		lo := loc[0] - 200
		if lo < 0 {
			lo = 0
		}
		hi := loc[1] + 200
		if hi > len(lower) {
			hi = len(lower)
		}
		if !confidentialityWord.MatchString(lower[lo:hi]) {
			continue
		}
		years, err := strconv.Atoi(lower[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		return years, lower[loc[0]:loc[1]], true
	}
	return 0, "", false
}

func (d *DeviationChecker) checkJurisdiction(lower string) (models.Deviation, bool) {
	for _, forum := range foreignForums {
		if m := forum.re.FindString(lower); m != "" {
			return models.Deviation{
				Category:        CategoryJurisdiction,
				FoundInContract: "Exclusive jurisdiction: " + forum.name,
				FairStandard:    "Indian courts or arbitration in India",
				DeviationLevel:  models.DeviationSignificant,
				Explanation:     fmt.Sprintf("Disputes must be brought in %s, which is practically unenforceable for an Indian contractor regardless of the forum chosen.", forum.name),
				LegalReference:  "Indian Contract Act, 1872, Section 28",
				MatchedText:     m,
			}, true
		}
	}
	return models.Deviation{}, false
}

func (d *DeviationChecker) checkRestraint(lower string) (models.Deviation, bool) {
	if m := nonCompeteDuration.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			years := float64(n)
			if m[2] == "month" {
				years = float64(n) / 12
			}
			var level models.DeviationLevel
			switch {
			case years > 5:
				level = models.DeviationExtreme
			case years >= 2:
				level = models.DeviationSignificant
			default:
				return models.Deviation{}, false
			}
			return models.Deviation{
				Category:        CategoryRestraint,
				FoundInContract: fmt.Sprintf("Non-compete for %d %ss", n, m[2]),
				FairStandard:    "No post-termination restraint (void under Section 27)",
				DeviationLevel:  level,
				Explanation:     "Post-termination non-compete restraints are void under Section 27 regardless of duration; the stated period signals how aggressively the clause would be pressed.",
				LegalReference:  "Indian Contract Act, 1872, Section 27",
				MatchedText:     m[0],
			}, true
		}
	}

	if m := blanketNonCompete.FindString(lower); m != "" {
		return models.Deviation{
			Category:        CategoryRestraint,
			FoundInContract: "Blanket non-compete with no stated duration",
			FairStandard:    "No post-termination restraint (void under Section 27)",
			DeviationLevel:  models.DeviationExtreme,
			Explanation:     "An open-ended non-compete with no duration at all is the most aggressive form of a restraint that Section 27 already voids.",
			LegalReference:  "Indian Contract Act, 1872, Section 27",
			MatchedText:     m,
		}, true
	}

	return models.Deviation{}, false
}

// phrasesNear reports whether needle occurs within window characters of
// any match of ctxRe. Used to cut false positives from naive substring
// checks: the trigger phrase must appear in its expected context.
func phrasesNear(lower, needle string, ctxRe *regexp.Regexp, window int) bool {
	idx := 0
	for {
		rel := strings.Index(lower[idx:], needle)
		if rel < 0 {
			return false
		}
		pos := idx + rel
		lo := pos - window
		if lo < 0 {
			lo = 0
		}
		hi := pos + len(needle) + window
		if hi > len(lower) {
			hi = len(lower)
		}
		if ctxRe.MatchString(lower[lo:hi]) {
			return true
		}
		idx = pos + len(needle)
	}
}

// phrasesNearRe is phrasesNear with a regexp needle
func phrasesNearRe(lower string, needleRe, ctxRe *regexp.Regexp, window int) bool {
	for _, loc := range needleRe.FindAllStringIndex(lower, -1) {
		lo := loc[0] - window
		if lo < 0 {
			lo = 0
		}
		hi := loc[1] + window
		if hi > len(lower) {
			hi = len(lower)
		}
		if ctxRe.MatchString(lower[lo:hi]) {
			return true
		}
	}
	return false
}
