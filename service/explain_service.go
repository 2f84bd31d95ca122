package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"contractguard-backend/models"

	"github.com/google/generative-ai-go/genai"
)

// ExplainService turns matched violations into plain-language
// explanations for both parties via the Gemini API. Enrichment is
// best-effort: a failed call degrades to a static fallback for that one
// violation and never aborts the batch.
type ExplainService struct {
	geminiClient *genai.Client
}

// ExplainServiceOption is a functional option for ExplainService
type ExplainServiceOption func(*ExplainService)

// ExplainWithGeminiClient sets the Gemini client
func ExplainWithGeminiClient(client *genai.Client) ExplainServiceOption {
	return func(s *ExplainService) {
		s.geminiClient = client
	}
}

// NewExplainService creates a new explain service
func NewExplainService(opts ...ExplainServiceOption) *ExplainService {
	s := &ExplainService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var ErrExplanationFailed = errors.New("failed to generate explanation")

const generationModel = "gemini-2.5-flash"

// explanationPayload is the JSON shape the model is asked to return
type explanationPayload struct {
	Freelancer models.RoleExplanation `json:"freelancer"`
	Company    models.RoleExplanation `json:"company"`
}

// EnrichViolations adds freelancer- and company-perspective explanations
// to each violation with full fan-out concurrency. Each violation has
// its own failure isolation: on error it gets the static fallback and
// the rest of the batch is unaffected.
func (s *ExplainService) EnrichViolations(ctx context.Context, violations []models.CombinedViolation, lang string) []models.CombinedViolation {
	var wg sync.WaitGroup
	for i := range violations {
		wg.Add(1)
		go func(v *models.CombinedViolation) {
			defer wg.Done()
			freelancer, company, err := s.Explain(ctx, v.ClauseText, v.ViolationType, v.SectionFullText, lang)
			if err != nil {
				log.Printf("Warning: Explanation for clause %d failed, using fallback: %v", v.ClauseID, err)
				fallback := fallbackExplanation(v)
				v.FreelancerView = &fallback
				v.CompanyView = &fallback
				return
			}
			v.FreelancerView = freelancer
			v.CompanyView = company
		}(&violations[i])
	}
	wg.Wait()
	return violations
}

// Explain generates role-specific explanations for one violation
func (s *ExplainService) Explain(ctx context.Context, clauseText, violationType, statuteText, lang string) (*models.RoleExplanation, *models.RoleExplanation, error) {
	if lang == "" {
		lang = "English"
	}

	prompt := fmt.Sprintf(`You are a legal assistant explaining contract risk to non-lawyers in India.

CLAUSE:
%s

DETECTED ISSUE: %s

RELEVANT LAW (Indian Contract Act, 1872):
%s

TASK:
Explain this clause in %s for two audiences. Return JSON only, exactly:
{"freelancer":{"simple":"...","impact":"..."},"company":{"simple":"...","impact":"..."}}

- "simple": what the clause means, one or two plain sentences, no legal jargon
- "impact": what it practically means for that party if things go wrong
- Be factual and neutral; do not exaggerate
- Do not give legal advice or tell either party what to do`,
		clauseText, violationType, statuteText, lang)

	raw, err := s.generate(ctx, prompt, 0.2)
	if err != nil {
		return nil, nil, err
	}

	// Models occasionally wrap JSON in a code fence
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var payload explanationPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return nil, nil, fmt.Errorf("failed to parse explanation JSON: %w", err)
	}

	return &payload.Freelancer, &payload.Company, nil
}

// fallbackExplanation builds a static explanation from the violation's
// own catalog description and statute citation
func fallbackExplanation(v *models.CombinedViolation) models.RoleExplanation {
	return models.RoleExplanation{
		Simple: v.Explanation,
		Impact: fmt.Sprintf("This clause may be unenforceable or unfair under Section %s of the Indian Contract Act, 1872 (%s). Consider reviewing it with a legal professional.", v.SectionNumber, v.SectionTitle),
	}
}

// generate calls the Gemini generation model and concatenates the text
// parts of all candidates
func (s *ExplainService) generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	if s.geminiClient == nil {
		return "", fmt.Errorf("gemini client not configured")
	}

	model := s.geminiClient.GenerativeModel(generationModel)
	model.SetTemperature(temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	var out strings.Builder
	for i, candidate := range resp.Candidates {
		if candidate.FinishReason != genai.FinishReasonStop && candidate.FinishReason != genai.FinishReasonUnspecified {
			log.Printf("Warning: Candidate %d finished with reason: %s", i, candidate.FinishReason)
		}
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out.WriteString(string(text))
			}
		}
	}

	if out.Len() == 0 {
		return "", ErrExplanationFailed
	}
	return out.String(), nil
}
