package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"contractguard-backend/models"
	"contractguard-backend/repository"

	"github.com/google/uuid"
)

// AnalysisService runs the clause-risk detection and scoring pipeline
type AnalysisService struct {
	contractRepo *repository.ContractRepository
	jobRepo      *repository.AnalysisJobRepository

	segmenter  *Segmenter
	keyword    *KeywordValidator
	semantic   *SemanticValidator
	deviations *DeviationChecker
	scorer     *Scorer
	explainSvc *ExplainService
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// AnalysisWithContractRepository sets the contract repository
func AnalysisWithContractRepository(repo *repository.ContractRepository) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.contractRepo = repo
	}
}

// AnalysisWithJobRepository sets the analysis job repository
func AnalysisWithJobRepository(repo *repository.AnalysisJobRepository) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.jobRepo = repo
	}
}

// AnalysisWithKeywordValidator sets the keyword/regex validator
func AnalysisWithKeywordValidator(v *KeywordValidator) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.keyword = v
	}
}

// AnalysisWithSemanticValidator sets the semantic validator
func AnalysisWithSemanticValidator(v *SemanticValidator) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.semantic = v
	}
}

// AnalysisWithScorer sets the scorer
func AnalysisWithScorer(sc *Scorer) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.scorer = sc
	}
}

// AnalysisWithExplainService sets the explanation service
func AnalysisWithExplainService(e *ExplainService) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.explainSvc = e
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{
		segmenter:  NewSegmenter(),
		deviations: NewDeviationChecker(true),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrContractNotFound  = errors.New("contract not found")
	ErrEmptyContract     = errors.New("contract has no extracted text")
	ErrJobNotFound       = errors.New("analysis job not found")
	ErrJobCreationFailed = errors.New("failed to create analysis job")
)

// Scoring modes selectable by the caller. Enhanced is the default; the
// legacy flat-sum scorer is kept for callers of the original API.
const (
	ModeEnhanced = "enhanced"
	ModeLegacy   = "legacy"
)

// Pipeline step names shown in job progress
const (
	stepSegmenting   = "Segmenting Clauses"
	stepKeyword      = "Keyword Screening"
	stepSemantic     = "Semantic Screening"
	stepBaselines    = "Checking Fair-Practice Baselines"
	stepScoring      = "Scoring"
	stepExplanations = "Generating Explanations"
)

// Analyze runs the full pipeline synchronously over raw contract text
// and returns the report. The enhanced deviation set feeds the score in
// enhanced mode; in legacy mode deviations appear in the report but not
// in the score.
func (s *AnalysisService) Analyze(ctx context.Context, text string, cctx models.ContractContext, mode string) (*models.AnalysisReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContract
	}
	if mode == "" {
		mode = ModeEnhanced
	}
	cctx = cctx.Normalize()

	clauses := s.segmenter.Segment(text)

	merged := s.runDetection(ctx, clauses, cctx)
	deviations := s.runDeviations(text, cctx, mode)

	result := s.score(merged, deviations, cctx, mode)

	return &models.AnalysisReport{
		Analysis: models.AnalysisSummary{
			OverallRiskScore:     result.Score,
			RiskLevel:            result.Level,
			TotalClauses:         len(clauses),
			RiskyClausesFound:    len(merged),
			MatchSourceBreakdown: CountMatchSources(merged),
			Breakdown:            result.Breakdown,
		},
		RiskyClauses: merged,
		Deviations:   deviations,
	}, nil
}

// runDetection runs the keyword channel concurrently with the semantic
// channel and merges the results. The semantic channel is best-effort:
// its error is logged and treated as an empty list.
func (s *AnalysisService) runDetection(ctx context.Context, clauses []models.Clause, cctx models.ContractContext) []models.CombinedViolation {
	cache := NewEmbeddingCache()
	defer cache.Clear()

	var (
		wg         sync.WaitGroup
		semMatches []models.SemanticMatch
		semErr     error
	)

	if s.semantic != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			semMatches, semErr = s.semantic.Validate(ctx, clauses, cache)
		}()
	}

	keywordViolations := s.keyword.Validate(clauses, cctx)

	wg.Wait()
	if semErr != nil {
		log.Printf("Warning: Semantic channel unavailable, continuing with keyword results only: %v", semErr)
		semMatches = nil
	}

	return MergeViolations(keywordViolations, semMatches)
}

// runDeviations selects the deviation category set by mode
func (s *AnalysisService) runDeviations(text string, cctx models.ContractContext, mode string) []models.Deviation {
	if mode == ModeLegacy {
		return NewDeviationChecker(false).Check(text, cctx)
	}
	return s.deviations.Check(text, cctx)
}

func (s *AnalysisService) score(merged []models.CombinedViolation, deviations []models.Deviation, cctx models.ContractContext, mode string) models.ScoringResult {
	if mode == ModeLegacy {
		return s.scorer.ScoreLegacy(merged)
	}
	return s.scorer.ScoreEnhanced(merged, deviations, cctx)
}

// StartAnalysisRequest represents a request to analyze a stored contract
type StartAnalysisRequest struct {
	ContractID uuid.UUID
	Mode       string
}

// StartAnalysisResult represents the result of creating an analysis job
type StartAnalysisResult struct {
	JobID uuid.UUID
}

// StartAnalysis creates an analysis job and returns immediately; the
// actual work runs in ProcessAnalysis on a background goroutine
func (s *AnalysisService) StartAnalysis(ctx context.Context, req StartAnalysisRequest) (*StartAnalysisResult, error) {
	if s.contractRepo == nil {
		return nil, errors.New("contract repository not set")
	}
	if s.jobRepo == nil {
		return nil, errors.New("analysis job repository not set")
	}

	contract, err := s.contractRepo.GetByID(ctx, req.ContractID)
	if err != nil {
		return nil, ErrContractNotFound
	}
	if strings.TrimSpace(contract.ExtractedText) == "" {
		return nil, ErrEmptyContract
	}

	mode := req.Mode
	if mode == "" {
		mode = ModeEnhanced
	}

	job := &models.AnalysisJob{
		ContractID: req.ContractID,
		Status:     models.JobStatusPending,
		Mode:       mode,
		Steps:      initialSteps(),
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, ErrJobCreationFailed
	}

	return &StartAnalysisResult{JobID: job.ID}, nil
}

func initialSteps() models.AnalysisSteps {
	names := []string{stepSegmenting, stepKeyword, stepSemantic, stepBaselines, stepScoring, stepExplanations}
	steps := make(models.AnalysisSteps, 0, len(names))
	for _, name := range names {
		steps = append(steps, models.AnalysisStep{Name: name, Status: "pending"})
	}
	return steps
}

// GetJobStatus retrieves the status of an analysis job
func (s *AnalysisService) GetJobStatus(ctx context.Context, jobID uuid.UUID) (*models.AnalysisJob, error) {
	if s.jobRepo == nil {
		return nil, errors.New("analysis job repository not set")
	}
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// ProcessAnalysis performs the analysis work for a job. Runs in a
// goroutine; callers poll GetJobStatus. Only segmentation of an empty
// contract fails the job; channel failures degrade per their local
// policy and still produce a report.
func (s *AnalysisService) ProcessAnalysis(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load analysis job: %w", err)
	}

	contract, err := s.contractRepo.GetByID(ctx, job.ContractID)
	if err != nil {
		s.markJobFailed(ctx, jobID, "failed to load contract: "+err.Error())
		return err
	}

	if err := s.jobRepo.UpdateStatus(ctx, jobID, models.JobStatusInProgress); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	cctx := contract.Context()
	text := contract.ExtractedText

	// Segmentation
	s.stepStatus(ctx, jobID, stepSegmenting, "in_progress")
	clauses := s.segmenter.Segment(text)
	if len(clauses) == 0 {
		s.markJobFailed(ctx, jobID, "contract text produced no clauses")
		return ErrEmptyContract
	}
	s.stepStatus(ctx, jobID, stepSegmenting, "completed")

	// Detection channels (keyword + semantic, concurrent)
	s.stepStatus(ctx, jobID, stepKeyword, "in_progress")
	s.stepStatus(ctx, jobID, stepSemantic, "in_progress")
	merged := s.runDetection(ctx, clauses, cctx)
	s.stepStatus(ctx, jobID, stepKeyword, "completed")
	s.stepStatus(ctx, jobID, stepSemantic, "completed")

	// Baseline deviations
	s.stepStatus(ctx, jobID, stepBaselines, "in_progress")
	deviations := s.runDeviations(text, cctx, job.Mode)
	s.stepStatus(ctx, jobID, stepBaselines, "completed")

	// Scoring
	s.stepStatus(ctx, jobID, stepScoring, "in_progress")
	result := s.score(merged, deviations, cctx, job.Mode)
	s.stepStatus(ctx, jobID, stepScoring, "completed")

	// Explanation enrichment (optional, best-effort)
	s.stepStatus(ctx, jobID, stepExplanations, "in_progress")
	if s.explainSvc != nil {
		merged = s.explainSvc.EnrichViolations(ctx, merged, "")
	}
	s.stepStatus(ctx, jobID, stepExplanations, "completed")

	report := &models.AnalysisReport{
		Analysis: models.AnalysisSummary{
			OverallRiskScore:     result.Score,
			RiskLevel:            result.Level,
			TotalClauses:         len(clauses),
			RiskyClausesFound:    len(merged),
			MatchSourceBreakdown: CountMatchSources(merged),
			Breakdown:            result.Breakdown,
		},
		RiskyClauses: merged,
		Deviations:   deviations,
	}

	if err := s.contractRepo.UpdateReport(ctx, job.ContractID, report); err != nil {
		s.markJobFailed(ctx, jobID, "failed to store report: "+err.Error())
		return err
	}

	if err := s.jobRepo.Complete(ctx, jobID); err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	return nil
}

// stepStatus updates one step's status in the job's progress record
func (s *AnalysisService) stepStatus(ctx context.Context, jobID uuid.UUID, stepName, status string) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		log.Printf("Warning: Failed to load job %s for step update: %v", jobID, err)
		return
	}

	steps := job.Steps
	var currentStep string
	if job.CurrentStep != nil {
		currentStep = *job.CurrentStep
	}

	for i := range steps {
		if steps[i].Name == stepName {
			steps[i].Status = status
			if status == "in_progress" {
				currentStep = stepName
			}
			break
		}
	}

	if err := s.jobRepo.UpdateProgress(ctx, jobID, currentStep, steps); err != nil {
		log.Printf("Warning: Failed to update job %s progress: %v", jobID, err)
	}
}

// markJobFailed marks a job as failed with an error message
func (s *AnalysisService) markJobFailed(ctx context.Context, jobID uuid.UUID, errorMessage string) {
	if err := s.jobRepo.Fail(ctx, jobID, errorMessage); err != nil {
		log.Printf("Warning: Failed to mark job %s failed: %v", jobID, err)
	}
}
