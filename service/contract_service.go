package service

import (
	"context"
	"errors"
	"io"

	"contractguard-backend/models"
	"contractguard-backend/repository"
	"contractguard-backend/storage"

	"github.com/google/uuid"
)

// ContractService handles business logic for contracts
type ContractService struct {
	contractRepo *repository.ContractRepository
	fileRepo     *repository.FileRepository
	fileStorage  storage.Storage
	extractor    TextExtractor
}

// ContractServiceOption is a functional option for ContractService
type ContractServiceOption func(*ContractService)

// WithContractRepository sets the contract repository
func WithContractRepository(repo *repository.ContractRepository) ContractServiceOption {
	return func(s *ContractService) {
		s.contractRepo = repo
	}
}

// WithFileRepository sets the file repository
func WithFileRepository(repo *repository.FileRepository) ContractServiceOption {
	return func(s *ContractService) {
		s.fileRepo = repo
	}
}

// WithFileStorage sets the file storage backend
func WithFileStorage(st storage.Storage) ContractServiceOption {
	return func(s *ContractService) {
		s.fileStorage = st
	}
}

// WithTextExtractor sets the text extractor
func WithTextExtractor(e TextExtractor) ContractServiceOption {
	return func(s *ContractService) {
		s.extractor = e
	}
}

// NewContractService creates a new contract service
func NewContractService(opts ...ContractServiceOption) *ContractService {
	s := &ContractService{
		extractor: NewPlainTextExtractor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var ErrExtractionFailed = errors.New("failed to extract contract text")

// CreateContractRequest represents an uploaded contract with its context
type CreateContractRequest struct {
	UserID         uuid.UUID
	Filename       string
	MimeType       string
	Size           int64
	Data           io.Reader
	ContractType   models.ContractType
	Industry       models.Industry
	ContractValue  float64
	DurationMonths int
	UserExperience int
}

// CreateContractResult represents the result of creating a contract
type CreateContractResult struct {
	Contract *models.Contract
}

// CreateContract stores the uploaded file, extracts its text, and
// persists the contract record ready for analysis
func (s *ContractService) CreateContract(ctx context.Context, req CreateContractRequest) (*CreateContractResult, error) {
	if s.contractRepo == nil {
		return nil, errors.New("contract repository not set")
	}

	fileID := uuid.New()

	// Tee the upload: storage gets the original bytes, the extractor
	// reads the same stream once stored.
	var storagePath string
	if s.fileStorage != nil {
		var err error
		storagePath, err = s.fileStorage.Upload(ctx, fileID, req.Filename, req.Data)
		if err != nil {
			return nil, err
		}
		rc, err := s.fileStorage.Download(ctx, storagePath)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		req.Data = rc
	}

	extracted, err := s.extractor.ExtractText(ctx, req.Filename, req.Data)
	if err != nil {
		return nil, ErrExtractionFailed
	}

	contract := &models.Contract{
		UserID:         req.UserID,
		Status:         models.ContractStatusUploaded,
		Filename:       req.Filename,
		ExtractedText:  extracted.Text,
		CharacterCount: extracted.CharacterCount,
		PageCount:      extracted.PageCount,
		ContractType:   req.ContractType,
		Industry:       req.Industry,
		ContractValue:  req.ContractValue,
		DurationMonths: req.DurationMonths,
		UserExperience: req.UserExperience,
	}
	if storagePath != "" {
		contract.FileID = &fileID
	}
	if contract.ContractType == "" {
		contract.ContractType = models.ContractFreelance
	}
	if contract.Industry == "" {
		contract.Industry = models.IndustryGeneral
	}

	if err := s.contractRepo.Create(ctx, contract); err != nil {
		return nil, err
	}

	if s.fileRepo != nil && storagePath != "" {
		file := &models.File{
			ID:          fileID,
			UserID:      req.UserID,
			ContractID:  &contract.ID,
			Filename:    req.Filename,
			MimeType:    req.MimeType,
			Size:        req.Size,
			StoragePath: storagePath,
		}
		if err := s.fileRepo.Create(ctx, file); err != nil {
			return nil, err
		}
	}

	return &CreateContractResult{Contract: contract}, nil
}

// GetContract retrieves a contract by ID
func (s *ContractService) GetContract(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	if s.contractRepo == nil {
		return nil, errors.New("contract repository not set")
	}
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrContractNotFound
	}
	return contract, nil
}

// ListContracts retrieves a user's contracts
func (s *ContractService) ListContracts(ctx context.Context, userID uuid.UUID, status *models.ContractStatus, limit, offset int) ([]*models.Contract, error) {
	if s.contractRepo == nil {
		return nil, errors.New("contract repository not set")
	}
	return s.contractRepo.ListByUserID(ctx, userID, status, limit, offset)
}
