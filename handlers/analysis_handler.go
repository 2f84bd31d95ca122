package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"contractguard-backend/models"
	"contractguard-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AnalysisHandler handles HTTP requests for contracts and their risk analysis
type AnalysisHandler struct {
	contractService *service.ContractService
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(contractService *service.ContractService, analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		contractService: contractService,
		analysisService: analysisService,
	}
}

// CreateContract handles POST /api/contracts
// Accepts a multipart upload with the contract file plus optional
// context fields (contract_type, industry, contract_value, duration_months).
func (h *AnalysisHandler) CreateContract(c *gin.Context) {
	userIDStr := c.PostForm("user_id")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user_id format",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_FILE",
				"message": "No file provided",
			},
		})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_READ_FAILED",
				"message": err.Error(),
			},
		})
		return
	}
	defer src.Close()

	contractValue, _ := strconv.ParseFloat(c.PostForm("contract_value"), 64)
	durationMonths, _ := strconv.Atoi(c.PostForm("duration_months"))
	userExperience, _ := strconv.Atoi(c.PostForm("user_experience"))

	serviceReq := service.CreateContractRequest{
		UserID:         userID,
		Filename:       fileHeader.Filename,
		MimeType:       fileHeader.Header.Get("Content-Type"),
		Size:           fileHeader.Size,
		Data:           src,
		ContractType:   models.ContractType(c.PostForm("contract_type")),
		Industry:       models.Industry(c.PostForm("industry")),
		ContractValue:  contractValue,
		DurationMonths: durationMonths,
		UserExperience: userExperience,
	}

	result, err := h.contractService.CreateContract(c.Request.Context(), serviceReq)
	if err != nil {
		status := http.StatusInternalServerError
		code := "CREATE_FAILED"
		if err == service.ErrExtractionFailed {
			status = http.StatusUnprocessableEntity
			code = "EXTRACTION_FAILED"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Contract,
	})
}

// GetContract handles GET /api/contracts/:id
func (h *AnalysisHandler) GetContract(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid contract ID format",
			},
		})
		return
	}

	contract, err := h.contractService.GetContract(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Contract not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contract,
	})
}

// ListContracts handles GET /api/contracts
func (h *AnalysisHandler) ListContracts(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user_id format",
			},
		})
		return
	}

	var status *models.ContractStatus
	if s := c.Query("status"); s != "" {
		cs := models.ContractStatus(s)
		status = &cs
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	contracts, err := h.contractService.ListContracts(c.Request.Context(), userID, status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contracts,
	})
}

// AnalyzeContract handles POST /api/contracts/:id/analyze
func (h *AnalysisHandler) AnalyzeContract(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid contract ID format",
			},
		})
		return
	}

	mode := c.DefaultQuery("mode", service.ModeEnhanced)
	if mode != service.ModeEnhanced && mode != service.ModeLegacy {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_MODE",
				"message": "mode must be 'enhanced' or 'legacy'",
			},
		})
		return
	}

	serviceReq := service.StartAnalysisRequest{
		ContractID: id,
		Mode:       mode,
	}

	// Create job (synchronous, fast)
	result, err := h.analysisService.StartAnalysis(c.Request.Context(), serviceReq)
	if err != nil {
		status := http.StatusInternalServerError
		code := "ANALYSIS_FAILED"
		switch err {
		case service.ErrContractNotFound:
			status = http.StatusNotFound
			code = "NOT_FOUND"
		case service.ErrEmptyContract:
			status = http.StatusUnprocessableEntity
			code = "EMPTY_CONTRACT"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	// Spawn background goroutine for actual processing
	// Use background context (not request context) to avoid cancellation
	go func() {
		bgCtx := context.Background()
		if err := h.analysisService.ProcessAnalysis(bgCtx, result.JobID); err != nil {
			// Error is logged and stored in job.ErrorMessage
			// No need to return to HTTP client (they'll poll status)
			log.Printf("Analysis job %s failed: %v", result.JobID, err)
		}
	}()

	// Return immediately (within 100ms)
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"job_id":  result.JobID,
			"status":  "pending",
			"message": "Analysis job created. Poll /api/jobs/:id for updates.",
		},
	})
}

// GetJobStatus handles GET /api/jobs/:id
func (h *AnalysisHandler) GetJobStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid job ID format",
			},
		})
		return
	}

	job, err := h.analysisService.GetJobStatus(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrJobNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Analysis job not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// GetReport handles GET /api/contracts/:id/report
func (h *AnalysisHandler) GetReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid contract ID format",
			},
		})
		return
	}

	contract, err := h.contractService.GetContract(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Contract not found",
			},
		})
		return
	}

	if contract.Report == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_REPORT",
				"message": "Contract has not been analyzed yet",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contract.Report,
	})
}

// AnalyzeTextRequest represents the request body for ad-hoc analysis
type AnalyzeTextRequest struct {
	Text           string  `json:"text" binding:"required"`
	ContractType   string  `json:"contract_type"`
	Industry       string  `json:"industry"`
	ContractValue  float64 `json:"contract_value"`
	DurationMonths int     `json:"duration_months"`
	UserExperience int     `json:"user_experience"`
	Mode           string  `json:"mode"`
}

// AnalyzeText handles POST /api/analyze
// Runs the full pipeline synchronously on raw text without persistence.
func (h *AnalysisHandler) AnalyzeText(c *gin.Context) {
	var req AnalyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if req.Mode != "" && req.Mode != service.ModeEnhanced && req.Mode != service.ModeLegacy {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_MODE",
				"message": "mode must be 'enhanced' or 'legacy'",
			},
		})
		return
	}

	cctx := models.ContractContext{
		ContractType:   models.ContractType(req.ContractType),
		Industry:       models.Industry(req.Industry),
		ContractValue:  req.ContractValue,
		DurationMonths: req.DurationMonths,
		UserExperience: req.UserExperience,
	}.Normalize()

	report, err := h.analysisService.Analyze(c.Request.Context(), req.Text, cctx, req.Mode)
	if err != nil {
		status := http.StatusInternalServerError
		code := "ANALYSIS_FAILED"
		if err == service.ErrEmptyContract {
			status = http.StatusUnprocessableEntity
			code = "EMPTY_CONTRACT"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}
