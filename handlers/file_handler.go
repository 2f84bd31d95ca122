package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"contractguard-backend/models"
	"contractguard-backend/repository"
	"contractguard-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 * 1024 * 1024

var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// FileHandler handles HTTP requests for contract document files
type FileHandler struct {
	fileRepo     *repository.FileRepository
	contractRepo *repository.ContractRepository
	storage      storage.Storage
	allowedMime  map[string]bool
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileRepo *repository.FileRepository, contractRepo *repository.ContractRepository, store storage.Storage) *FileHandler {
	allowed := make(map[string]bool, len(mimeByExtension))
	for _, mime := range mimeByExtension {
		allowed[mime] = true
	}
	return &FileHandler{
		fileRepo:     fileRepo,
		contractRepo: contractRepo,
		storage:      store,
		allowedMime:  allowed,
	}
}

// resolveOwner determines the owning user for an upload, either from an
// existing contract or from an explicit user_id form field.
func (h *FileHandler) resolveOwner(c *gin.Context) (uuid.UUID, *uuid.UUID, bool) {
	if raw := c.PostForm("contract_id"); raw != "" {
		cid, err := uuid.Parse(raw)
		if err != nil {
			fileError(c, http.StatusBadRequest, "INVALID_CONTRACT_ID", "Invalid contract_id format")
			return uuid.Nil, nil, false
		}
		contract, err := h.contractRepo.GetByID(c.Request.Context(), cid)
		if err != nil {
			fileError(c, http.StatusBadRequest, "CONTRACT_NOT_FOUND", "Contract not found")
			return uuid.Nil, nil, false
		}
		return contract.UserID, &cid, true
	}

	raw := c.PostForm("user_id")
	if raw == "" {
		fileError(c, http.StatusBadRequest, "MISSING_USER_ID", "Either contract_id or user_id is required")
		return uuid.Nil, nil, false
	}
	uid, err := uuid.Parse(raw)
	if err != nil {
		fileError(c, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user_id format")
		return uuid.Nil, nil, false
	}
	return uid, nil, true
}

// UploadFile handles POST /api/files/upload
func (h *FileHandler) UploadFile(c *gin.Context) {
	userID, contractID, ok := h.resolveOwner(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		fileError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		fileError(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			fmt.Sprintf("File size exceeds maximum of %d bytes", int64(maxUploadBytes)))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		fileError(c, http.StatusInternalServerError, "FILE_OPEN_ERROR", err.Error())
		return
	}
	defer src.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if inferred, ok := mimeByExtension[ext]; ok {
			mimeType = inferred
		} else {
			mimeType = "application/octet-stream"
		}
	}
	if !h.allowedMime[mimeType] && !strings.HasPrefix(mimeType, "text/") {
		fileError(c, http.StatusBadRequest, "INVALID_FILE_TYPE",
			"File type not allowed. Allowed types: PDF, TXT, MD, DOC, DOCX")
		return
	}

	fileID := uuid.New()
	key, err := h.storage.Upload(c.Request.Context(), fileID, fileHeader.Filename, src)
	if err != nil {
		fileError(c, http.StatusInternalServerError, "UPLOAD_FAILED",
			fmt.Sprintf("Failed to upload file: %v", err))
		return
	}

	record := &models.File{
		ID:          fileID,
		UserID:      userID,
		ContractID:  contractID,
		Filename:    fileHeader.Filename,
		MimeType:    mimeType,
		Size:        fileHeader.Size,
		StoragePath: key,
	}
	if err := h.fileRepo.Create(c.Request.Context(), record); err != nil {
		// The stored object is orphaned without its row
		h.storage.Delete(c.Request.Context(), key)
		fileError(c, http.StatusInternalServerError, "DATABASE_ERROR",
			fmt.Sprintf("Failed to save file record: %v", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":         record.ID,
			"filename":   record.Filename,
			"mime_type":  record.MimeType,
			"size":       record.Size,
			"created_at": record.CreatedAt,
		},
	})
}

// GetFile handles GET /api/files/:id
func (h *FileHandler) GetFile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fileError(c, http.StatusBadRequest, "INVALID_ID", "Invalid file ID format")
		return
	}

	file, err := h.fileRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		fileError(c, http.StatusNotFound, "NOT_FOUND", "File not found")
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), file.StoragePath)
	if err != nil {
		fileError(c, http.StatusInternalServerError, "DOWNLOAD_FAILED",
			fmt.Sprintf("Failed to download file: %v", err))
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.DataFromReader(http.StatusOK, file.Size, file.MimeType, reader, nil)
}

func fileError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
