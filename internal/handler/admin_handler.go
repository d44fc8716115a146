package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cert-study/internal/domain"
	"cert-study/internal/dto"
	"cert-study/internal/logger"
	"cert-study/internal/service"
	"cert-study/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminHandler serves the PDF upload page and runs ingestion for uploads.
type AdminHandler struct {
	ingest     service.IngestService
	uploadDir  string
	outputDir  string
	uploadPage []byte
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(ingest service.IngestService, uploadDir, outputDir string, uploadPage []byte) *AdminHandler {
	return &AdminHandler{
		ingest:     ingest,
		uploadDir:  uploadDir,
		outputDir:  outputDir,
		uploadPage: uploadPage,
	}
}

// UploadPage godoc
// @Summary Upload page
// @Tags admin
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /admin/upload [get]
func (h *AdminHandler) UploadPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(h.uploadPage)
}

// Upload godoc
// @Summary Upload an exam PDF
// @Description Stores the PDF, extracts its questions and persists them
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Exam PDF"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/upload [post]
func (h *AdminHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidUploadError(`multipart field "file" is required`)
	}
	source := filepath.Base(fh.Filename)
	if !strings.EqualFold(filepath.Ext(source), ".pdf") {
		return domain.NewInvalidUploadError("only .pdf files are accepted").WithContext("filename", source)
	}

	runID := util.NewULID()
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return domain.NewInternalError("Failed to prepare upload directory", err)
	}
	dst := filepath.Join(h.uploadDir, runID+".pdf")
	if err := c.SaveFile(fh, dst); err != nil {
		return domain.NewInternalError("Failed to store upload", err)
	}
	logger.Get().Info("PDF uploaded",
		zap.String("run_id", runID),
		zap.String("source", source),
		zap.Int64("size", fh.Size),
	)

	artifact := ""
	if h.outputDir != "" {
		artifact = service.ArtifactPathFor(h.outputDir, runID+"_"+source)
	}
	res, err := h.ingest.Ingest(c.UserContext(), dst, source, service.IngestOptions{Persist: true, ArtifactPath: artifact})
	if err != nil {
		return err
	}

	return c.JSON(dto.UploadResponse{
		Message:       fmt.Sprintf("%d questions saved from %s", res.Inserted, source),
		Count:         res.Inserted,
		RunID:         runID,
		Pages:         res.Pages,
		SkippedChunks: res.SkippedChunks,
		ArtifactPath:  res.ArtifactPath,
	})
}
