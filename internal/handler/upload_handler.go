package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/amohooo/cv-app/internal/errors"
)

// UploadHandler stores uploaded files on disk and hands back the URL the
// content tree stores as an opaque string.
type UploadHandler struct {
	uploadDir string
}

// NewUploadHandler creates a new upload handler rooted at uploadDir.
func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{uploadDir: uploadDir}
}

// UploadResponse carries the stored file's URL and its original name.
type UploadResponse struct {
	URL          string `json:"url"`
	OriginalName string `json:"originalName"`
}

// Upload godoc
// @Summary Upload a file
// @Description Saves the file under a random name and returns its URL. The original filename is preserved for display only.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "file is required",
			Code:  "FILE_REQUIRED",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to read upload",
			Code:  "UPLOAD_FAILED",
		})
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to store upload",
			Code:  "UPLOAD_FAILED",
		})
	}

	// Random stored name; the extension is kept so static serving sets a
	// sensible content type.
	storedName := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	dst, err := os.Create(filepath.Join(h.uploadDir, storedName))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to store upload",
			Code:  "UPLOAD_FAILED",
		})
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to store upload",
			Code:  "UPLOAD_FAILED",
		})
	}

	return c.JSON(http.StatusCreated, UploadResponse{
		URL:          "/uploads/" + storedName,
		OriginalName: fileHeader.Filename,
	})
}
