package http

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/halitkalayci/gyk-backend/internal/domain/apperrors"
)

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case apperrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case apperrors.IsUnauthorized(err):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case apperrors.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case apperrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	default:
		h.log.Error("internal error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// openUpload pulls the "file" part out of the multipart form and rejects
// anything that does not declare an image content type.
func (h *Handler) openUpload(c *gin.Context) (multipart.File, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, errUploadMissing
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return nil, errUploadNotImage
	}
	return fileHeader.Open()
}

// confidence reads the optional confidence query parameter; zero means "use
// the configured default". A present but unparsable or out-of-range value is
// an error, not a silent fallback.
func (h *Handler) confidence(c *gin.Context) (float64, error) {
	raw := c.Query("confidence")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 || v > 1 {
		return 0, errConfidenceInvalid
	}
	return v, nil
}

var (
	errUploadMissing     = &uploadError{"file is required"}
	errUploadNotImage    = &uploadError{"only image files are accepted"}
	errConfidenceInvalid = &uploadError{"confidence must be within (0, 1]"}
)

type uploadError struct{ msg string }

func (e *uploadError) Error() string { return e.msg }
