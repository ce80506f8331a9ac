package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"cinemarathi_backend/internal/logger"
	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/validator"
	"cinemarathi_backend/pkg/apperrors"
	"cinemarathi_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// Base handler
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// GetDB returns the *gorm.DB (pool or transaction) DBMiddleware put on the context.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}
	return db
}

// ============================================================================
// Binding and validation
// ============================================================================

// BindAndValidateJSON decodes the body into obj. An empty body leaves obj
// zeroed so services can report their own missing-field messages.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	if h.validator == nil {
		return true
	}
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// Error responses
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	h.logServiceError(c, err)
	apperrors.HandleError(c, err)
}

// HandleStatusError is HandleServiceError for endpoints whose bodies carry a
// status flag.
func (h *BaseHandler) HandleStatusError(c *gin.Context, err error) {
	h.logServiceError(c, err)
	apperrors.HandleStatusError(c, err)
}

func (h *BaseHandler) logServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.HTTPCode < http.StatusInternalServerError {
		logger.CtxWarn(ctx, "Service error", "error", appErr.Message, "details", appErr.Details, "path", c.Request.URL.Path)
		return
	}
	logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
}

// ============================================================================
// Request helpers
// ============================================================================

// GetAndAuthorizeUserID returns the authenticated user id set by AuthMiddleware.
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (int64, bool) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: userID not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.ErrNoToken)
		return 0, false
	}
	return userID, true
}

// ParamID parses a positive integer path parameter, answering 400 otherwise.
func (h *BaseHandler) ParamID(c *gin.Context, key string) (int64, bool) {
	id, err := ParseParamInt(c, key)
	if err != nil || id <= 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid "+key))
		return 0, false
	}
	return int64(id), true
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func ParseParamInt(c *gin.Context, key string) (int, error) {
	valueStr := c.Param(key)
	if valueStr == "" {
		return 0, apperrors.NewBadRequestError("Missing required path parameter: " + key)
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, apperrors.NewBadRequestError("Invalid path parameter: " + key + " is not an integer")
	}
	return value, nil
}

// ParsePagination reads page and limit. Non-positive values fall back to
// page 1 and defaultLimit.
func ParsePagination(c *gin.Context, defaultLimit int) (page int, limit int) {
	const maxLimit = 100

	page = ParseQueryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}
	limit = ParseQueryInt(c, "limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// ============================================================================
// Multipart helpers
// ============================================================================

// FormFile reads one multipart file. A missing field yields nil so the
// service can answer with its own message.
func (h *BaseHandler) FormFile(c *gin.Context, field string) (*services.FileUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperrors.NewBadRequestError("Failed to read upload: " + err.Error())
	}
	return readUpload(header)
}

// FormFiles reads every file sent under field.
func (h *BaseHandler) FormFiles(c *gin.Context, field string) ([]*services.FileUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperrors.NewBadRequestError("Failed to read upload: " + err.Error())
	}

	headers := form.File[field]
	files := make([]*services.FileUpload, 0, len(headers))
	for _, header := range headers {
		f, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func readUpload(header *multipart.FileHeader) (*services.FileUpload, error) {
	if header.Size > services.MaxUploadSize {
		return nil, apperrors.ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadSize+1))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(data) > services.MaxUploadSize {
		return nil, apperrors.ErrFileTooLarge
	}

	return &services.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
