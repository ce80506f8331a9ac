package apperrors

import (
	"net/http"
)

// Shared failures reused across modules. Messages are part of the public API.

var ErrNoToken = New(CodeUnauthorized, "auth", "No token provided", http.StatusUnauthorized)

var ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid token", http.StatusUnauthorized)

var ErrAdminRequired = New(CodeForbidden, "auth", "Admin access required", http.StatusForbidden)

var ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid credentials", http.StatusUnauthorized)

var ErrMissingRequiredFields = New(CodeValidationFailed, "request", "Missing required fields", http.StatusBadRequest)

var ErrNoFieldsToUpdate = New(CodeValidationFailed, "request", "No fields to update", http.StatusBadRequest)

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

var ErrNotAuthorized = New(CodeForbidden, "auth", "Not authorized", http.StatusForbidden)

var ErrFileRequired = New(CodeValidationFailed, "upload", "No file uploaded", http.StatusBadRequest)

var ErrFileTooLarge = New(CodeLimitExceeded, "upload", "File size exceeds the 10MB limit", http.StatusBadRequest)

var ErrInvalidFileType = New(CodeValidationFailed, "upload", "Only image files are allowed", http.StatusBadRequest)
