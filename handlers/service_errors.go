package handlers

import (
	"net/http"

	"github.com/carromarket/backend/services"
	"github.com/carromarket/backend/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses. Invalid
// credentials and unauthorized both become the same 401 wording so a caller
// cannot tell a bad password from a bad token from a missing account.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	switch {
	case services.IsInvalidCredentialsError(err), services.IsUnauthorizedError(err):
		if werr := utils.WriteUnauthorized(w, "authentication failed"); werr != nil {
			logger.Error("failed to write unauthorized response", zap.Error(werr))
		}

	case services.IsForbiddenError(err):
		if werr := utils.WriteForbidden(w, err.Error()); werr != nil {
			logger.Error("failed to write forbidden response", zap.Error(werr))
		}

	case services.IsConflictError(err):
		if werr := utils.WriteConflict(w, err.Error(), services.GetErrorDetails(err)); werr != nil {
			logger.Error("failed to write conflict response", zap.Error(werr))
		}

	case services.IsNotFoundError(err):
		if werr := utils.WriteNotFound(w, err.Error()); werr != nil {
			logger.Error("failed to write not found response", zap.Error(werr))
		}

	case services.IsValidationError(err):
		if werr := utils.WriteBadRequest(w, err.Error(), services.GetErrorDetails(err)); werr != nil {
			logger.Error("failed to write bad request response", zap.Error(werr))
		}

	case services.IsUnavailableError(err):
		// Surface store unreachability honestly rather than guessing an auth outcome
		logger.Error("dependency unavailable", zap.Error(err))
		if werr := utils.WriteUnavailable(w, "service temporarily unavailable"); werr != nil {
			logger.Error("failed to write unavailable response", zap.Error(werr))
		}

	default:
		logger.Error("unhandled service error",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		if werr := utils.WriteInternalServerError(w, "an internal error occurred"); werr != nil {
			logger.Error("failed to write internal error response", zap.Error(werr))
		}
	}
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		fields := utils.GetValidationFields(err)
		details := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			details[k] = v
		}
		if werr := utils.WriteBadRequest(w, "validation failed", details); werr != nil {
			logger.Error("failed to write validation error response", zap.Error(werr))
		}
		return
	}

	if werr := utils.WriteBadRequest(w, err.Error(), nil); werr != nil {
		logger.Error("failed to write validation error response", zap.Error(werr))
	}
}
