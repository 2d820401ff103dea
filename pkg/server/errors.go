package server

import (
	"net/http"

	"github.com/matzehuels/drawkit/pkg/errors"
)

// StatusCode maps an error to its HTTP status:
//
//	INVALID_*, OUT_OF_RANGE        400
//	NOT_FOUND, FILE_NOT_FOUND      404
//	UNSUPPORTED                    415
//	DEGENERATE_GEOMETRY            422
//	EXTERNAL_TOOL                  502
//	anything else                  500
func StatusCode(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidScene, errors.ErrCodeInvalidPath, errors.ErrCodeOutOfRange:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case errors.ErrCodeDegenerateGeometry:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeExternalTool:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// writeError writes err as {"error": {...}}. Internal errors are logged and
// answered with a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	body := errorBody{
		Code:      errors.GetCode(err),
		Message:   errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	}
	if body.Code == "" {
		body.Code = errors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", body.RequestID, "err", err)
		body.Message = http.StatusText(status)
	}
	writeJSON(w, status, map[string]errorBody{"error": body})
}

func notFound(format string, args ...any) error {
	return errors.New(errors.ErrCodeNotFound, format, args...)
}
