package reply

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"buyback/pkg/contextx"
	"buyback/pkg/errcodes"
	"buyback/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

func (e *errorResponse) WithDefaultCode(code failure.ErrorCode) {
	if e.Code == "" {
		e.Code = code.String()
	}
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// classifiedError is implemented by domain errors. The class decides the
// status code, the description is safe to show to the caller.
type classifiedError interface {
	error
	ErrorClass() errcodes.Class
	ErrorCode() failure.ErrorCode
	Description() string
}

type successResponse struct {
	Success bool `json:"success"`
}

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func Created(w http.ResponseWriter) {
	w.WriteHeader(http.StatusCreated)
}

func Success(ctx context.Context, w http.ResponseWriter) {
	JSON(ctx, w, http.StatusOK, successResponse{Success: true})
}

// Problem writes an error body for failures detected outside the domain,
// e.g. by middlewares.
func Problem(ctx context.Context, w http.ResponseWriter, statusCode int, code failure.ErrorCode, message string) {
	JSON(ctx, w, statusCode, errorResponse{
		Code:      code.String(),
		Message:   message,
		SupportID: supportID(ctx),
	})
}

func TooManyRequests(ctx context.Context, w http.ResponseWriter, retryAfter time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second).Seconds())))
	Problem(ctx, w, http.StatusTooManyRequests, errcodes.TooManyRequests, "Too many requests, try again later")
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	var domainErr classifiedError
	if errors.As(err, &domainErr) {
		classError(ctx, w, domainErr)
		return
	}

	logger(ctx).Error("error", logx.Error(err))

	response := errorResponse{
		Code:      failure.Code(err).String(),
		Message:   failure.Description(err),
		SupportID: supportID(ctx),
	}

	switch {
	case failure.IsInvalidArgumentError(err):
		response.WithDefaultCode(errcodes.ValidationError)
		JSON(ctx, w, http.StatusBadRequest, response)
	case failure.IsNotFoundError(err):
		response.WithDefaultCode(errcodes.NotFound)
		JSON(ctx, w, http.StatusNotFound, response)
	case failure.IsUnauthorizedError(err):
		JSON(ctx, w, http.StatusUnauthorized, response)
	case failure.IsForbiddenError(err):
		response.WithDefaultCode(errcodes.Forbidden)
		JSON(ctx, w, http.StatusForbidden, response)
	case failure.IsConflictError(err):
		JSON(ctx, w, http.StatusConflict, response)
	case failure.IsUnprocessableEntityError(err):
		JSON(ctx, w, http.StatusUnprocessableEntity, response)
	default:
		response.WithDefaultCode(errcodes.InternalServerError)
		JSON(ctx, w, http.StatusInternalServerError, response)
	}
}

func classError(ctx context.Context, w http.ResponseWriter, err classifiedError) {
	statusCode := statusByClass(err.ErrorClass())

	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	logger(ctx).Log(ctx, level, "error",
		slog.String(logx.FieldErrorClass, err.ErrorClass().String()),
		logx.Error(err),
	)

	response := errorResponse{
		Code:      err.ErrorCode().String(),
		Message:   err.Description(),
		SupportID: supportID(ctx),
	}

	if statusCode == http.StatusInternalServerError {
		response.WithDefaultCode(errcodes.InternalServerError)
	}

	JSON(ctx, w, statusCode, response)
}

func statusByClass(class errcodes.Class) int {
	switch class {
	case errcodes.ClassInvalidInput:
		return http.StatusBadRequest
	case errcodes.ClassNotFound:
		return http.StatusNotFound
	case errcodes.ClassForbidden:
		return http.StatusForbidden
	case errcodes.ClassInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
