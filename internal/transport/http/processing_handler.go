package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"sheetops/internal/dataprocessing"
	apierrors "sheetops/internal/errors"
	"sheetops/internal/middleware"
	"sheetops/internal/services"
	apiv1 "sheetops/pkg/contracts/api/v1"
	"sheetops/pkg/contracts/domain"
)

// RowsRejectedHeader reports how many input rows failed coercion
const RowsRejectedHeader = "X-Rows-Rejected"

// multipartMemory is the part of an upload kept in memory before spilling to disk
const multipartMemory = 8 << 20

// ProcessingHandler handles the processing endpoints
type ProcessingHandler struct {
	service      ProcessingServiceInterface
	validator    *middleware.Validator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewProcessingHandler creates a new processing handler
func NewProcessingHandler(service ProcessingServiceInterface, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *ProcessingHandler {
	if service == nil {
		panic("service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if errorHandler == nil {
		errorHandler = apierrors.NewErrorHandler(logger, false)
	}

	return &ProcessingHandler{
		service:      service,
		validator:    middleware.NewValidator(),
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("handler", "processing")),
	}
}

// Routes sets up the processing routes
func (h *ProcessingHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentType(h.errorHandler, "application/json"))
		r.Post("/payroll", h.Payroll)
		r.Post("/risk", h.Risk)
		r.Post("/compliance", h.Compliance)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentType(h.errorHandler, "multipart/form-data"))
		r.Post("/{op}/upload", h.Upload)
	})

	return r
}

// Payroll handles POST /api/v1/payroll
func (h *ProcessingHandler) Payroll(w http.ResponseWriter, r *http.Request) {
	var req apiv1.PayrollRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.ProcessPayroll(r.Context(), *req.Employee, *req.Attendance, *req.Salary)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.respond(w, r, result.Records, result.Issues)
}

// Risk handles POST /api/v1/risk
func (h *ProcessingHandler) Risk(w http.ResponseWriter, r *http.Request) {
	var req apiv1.RiskRequest
	if !h.decode(w, r, &req) {
		return
	}

	report, err := h.service.AnalyzeRisk(r.Context(), *req.Transactions, *req.Master)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.respond(w, r, report, report.Issues)
}

// Compliance handles POST /api/v1/compliance
func (h *ProcessingHandler) Compliance(w http.ResponseWriter, r *http.Request) {
	var req apiv1.ComplianceRequest
	if !h.decode(w, r, &req) {
		return
	}

	report, err := h.service.CheckCompliance(r.Context(), *req.UserAccess, *req.AccessMatrix, *req.Exceptions)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.respond(w, r, report, nil)
}

// Upload handles POST /api/v1/{op}/upload. Each table arrives as a workbook
// in the form part named after it; parts are parsed concurrently.
func (h *ProcessingHandler) Upload(w http.ResponseWriter, r *http.Request) {
	op, err := services.ParseOperation(chi.URLParam(r, "op"))
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusNotFound, "NOT_FOUND", err.Error(), chi.URLParam(r, "op")))
		return
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	names := op.Tables()
	files := make([]multipart.File, len(names))
	defer func() {
		for _, f := range files {
			if f != nil {
				f.Close()
			}
		}
	}()

	var missing []apierrors.ValidationError
	for i, name := range names {
		f, _, err := r.FormFile(name)
		if err != nil {
			missing = append(missing, apierrors.ValidationError{
				Field:   name,
				Message: fmt.Sprintf("%s workbook is required", name),
			})
			continue
		}
		files[i] = f
	}
	if len(missing) > 0 {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationErrors(missing))
		return
	}

	tables := make([]domain.Table, len(names))
	g, _ := errgroup.WithContext(r.Context())
	for i := range names {
		i := i
		g.Go(func() error {
			t, err := dataprocessing.ParseWorkbook(files[i])
			if err != nil {
				return apierrors.WorkbookInvalidError(names[i], err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	byName := make(map[string]domain.Table, len(names))
	for i, name := range names {
		byName[name] = tables[i]
	}

	h.logger.DebugContext(r.Context(), "workbooks parsed",
		slog.String("operation", string(op)),
		slog.Int("tables", len(names)))

	result, err := h.service.Run(r.Context(), op, byName)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.respond(w, r, result.Body(), result.Issues())
}

// decode reads a JSON body into v and validates it. It writes the error
// response itself and reports whether the handler should continue.
func (h *ProcessingHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			h.errorHandler.HandleError(w, r, err)
		case errors.Is(err, io.EOF):
			h.errorHandler.HandleError(w, r, apierrors.NewValidationError("request body is empty"))
		default:
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		}
		return false
	}

	if err := h.validator.ValidateStruct(v); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return false
	}
	return true
}

func (h *ProcessingHandler) respond(w http.ResponseWriter, r *http.Request, body interface{}, issues []domain.ValidationIssue) {
	if len(issues) > 0 {
		w.Header().Set(RowsRejectedHeader, strconv.Itoa(len(issues)))
		h.logger.WarnContext(r.Context(), "rows rejected",
			slog.String("path", r.URL.Path),
			slog.Int("count", len(issues)))
	}
	render.JSON(w, r, body)
}
