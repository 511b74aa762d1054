package reportinghttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/clinstat-erp/clinstat/internal/platform/httpx"
	"github.com/clinstat-erp/clinstat/internal/reporting"
)

const dateLayout = "2006-01-02"

// ReportService defines the engine contract used by the handler.
type ReportService interface {
	Generate(ctx context.Context, req reporting.Request) (*reporting.Report, error)
}

// Guard is the external permission collaborator: it either allows or forbids
// invoking the engine for the current request.
type Guard interface {
	Allow(r *http.Request, rapport reporting.ReportType) error
}

// AllowAll is the development guard.
type AllowAll struct{}

// Allow always grants access.
func (AllowAll) Allow(*http.Request, reporting.ReportType) error { return nil }

// Handler coordinates HTTP requests for report generation.
type Handler struct {
	logger    *slog.Logger
	service   ReportService
	guard     Guard
	validator *validator.Validate
}

// NewHandler constructs the reporting HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService, guard Guard) *Handler {
	if guard == nil {
		guard = AllowAll{}
	}
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     guard,
		validator: validator.New(),
	}
}

type reportForm struct {
	DateDebut   string   `json:"dateDebut" validate:"required"`
	DateFin     string   `json:"dateFin" validate:"required"`
	Rapport     string   `json:"rapport" validate:"required"`
	IDCliniques []int64  `json:"idCliniques" validate:"required,min=1"`
	IDActivite  []string `json:"idActivite"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var form reportForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	req, err := form.toRequest()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	if err := h.guard.Allow(r, req.Rapport); err != nil {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}

	report, err := h.service.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, reporting.ErrNoClinics) || errors.Is(err, reporting.ErrUnknownReportType) {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		h.logger.Error("report generation failed",
			slog.String("rapport", form.Rapport), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, report)
}

func (form reportForm) toRequest() (reporting.Request, error) {
	dateDebut, err := time.Parse(dateLayout, form.DateDebut)
	if err != nil {
		return reporting.Request{}, errors.New("dateDebut must be YYYY-MM-DD")
	}
	dateFin, err := time.Parse(dateLayout, form.DateFin)
	if err != nil {
		return reporting.Request{}, errors.New("dateFin must be YYYY-MM-DD")
	}

	req := reporting.Request{
		DateDebut:   dateDebut,
		DateFin:     dateFin,
		Rapport:     reporting.ReportType(form.Rapport),
		CliniqueIDs: form.IDCliniques,
	}
	for _, raw := range form.IDActivite {
		ref, err := reporting.ParseActivityRef(raw)
		if err != nil {
			return reporting.Request{}, err
		}
		req.Activites = append(req.Activites, ref)
	}
	return req, nil
}
