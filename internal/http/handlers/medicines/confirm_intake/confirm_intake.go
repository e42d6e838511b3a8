package confirmintake

import (
	"errors"
	"net/http"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/medicine"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/confirm_intake"
	"medremind/internal/http/handlers/response"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
	now     func() time.Time
}

func New(
	service services.Service[service.Input, service.Result],
	now func() time.Time,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Handler{service: service, now: now}
}

type Result struct {
	Medicine response.MedicineWithIntakes `json:"medicine"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawMedicineID := chi.URLParam(r, "medicineID")
	medicineID, err := strconv.ParseInt(rawMedicineID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid medicine ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{MedicineID: medicine.ID(medicineID)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, medicine.ErrMedicineDoesNotExist):
			response.RenderNotFound(rw)
		case errors.Is(err, medicine.ErrMedicinePermission):
			response.RenderForbidden(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	m := response.MedicineWithIntakes{}
	m.FromDomainType(result.Medicine, h.now())
	response.Render(rw, Result{Medicine: m}, http.StatusOK)
}
