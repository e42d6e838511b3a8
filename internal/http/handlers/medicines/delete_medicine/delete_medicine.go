package deletemedicine

import (
	"errors"
	"net/http"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/medicine"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/delete_medicine"
	"medremind/internal/http/handlers/response"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Medicine response.Medicine `json:"medicine"`
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

	m := response.Medicine{}
	m.FromDomainType(result.Medicine)
	response.Render(rw, Result{Medicine: m}, http.StatusOK)
}
