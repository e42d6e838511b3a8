package listmedicines

import (
	"errors"
	"net/http"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/list_medicines"
	"medremind/internal/http/handlers/response"
	"time"
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
	Medicines  []response.MedicineWithIntakes `json:"medicines"`
	TakenToday uint                           `json:"taken_today"`
	Pending    uint                           `json:"pending"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	now := h.now()
	medicines := make([]response.MedicineWithIntakes, 0, len(result.Medicines))
	for _, dm := range result.Medicines {
		m := response.MedicineWithIntakes{}
		m.FromDomainType(dm, now)
		medicines = append(medicines, m)
	}
	response.Render(
		rw,
		Result{Medicines: medicines, TakenToday: result.TakenToday, Pending: result.Pending},
		http.StatusOK,
	)
}
