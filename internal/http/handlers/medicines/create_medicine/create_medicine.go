package createmedicine

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/medicine"
	ratelimiter "medremind/internal/core/domain/rate_limiter"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	service "medremind/internal/core/services/create_medicine"
	"medremind/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
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

type Input struct {
	Name          string  `json:"name"`
	Dosage        string  `json:"dosage"`
	TimeOfDay     string  `json:"time_of_day"`
	AttachmentRef *string `json:"attachment_ref"`
}

type Result struct {
	Medicine response.Medicine `json:"medicine"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Dosage, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.TimeOfDay, validation.Required),
		validation.Field(&i.AttachmentRef, validation.Length(0, 1024)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	timeOfDay, err := medicine.ParseClockTime(input.TimeOfDay)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	var attachmentRef c.Optional[string]
	if input.AttachmentRef != nil {
		attachmentRef = c.NewOptional(*input.AttachmentRef, true)
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Name:          input.Name,
			Dosage:        input.Dosage,
			TimeOfDay:     timeOfDay,
			AttachmentRef: attachmentRef,
		},
	)
	if err != nil {
		var invalidState *e.InvalidStateError
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.As(err, &invalidState):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	m := response.Medicine{}
	m.FromDomainType(result.Medicine)
	response.Render(rw, Result{Medicine: m}, http.StatusCreated)
}
