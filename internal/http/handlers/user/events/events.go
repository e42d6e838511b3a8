package events

import (
	"errors"
	"net/http"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	s "medremind/internal/core/services/get_user_by_session_token"
	"medremind/internal/http/handlers/auth"
	"medremind/internal/http/handlers/response"

	"github.com/r3labs/sse/v2"
)

// Handler subscribes a client to its in-app reminder stream. The session
// token comes from a query parameter since EventSource cannot set headers.
type Handler struct {
	log       logging.Logger
	service   services.Service[s.Input, s.Result]
	sseServer *sse.Server
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[s.Input, s.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, sseServer: sseServer, service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" || len(token) > auth.AUTH_TOKEN_MAX_LEN {
		response.RenderUnauthorized(rw)
		return
	}

	result, err := h.service.Run(r.Context(), s.Input{Token: user.SessionToken(token)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	address, ok := result.User.ContactAddress()
	if !ok {
		response.RenderError(rw, "no contact address", http.StatusUnprocessableEntity)
		return
	}
	streamID := string(address)
	if !h.sseServer.StreamExists(streamID) {
		h.sseServer.CreateStream(streamID)
	}

	// The SSE server selects the stream by the "stream" query parameter.
	query := r.URL.Query()
	query.Set("stream", streamID)
	r.URL.RawQuery = query.Encode()

	go func() {
		// Received browser disconnection
		<-r.Context().Done()
		h.log.Info(
			r.Context(),
			"Unsubscribed from reminder events.",
			logging.Entry("userID", result.User.ID),
		)
	}()

	h.log.Info(
		r.Context(),
		"Subscribed to reminder events.",
		logging.Entry("userID", result.User.ID),
	)
	h.sseServer.ServeHTTP(rw, r)
}
