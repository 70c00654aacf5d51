package http

import (
	"errors"
	"net/http"

	"github.com/AlibekovAA/interview-board/internal/common/config"
	"github.com/AlibekovAA/interview-board/internal/common/constants"
	commonerrors "github.com/AlibekovAA/interview-board/internal/common/errors"
	commonhttp "github.com/AlibekovAA/interview-board/internal/common/http"
	"github.com/AlibekovAA/interview-board/internal/common/logger"
	"github.com/AlibekovAA/interview-board/internal/submission/domain"
	"github.com/AlibekovAA/interview-board/internal/submission/service"
)

// SessionResolver yields the id of the user a request belongs to, or an error
// when it carries no valid session.
type SessionResolver interface {
	ResolveUserID(r *http.Request) (string, error)
}

var errNullQuestion = errors.New("questions must not contain null")

// createRequest keeps null questions distinguishable from empty strings; the
// store cannot hold a null element.
type createRequest struct {
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Company   string    `json:"company"`
	Questions []*string `json:"questions"`
}

func (req createRequest) toInput() (service.CreateInput, error) {
	input := service.CreateInput{
		Name:    req.Name,
		Country: req.Country,
		Company: req.Company,
	}
	if req.Questions == nil {
		return input, nil
	}

	input.Questions = make([]string, 0, len(req.Questions))
	for _, q := range req.Questions {
		if q == nil {
			return service.CreateInput{}, errNullQuestion
		}
		input.Questions = append(input.Questions, *q)
	}
	return input, nil
}

type Handler struct {
	submissions      *service.Service
	sessions         SessionResolver
	errors           *commonhttp.ErrorHandler
	defaultPageLimit int
	log              *logger.Logger
}

func NewHandler(submissions *service.Service, sessions SessionResolver, cfg config.SubmissionsConfig, log *logger.Logger) http.Handler {
	limit := cfg.DefaultPageLimit
	if limit <= 0 {
		limit = constants.DefaultPageLimit
	}

	h := &Handler{
		submissions:      submissions,
		sessions:         sessions,
		errors:           commonhttp.NewErrorHandler(log),
		defaultPageLimit: limit,
		log:              log,
	}

	timeout := commonhttp.WithTimeout(cfg.RequestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.HandleFunc("/api/submissions", timeout(h.submissionsRoute))
	return mux
}

func (h *Handler) submissionsRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		commonhttp.WriteErrorCode(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, err := h.sessions.ResolveUserID(r)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	// An undecodable body is reported like any other unexpected failure.
	var req createRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errors.HandleError(w, r, commonerrors.ErrInternalError.WithCause(err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.errors.HandleError(w, r, commonerrors.ErrInternalError.WithCause(err))
		return
	}

	created, err := h.submissions.Create(r.Context(), userID, input)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, created)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	query := domain.PageQuery{
		Page:  commonhttp.PositiveIntParam(values.Get("page"), constants.DefaultPage),
		Limit: commonhttp.PositiveIntParam(values.Get("limit"), h.defaultPageLimit),
	}

	page, err := h.submissions.List(r.Context(), query)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, page)
}
