package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendhub/attend-backend-go/internal/domain/leave"
	"github.com/attendhub/attend-backend-go/internal/domain/user"
	"github.com/attendhub/attend-backend-go/internal/handler/http/response"
	leaveService "github.com/attendhub/attend-backend-go/internal/service/leave"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leaveService.Service
	users        user.UserRepository
}

func NewLeaveHandler(service *leaveService.Service, users user.UserRepository) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: service,
		users:        users,
	}
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := l.leaveService.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.ToLeaveTypeResponses(types))
}

// Create implements LeaveHandler.
func (l *LeaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, l.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	app, err := l.leaveService.Create(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted", leave.ToApplicationResponse(app))
}

// Get implements LeaveHandler.
func (l *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, l.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	app, err := l.leaveService.Get(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.ToApplicationResponse(app))
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, l.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	apps, err := l.leaveService.ListMine(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.ToApplicationResponses(apps))
}

// ListPending implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, l.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	apps, err := l.leaveService.ListPendingFor(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.ToApplicationResponses(apps))
}

// Decide implements LeaveHandler.
func (l *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, l.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}

	app, err := l.leaveService.Decide(r.Context(), chi.URLParam(r, "id"), actor, req.Approved, comment)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", leave.ToApplicationResponse(app))
}

// Cancel implements LeaveHandler.
func (l *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, l.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	app, err := l.leaveService.Cancel(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application cancelled", leave.ToApplicationResponse(app))
}

// Delete implements LeaveHandler.
func (l *LeaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, l.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := l.leaveService.Delete(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}
