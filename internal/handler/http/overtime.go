package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendhub/attend-backend-go/internal/domain/overtime"
	"github.com/attendhub/attend-backend-go/internal/domain/user"
	"github.com/attendhub/attend-backend-go/internal/handler/http/response"
	overtimeService "github.com/attendhub/attend-backend-go/internal/service/overtime"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type OvertimeHandlerImpl struct {
	overtimeService *overtimeService.Service
	users           user.UserRepository
}

func NewOvertimeHandler(service *overtimeService.Service, users user.UserRepository) OvertimeHandler {
	return &OvertimeHandlerImpl{
		overtimeService: service,
		users:           users,
	}
}

// Create implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, o.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create overtime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	app, err := o.overtimeService.Create(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime application submitted", overtime.ToApplicationResponse(app))
}

// Get implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, o.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	app, err := o.overtimeService.Get(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, overtime.ToApplicationResponse(app))
}

// GetMyRequests implements OvertimeHandler.
func (o *OvertimeHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, o.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	apps, err := o.overtimeService.ListMine(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, overtime.ToApplicationResponses(apps))
}

// ListPending implements OvertimeHandler.
func (o *OvertimeHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, o.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	apps, err := o.overtimeService.ListPendingFor(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, overtime.ToApplicationResponses(apps))
}

// Update implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, o.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.UpdateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update overtime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	app, err := o.overtimeService.Update(r.Context(), chi.URLParam(r, "id"), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime application updated", overtime.ToApplicationResponse(app))
}

// Decide implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, o.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide overtime decode error", "error", err)
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

	app, err := o.overtimeService.Decide(r.Context(), chi.URLParam(r, "id"), actor, req.Approved, comment)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", overtime.ToApplicationResponse(app))
}

// Cancel implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, o.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	app, err := o.overtimeService.Cancel(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime application cancelled", overtime.ToApplicationResponse(app))
}

// Delete implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r, o.users)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := o.overtimeService.Delete(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}
