package http

import (
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/workentry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkEntryHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type workEntryHandlerImpl struct {
	workEntryService workentry.WorkEntryService
}

func NewWorkEntryHandler(workEntryService workentry.WorkEntryService) WorkEntryHandler {
	return &workEntryHandlerImpl{
		workEntryService: workEntryService,
	}
}

// Submit implements WorkEntryHandler.
func (h *workEntryHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req workentry.SubmitWorkEntryRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	req.EmployeeID = caller.EmployeeID

	result, err := h.workEntryService.SubmitWorkEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work entry submitted", result)
}

// List implements WorkEntryHandler. Admins may filter by employee_id; everyone
// else is pinned to their own entries.
func (h *workEntryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	filter := workentry.WorkEntryFilter{
		EmployeeID: queryString(r, "employee_id"),
		Status:     queryString(r, "status"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
	}
	if !caller.IsAdmin {
		filter.EmployeeID = &caller.EmployeeID
	}

	result, err := h.workEntryService.ListWorkEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *workEntryHandlerImpl) accessRequest(w http.ResponseWriter, r *http.Request) (workentry.AccessRequest, bool) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return workentry.AccessRequest{}, false
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work entry ID is required", nil)
		return workentry.AccessRequest{}, false
	}

	return workentry.AccessRequest{
		ID:           id,
		EmployeeID:   caller.EmployeeID,
		IsPrivileged: caller.IsAdmin,
	}, true
}

// Get implements WorkEntryHandler.
func (h *workEntryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	req, ok := h.accessRequest(w, r)
	if !ok {
		return
	}

	result, err := h.workEntryService.GetWorkEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements WorkEntryHandler.
func (h *workEntryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	access, ok := h.accessRequest(w, r)
	if !ok {
		return
	}

	var req workentry.UpdateWorkEntryRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	req.ID = access.ID
	req.EmployeeID = access.EmployeeID
	req.IsPrivileged = access.IsPrivileged

	result, err := h.workEntryService.UpdateWorkEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work entry updated", result)
}

// Delete implements WorkEntryHandler.
func (h *workEntryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	req, ok := h.accessRequest(w, r)
	if !ok {
		return
	}

	if err := h.workEntryService.DeleteWorkEntry(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work entry deleted", nil)
}
