package http

import (
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Open(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	GetOpen(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Open implements AttendanceHandler.
func (h *attendanceHandlerImpl) Open(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req attendance.OpenSessionRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	req.EmployeeID = caller.EmployeeID

	result, err := h.attendanceService.OpenSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Resumed {
		response.SuccessWithMessage(w, "Session resumed", result)
		return
	}
	response.Created(w, "Session opened", result)
}

// Close implements AttendanceHandler.
func (h *attendanceHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.CloseSession(r.Context(), attendance.CloseSessionRequest{
		EmployeeID: caller.EmployeeID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session closed", result)
}

// GetOpen implements AttendanceHandler. Data is null when no session is open.
func (h *attendanceHandlerImpl) GetOpen(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.QueryOpenSession(r.Context(), caller.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Session ID is required", nil)
		return
	}

	result, err := h.attendanceService.GetSession(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Non-admins only see their own sessions; foreign IDs look missing.
	if !caller.IsAdmin && result.EmployeeID != caller.EmployeeID {
		response.HandleError(w, attendance.ErrSessionNotFound)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.SessionFilter{
		EmployeeID: queryString(r, "employee_id"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		OpenOnly:   r.URL.Query().Get("open_only") == "true",
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
		SortOrder:  r.URL.Query().Get("sort_order"),
	}

	result, err := h.attendanceService.ListSessions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
