package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/workday"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	MyBalances(w http.ResponseWriter, r *http.Request)
	MyRecords(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	AdjustBalance(w http.ResponseWriter, r *http.Request)
	EmployeeBalances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	clock        *workday.Clock
}

func NewLeaveHandler(leaveService leave.LeaveService, clock *workday.Clock) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		clock:        clock,
	}
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req leave.ApplyLeaveRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	req.EmployeeID = caller.EmployeeID

	result, err := l.leaveService.ApplyLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave recorded", result)
}

// MyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) MyBalances(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	l.writeBalances(w, r, caller.EmployeeID)
}

// EmployeeBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) EmployeeBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	l.writeBalances(w, r, employeeID)
}

func (l *LeaveHandlerImpl) writeBalances(w http.ResponseWriter, r *http.Request, employeeID string) {
	result, err := l.leaveService.ListBalances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyRecords implements LeaveHandler.
func (l *LeaveHandlerImpl) MyRecords(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	filter := leave.RecordFilter{
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
	}

	result, err := l.leaveService.ListLeaveRecords(r.Context(), caller.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Status implements LeaveHandler. The date defaults to today.
func (l *LeaveHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var date time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := workday.ParseDate(raw)
		if err != nil {
			response.HandleError(w, validator.ValidationErrors{{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			}})
			return
		}
		date = parsed
	} else {
		date = l.clock.Today()
	}

	onLeave, err := l.leaveService.IsOnLeave(r.Context(), caller.EmployeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.LeaveStatusResponse{
		EmployeeID: caller.EmployeeID,
		Date:       workday.FormatDate(date),
		OnLeave:    onLeave,
	})
}

// AdjustBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req leave.AdjustBalanceRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	req.IsPrivileged = caller.IsAdmin

	result, err := l.leaveService.AdjustAllocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance adjusted", result)
}
