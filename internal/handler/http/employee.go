package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	SuspendEmployee(w http.ResponseWriter, r *http.Request)
	ReactivateEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	req.IsPrivileged = caller.IsAdmin

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{
		Category: queryString(r, "category"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 20),
	}

	if s := r.URL.Query().Get("suspended"); s != "" {
		if suspended, err := strconv.ParseBool(s); err == nil {
			filter.Suspended = &suspended
		}
	}

	result, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SuspendEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) SuspendEmployee(w http.ResponseWriter, r *http.Request) {
	req, ok := suspensionRequest(w, r)
	if !ok {
		return
	}

	result, err := h.employeeService.SuspendEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee suspended", result)
}

// ReactivateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) ReactivateEmployee(w http.ResponseWriter, r *http.Request) {
	req, ok := suspensionRequest(w, r)
	if !ok {
		return
	}

	result, err := h.employeeService.ReactivateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee reactivated", result)
}

func suspensionRequest(w http.ResponseWriter, r *http.Request) (employee.SuspensionRequest, bool) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return employee.SuspensionRequest{}, false
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return employee.SuspensionRequest{}, false
	}

	return employee.SuspensionRequest{
		EmployeeID:   id,
		IsPrivileged: caller.IsAdmin,
	}, true
}
