package handler

import (
	"net/http"

	"clinic-booking/internal/delivery/http/middleware"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/query"
	"clinic-booking/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// userSortFields is the admin user list's sortBy allow-list.
var userSortFields = []string{"created_at", "email", "first_name", "last_name"}

type UserHandler struct {
	userAdminUsecase usecase.UserAdminUsecase
}

func NewUserHandler(userAdminUsecase usecase.UserAdminUsecase) *UserHandler {
	return &UserHandler{userAdminUsecase: userAdminUsecase}
}

// GetUsers serves the admin user list with role/state filters, name
// search, date range, sorting, and pagination.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	pagination, err := query.ParsePagination(values)
	if err != nil {
		writeParamError(w, err)
		return
	}

	roleName, err := query.ParseEnum(values, "role", entity.RoleNames)
	if err != nil {
		writeParamError(w, err)
		return
	}
	var roleID *int
	if roleName != "" {
		id, _ := entity.RoleIDByName(roleName)
		roleID = &id
	}

	verified, err := query.ParseBool(values, "verified")
	if err != nil {
		writeParamError(w, err)
		return
	}

	active, err := query.ParseBool(values, "active")
	if err != nil {
		writeParamError(w, err)
		return
	}

	from, to, err := query.ParseDateRange(values)
	if err != nil {
		writeParamError(w, err)
		return
	}

	sortBy, sortOrder := query.ParseSort(values, userSortFields, "created_at")

	filter := &entity.UserFilter{
		RoleID:    roleID,
		Verified:  verified,
		Active:    active,
		NameTerms: query.ParseSearchTerms(values, "search"),
		From:      from,
		To:        to,
		Page: entity.ListPage{
			Offset:    pagination.Offset(),
			Limit:     pagination.PageSize,
			SortBy:    sortBy,
			SortOrder: sortOrder,
		},
	}

	users, total, err := h.userAdminUsecase.ListUsers(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Users retrieved successfully", users, buildMeta(pagination, total))
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	user, err := h.userAdminUsecase.GetUser(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

// VerifyDoctor marks a doctor account as reviewed by an admin.
func (h *UserHandler) VerifyDoctor(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	user, err := h.userAdminUsecase.VerifyDoctor(r.Context(), adminID, doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to verify doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor verified successfully", user)
}

func (h *UserHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *UserHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	user, err := h.userAdminUsecase.SetUserActive(r.Context(), adminID, userID, active)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrCannotModifySelf:
			response.Error(w, http.StatusConflict, "Cannot change your own account state", nil)
		default:
			response.InternalServerError(w, "Failed to update user")
		}
		return
	}

	message := "User activated successfully"
	if !active {
		message = "User deactivated successfully"
	}
	response.Success(w, http.StatusOK, message, user)
}
