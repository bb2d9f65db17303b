package handler

import (
	"strconv"

	"github.com/ancarat/orderdesk/internal/application/service"
	"github.com/ancarat/orderdesk/internal/domain/enum"
	"github.com/ancarat/orderdesk/internal/presentation/http/dto/request"
	"github.com/ancarat/orderdesk/internal/presentation/http/dto/response"
	"github.com/ancarat/orderdesk/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles operator account administration HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles listing operator accounts
// @Summary List Users
// @Description Get a paginated list of operator accounts
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Success 200 {object} response.APIResponse
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
	params.Validate()

	result, err := h.userService.ListUsers(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Users retrieved successfully", result)
}

// Create handles creating an operator account
// @Summary Create User
// @Description Create a new operator account
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateUserRequest true "Account data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req request.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &service.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     enum.Role(req.Role),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", gin.H{
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"full_name": user.FullName,
			"role":      user.Role,
		},
	})
}

// Delete handles removing an operator account
// @Summary Delete User
// @Description Remove an operator account
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if userID := GetUserID(c); userID != nil && *userID == id {
		response.BadRequest(c, "You cannot delete your own account")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User deleted successfully", nil)
}
