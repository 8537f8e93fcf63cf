// User HTTP handlers.
//
// This file exposes REST endpoints for user resources:
//   - GET    /users        (list, optionally paginated)
//   - GET    /users/{id}   (fetch one)
//   - POST   /users        (create)
//   - PUT    /users/{id}   (partial update)
//   - DELETE /users/{id}   (delete)
//
// Handlers are transport-thin: request bodies are validated upstream by
// schema middleware, business rules live in the service layer, and failures
// are reported via c.Error for the error translator to render. A handler's
// only jobs are binding input, calling the service, and writing the success
// envelope.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tbourn/go-user-backend/internal/domain"
	"github.com/tbourn/go-user-backend/internal/services"
	"github.com/tbourn/go-user-backend/internal/utils"
)

// UserService defines the user lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type UserService interface {
	// GetAll returns every user, name-ordered.
	GetAll(ctx context.Context) ([]domain.User, error)
	// ListPage returns a page of users and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.User, int64, error)
	// GetByID returns one user or a NotFound failure.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// Create registers a new user; duplicate emails yield a Conflict failure.
	Create(ctx context.Context, in services.CreateUserInput) (*domain.User, error)
	// Update applies the non-nil fields of in to an existing user.
	Update(ctx context.Context, id string, in services.UpdateUserInput) (*domain.User, error)
	// Delete removes a user or reports NotFound.
	Delete(ctx context.Context, id string) error
}

// Handlers groups the HTTP endpoints for user resources.
type Handlers struct {
	userSvc UserService
}

// New constructs a Handlers instance bound to the given service.
func New(userSvc UserService) *Handlers {
	return &Handlers{userSvc: userSvc}
}

//
// DTOs
//

// CreateUserRequest is the JSON payload for registering a user.
type CreateUserRequest struct {
	Email    string `json:"email" example:"john.doe@example.com"`
	Name     string `json:"name" example:"John Doe"`
	Password string `json:"password" example:"s3cret-pass"`
}

// UpdateUserRequest is the JSON payload for updating a user. Absent fields
// are left unchanged.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" example:"john.doe@example.com"`
	Name     *string `json:"name,omitempty" example:"John Doe"`
	Password *string `json:"password,omitempty" example:"s3cret-pass"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListUsersPage wraps a page of users and pagination information.
type ListUsersPage struct {
	Users      []domain.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// clampPagination parses and bounds the page and page_size query params,
// returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(
		utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

//
// Handlers
//

// ListUsers godoc
// @ID          listUsers
// @Summary     List users
// @Description Returns all users, or a page of users when page/page_size query params are given.
// @Tags        Users
// @Produce     json
//
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.Response
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	// Unpaginated by default; the page shape is opt-in via query params.
	if c.Query("page") == "" && c.Query("page_size") == "" {
		users, err := h.userSvc.GetAll(ctx)
		if err != nil {
			c.Error(err)
			return
		}
		ok(c, http.StatusOK, "Users retrieved successfully", users)
		return
	}

	page, pageSize := clampPagination(c)
	users, total, err := h.userSvc.ListPage(ctx, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, "Users retrieved successfully", ListUsersPage{
		Users: users,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetUser godoc
// @ID          getUser
// @Summary     Fetch a user
// @Description Returns a single user by ID.
// @Tags        Users
// @Produce     json
//
// @Param       id  path  string  true  "User ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.Response  "User not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "User retrieved successfully", u)
}

// CreateUser godoc
// @ID          createUser
// @Summary     Register a user
// @Description Creates a user. The payload is validated against the create schema; duplicate emails are rejected.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateUserRequest  true  "Create user payload"
//
// @Success     201  {object}  handlers.Response
// @Failure     400  {object}  handlers.Response  "Validation failed"
// @Failure     409  {object}  handlers.Response  "Email already exists"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	// The schema middleware already bound and cached the body; this re-bind
	// cannot fail on JSON shape.
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.Error(err)
		return
	}

	u, err := h.userSvc.Create(c.Request.Context(), services.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusCreated, "User created successfully", u)
}

// UpdateUser godoc
// @ID          updateUser
// @Summary     Update a user
// @Description Applies the provided fields to an existing user. Absent fields are left unchanged.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                      true  "User ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateUserRequest  true  "Update user payload"
//
// @Success     200  {object}  handlers.Response
// @Failure     400  {object}  handlers.Response  "Validation failed"
// @Failure     404  {object}  handlers.Response  "User not found"
// @Failure     409  {object}  handlers.Response  "Email already exists"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/{id} [put]
func (h *Handlers) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.Error(err)
		return
	}

	u, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), services.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "User updated successfully", u)
}

// DeleteUser godoc
// @ID          deleteUser
// @Summary     Delete a user
// @Description Removes a user by ID.
// @Tags        Users
// @Produce     json
//
// @Param       id  path  string  true  "User ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.Response
// @Failure     404  {object}  handlers.Response  "User not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/{id} [delete]
func (h *Handlers) DeleteUser(c *gin.Context) {
	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	ok(c, http.StatusOK, "User deleted successfully", nil)
}
