package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myproject/todo-management/internal/api/metrics"
	"github.com/myproject/todo-management/internal/core/domain"
	"github.com/myproject/todo-management/internal/core/ports"
)

// AuthHandler handles HTTP requests for registration, login and user management.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates a new user account from a multipart form: a "data" part
// holding the JSON payload and an optional "photo" file part.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        data   formData  string  true   "User registration JSON"
// @Param        photo  formData  file    false  "Profile photo (JPEG/PNG, max 2MB)"
// @Success      201    {object}  messageResponse
// @Failure      400    {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindFormData(c, &req); err != nil {
		return err
	}

	photo, cleanup, err := photoFromForm(c)
	if err != nil {
		return err
	}
	defer cleanup()

	err = h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Photo:    photo,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPhotoType) || errors.Is(err, domain.ErrPhotoSize) {
			metrics.PhotoUploadsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	if photo != nil {
		metrics.PhotoUploadsTotal.WithLabelValues("stored").Inc()
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "User Registered Successfully"})
}

// Login authenticates by username or email and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Login(c.Request().Context(), ports.LoginInput{
		UsernameOrEmail: req.UsernameOrEmail,
		Password:        req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		AccessToken:     result.AccessToken,
		TokenType:       result.TokenType,
		Role:            result.Role,
		UsernameOrEmail: result.UsernameOrEmail,
	})
}

// Update rewrites a user profile. Multipart like Register; the stored photo
// is replaced unconditionally.
//
// @Summary      Update a user profile
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int     true   "User id"
// @Param        data   formData  string  true   "Profile JSON"
// @Param        photo  formData  file    false  "New profile photo"
// @Success      200    {object}  messageResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/auth/update/{id} [put]
func (h *AuthHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cl, err := caller(c)
	if err != nil {
		return err
	}

	var req updateRegisterRequest
	if err := bindFormData(c, &req); err != nil {
		return err
	}

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "birthDate must be a valid date in format "+birthDateLayout)
	}

	photo, cleanup, err := photoFromForm(c)
	if err != nil {
		return err
	}
	defer cleanup()

	err = h.service.UpdateUser(c.Request().Context(), cl, id, ports.UpdateUserInput{
		Name:      req.Name,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: &birthDate,
		JobTitle:  req.JobTitle,
		Location:  req.Location,
		Photo:     photo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "User updated successfully"})
}

// Delete removes a user, its todos and its photo file. Admin only (enforced
// by route middleware).
//
// @Summary      Delete a user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/delete/{id} [delete]
func (h *AuthHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// ListUsers returns a page of all users. Admin only.
//
// @Summary      List users
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Page number (0-based)"
// @Param        size  query  int  false  "Page size"
// @Success      200   {object}  pagedUsersResponse
// @Router       /api/auth/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	page, size := pagingParams(c)

	result, err := h.service.ListUsers(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPagedUsersResponse(result))
}

// GetUser fetches one user by id.
//
// @Summary      Get a user by id
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/users/{id} [get]
func (h *AuthHandler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetUserByName fetches one user by username or email.
//
// @Summary      Get a user by username or email
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        usernameOrEmail  path  string  true  "Username or email"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/users/username/{usernameOrEmail} [get]
func (h *AuthHandler) GetUserByName(c echo.Context) error {
	identifier := c.Param("usernameOrEmail")

	user, err := h.service.GetUserByUsernameOrEmail(c.Request().Context(), identifier)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdatePassword changes the caller's own password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Password change payload"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/update-password [put]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	cl, err := caller(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.service.UpdatePassword(c.Request().Context(), cl, ports.UpdatePasswordInput{
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

// bindFormData decodes and validates the JSON "data" part of a multipart form.
func bindFormData(c echo.Context, dst any) error {
	data := c.FormValue("data")
	if data == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// photoFromForm opens the optional "photo" file part. The returned cleanup
// must be called once the upload has been consumed.
func photoFromForm(c echo.Context) (*ports.PhotoUpload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile("photo")
	if err != nil {
		// Absent file part is fine; the photo is optional.
		return nil, noop, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, "invalid photo upload")
	}

	return &ports.PhotoUpload{
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	}, func() { _ = f.Close() }, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func pagingParams(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	size, err := strconv.Atoi(c.QueryParam("size"))
	if err != nil || size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}
	return page, size
}
