package handler

import (
	"net/http"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/apierror"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Register godoc
// @Summary Register an account and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Account"
// @Success 201 {object} dto.LoginResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in as admin (email) or salesman (name)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, ok, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid credentials"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary End the caller's session and revoke their tokens
// @Tags auth
// @Success 204
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, _ := caller(c)
	if err := h.svc.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Session reports the caller's own session, or 404 when they do not hold the
// current one.
func (h *AuthHandler) Session(c *gin.Context) {
	userID, _ := caller(c)
	sess, err := h.svc.CurrentSession(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if sess == nil {
		notFound(c, "Session")
		return
	}
	c.JSON(http.StatusOK, sess)
}
