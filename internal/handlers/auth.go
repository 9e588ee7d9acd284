package handlers

import (
	"net/http"

	"goldenspoon-backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Signup(c *gin.Context) {
	var req service.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badInput(c)
		return
	}

	res, err := h.Auth.Signup(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "User created successfully",
		"token":       res.Token,
		"userdetails": res.User,
	})
}

func (h *Handler) Signin(c *gin.Context) {
	var req service.SigninInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badInput(c)
		return
	}

	res, err := h.Auth.Signin(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Login Success",
		"token":       res.Token,
		"userdetails": res.User,
	})
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badInput(c)
		return
	}

	if err := h.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to your email"})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badInput(c)
		return
	}

	if err := h.Auth.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP Verified Successfully"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req service.ResetPasswordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badInput(c)
		return
	}

	if err := h.Auth.ResetPassword(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password Reset Successfully"})
}

func (h *Handler) UserDetails(c *gin.Context) {
	user, err := h.Auth.UserDetails(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User details fetched successfully",
		"data":    user,
	})
}
