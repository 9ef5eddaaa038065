package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shike-app/auth-api/internal/application/auth"
	"github.com/shike-app/auth-api/internal/pkg/validate"
)

// PasswordRecoveryHandler drives the three-step recovery flow:
// send-code, verify-code, reset.
type PasswordRecoveryHandler struct {
	svc auth.Service
	// devMode echoes generated codes in responses. An unknown recovery
	// address also returns a distinguishing 404 here; that is an
	// enumeration trade-off inherited from the original client contract.
	devMode bool
}

func NewPasswordRecoveryHandler(svc auth.Service, devMode bool) *PasswordRecoveryHandler {
	return &PasswordRecoveryHandler{svc: svc, devMode: devMode}
}

type sendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type resetRequest struct {
	ResetToken  string `json:"reset_token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

func (h *PasswordRecoveryHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req sendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	code, err := h.svc.SendRecoveryCode(r.Context(), req.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	resp := MessageEnvelope{Message: "verification code sent"}
	if h.devMode {
		resp.DebugCode = code
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PasswordRecoveryHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resetToken, err := h.svc.VerifyRecoveryCode(r.Context(), req.Email, req.Code)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResetTokenEnvelope{Message: "code verified", ResetToken: resetToken})
}

func (h *PasswordRecoveryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.ResetPassword(r.Context(), req.ResetToken, req.NewPassword); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password reset successful"})
}
