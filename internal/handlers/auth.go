package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Arhonist/nextjs-dashboard/auth"
	"github.com/Arhonist/nextjs-dashboard/httpx"
	"github.com/Arhonist/nextjs-dashboard/internal/models"
	"github.com/Arhonist/nextjs-dashboard/validation"
)

const (
	msgInvalidCredentials = "Invalid credentials."
	msgLoginFailed        = "Something went wrong."
	defaultLoginRedirect  = "/dashboard"
)

type AuthHandler struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewAuthHandler(db *gorm.DB, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{db: db, log: log}
}

// LoginForm describes the sign-in form. Signed-in users go straight to
// their redirect target.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	target := loginRedirect(r.URL.Query().Get("redirectTo"))
	if _, ok := auth.UserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"action":     "/login",
		"fields":     []string{"email", "password"},
		"redirectTo": target,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	email := strings.TrimSpace(r.Form.Get("email"))
	password := r.Form.Get("password")

	errs := validation.Errors{}
	validation.Email("email", email, "Please enter a valid email address.", errs)
	validation.MinLength("password", password, 6, "Password must be at least 6 characters.", errs)
	if !errs.Empty() {
		httpx.Form(w, http.StatusUnprocessableEntity, errs, msgInvalidCredentials)
		return
	}

	var user models.User
	err := h.db.WithContext(r.Context()).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Form(w, http.StatusUnauthorized, nil, msgInvalidCredentials)
		return
	}
	if err != nil {
		h.log.WithError(err).Error("load user for login")
		httpx.Form(w, http.StatusInternalServerError, nil, msgLoginFailed)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		httpx.Form(w, http.StatusUnauthorized, nil, msgInvalidCredentials)
		return
	}

	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, loginRedirect(r.Form.Get("redirectTo")), http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// loginRedirect only follows local paths.
func loginRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, `/\`) {
		return defaultLoginRedirect
	}
	return target
}
