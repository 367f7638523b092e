package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Shubham-7300/Portfolio-Backend/internal/apperr"
	"github.com/Shubham-7300/Portfolio-Backend/internal/middleware"
	"github.com/Shubham-7300/Portfolio-Backend/internal/models"
	"github.com/Shubham-7300/Portfolio-Backend/internal/services"
	"github.com/Shubham-7300/Portfolio-Backend/pkg/utils"
)

const (
	avatarFolder = "PORTFOLIO AVATAR"
	resumeFolder = "PORTFOLIO RESUME"
)

// Register creates the dashboard account. Both files must upload before the
// record is written; a record is never created with missing media.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid multipart form", err))
		return
	}

	avatarHeader := formFile(r, "avatar")
	resumeHeader := formFile(r, "resume")
	if avatarHeader == nil || resumeHeader == nil {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "Avatar and Resume are Required!"))
		return
	}

	fields := profileFieldsFromForm(r)
	password := r.FormValue("password")
	if err := validateProfile(fields); err != nil {
		apperr.WriteError(w, err)
		return
	}
	if err := validatePassword(password); err != nil {
		apperr.WriteError(w, err)
		return
	}

	avatar, err := h.Media.UploadFileFromHeader(r.Context(), avatarHeader, avatarFolder)
	if err != nil {
		log.Printf("ERROR: avatar upload failed: %v", err)
		apperr.WriteError(w, apperr.Wrap(apperr.KindUpstreamFailure, "Failed to upload avatar", err))
		return
	}
	resume, err := h.Media.UploadFileFromHeader(r.Context(), resumeHeader, resumeFolder)
	if err != nil {
		log.Printf("ERROR: resume upload failed: %v", err)
		apperr.WriteError(w, apperr.Wrap(apperr.KindUpstreamFailure, "Failed to upload resume", err))
		return
	}

	digest, err := utils.HashPassword(password)
	if err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindInternal, "Failed to hash password", err))
		return
	}

	user := &models.User{
		FullName:     fields.FullName,
		Email:        fields.Email,
		Phone:        fields.Phone,
		AboutMe:      fields.AboutMe,
		Password:     digest,
		Avatar:       avatar,
		Resume:       resume,
		PortfolioURL: fields.PortfolioURL,
		GithubURL:    fields.GithubURL,
		LeetcodeURL:  fields.LeetcodeURL,
		TwitterURL:   fields.TwitterURL,
		LinkedInURL:  fields.LinkedInURL,
		FacebookURL:  fields.FacebookURL,
	}

	if err := h.Users.Create(r.Context(), user); err != nil {
		// The uploads already happened; reclaim them so a failed registration
		// leaves nothing behind on the media host.
		for _, ref := range []models.MediaRef{avatar, resume} {
			if derr := h.Media.Destroy(r.Context(), ref.PublicID); derr != nil {
				log.Printf("WARNING: failed to clean up upload %s: %v", ref.PublicID, derr)
			}
		}
		apperr.WriteError(w, err)
		return
	}

	h.sendToken(w, user, "Registered!", http.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a session. Unknown email and wrong
// password are reported identically so accounts cannot be enumerated.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid request body", err))
		return
	}
	if req.Email == "" || req.Password == "" {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "Provide Email And Password!"))
		return
	}

	user, err := h.Users.FindByEmail(r.Context(), req.Email, true)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if user == nil || !utils.CheckPassword(req.Password, user.Password) {
		apperr.WriteError(w, apperr.New(apperr.KindInvalidCredentials, "Invalid Email Or Password!"))
		return
	}

	h.sendToken(w, user, "Login Successfully!", http.StatusOK)
}

// Logout expires the session cookie. Tokens are stateless, so there is
// nothing server-side to revoke.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Tokens.Clear(w)
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Logged Out!"})
}

// GetUser returns the authenticated user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, User: user})
}

// GetUserForPortfolio serves the configured owner profile to the public site,
// no session required. An unset owner id answers like a missing user, not a
// malformed one.
func (h *Handler) GetUserForPortfolio(w http.ResponseWriter, r *http.Request) {
	if h.Cfg.PortfolioUserID == "" {
		apperr.WriteError(w, apperr.New(apperr.KindNotFound, "User not found!"))
		return
	}
	user, err := h.Users.FindByID(r.Context(), h.Cfg.PortfolioUserID, false)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if user == nil {
		apperr.WriteError(w, apperr.New(apperr.KindNotFound, "User not found!"))
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, User: user})
}

// UpdateProfile rewrites the profile fields and optionally replaces avatar or
// resume, destroying the old media object before uploading the new one.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid form", err))
		return
	}

	fields := profileFieldsFromForm(r)
	if err := validateProfile(fields); err != nil {
		apperr.WriteError(w, err)
		return
	}

	user := middleware.UserFromContext(r.Context())
	update := bson.M{
		"full_name":     fields.FullName,
		"email":         fields.Email,
		"phone":         fields.Phone,
		"about_me":      fields.AboutMe,
		"portfolio_url": fields.PortfolioURL,
		"github_url":    fields.GithubURL,
		"leetcode_url":  fields.LeetcodeURL,
		"twitter_url":   fields.TwitterURL,
		"linkedin_url":  fields.LinkedInURL,
		"facebook_url":  fields.FacebookURL,
	}

	if header := formFile(r, "avatar"); header != nil {
		avatar, err := h.replaceMedia(r, header, user.Avatar.PublicID, avatarFolder)
		if err != nil {
			apperr.WriteError(w, err)
			return
		}
		update["avatar"] = avatar
	}
	if header := formFile(r, "resume"); header != nil {
		resume, err := h.replaceMedia(r, header, user.Resume.PublicID, resumeFolder)
		if err != nil {
			apperr.WriteError(w, err)
			return
		}
		update["resume"] = resume
	}

	updated, err := h.Users.UpdateProfile(r.Context(), user.ID, update)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Profile Updated!", User: updated})
}

type updatePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// UpdatePassword changes the password after re-verifying the current one.
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid request body", err))
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmNewPassword == "" {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "Please Fill All Fields."))
		return
	}

	// The gate's user was loaded without the digest; fetch it for verification.
	user := middleware.UserFromContext(r.Context())
	withPassword, err := h.Users.FindByID(r.Context(), user.ID.Hex(), true)
	if err != nil || withPassword == nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindInternal, "Failed to load user", err))
		return
	}

	if !utils.CheckPassword(req.CurrentPassword, withPassword.Password) {
		apperr.WriteError(w, apperr.New(apperr.KindInvalidCredentials, "Incorrect Current Password!"))
		return
	}
	if req.NewPassword != req.ConfirmNewPassword {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "New Password And Confirm New Password Do Not Match!"))
		return
	}
	if err := validatePassword(req.NewPassword); err != nil {
		apperr.WriteError(w, err)
		return
	}

	digest, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindInternal, "Failed to hash password", err))
		return
	}
	if err := h.Users.UpdatePassword(r.Context(), user.ID, digest); err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Password Updated!"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword generates a reset token, persists only its hash and expiry,
// and mails the raw token. A failed delivery clears the stored token so no
// valid-but-undelivered token stays active.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid request body", err))
		return
	}

	user, err := h.Users.FindByEmail(r.Context(), req.Email, false)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if user == nil {
		apperr.WriteError(w, apperr.New(apperr.KindNotFound, "User Not Found!"))
		return
	}

	raw, hash, expiry, err := services.NewResetToken()
	if err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindInternal, "Failed to generate reset token", err))
		return
	}
	if err := h.Users.SetResetToken(r.Context(), user.ID, hash, expiry); err != nil {
		apperr.WriteError(w, err)
		return
	}

	resetURL := fmt.Sprintf("%s/password/reset/%s", h.Cfg.DashboardURL, raw)
	body := fmt.Sprintf("Your Reset Password Token is:\n\n%s\n\nIf you've not requested this email, please ignore it.", resetURL)

	if err := h.Mail.Send(user.Email, "Personal Portfolio Dashboard Password Recovery", body); err != nil {
		log.Printf("ERROR: recovery email to %s failed: %v", user.Email, err)
		if cerr := h.Users.ClearResetToken(r.Context(), user.ID); cerr != nil {
			log.Printf("WARNING: failed to clear reset token for %s: %v", user.ID.Hex(), cerr)
		}
		apperr.WriteError(w, apperr.Wrap(apperr.KindUpstreamFailure, "Failed to send recovery email. Please try again later.", err))
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: fmt.Sprintf("Email sent to %s successfully", user.Email),
	})
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ResetPassword consumes a raw reset token from the emailed link. Expired and
// wrong tokens are rejected identically.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	hash := services.HashResetToken(chi.URLParam(r, "token"))

	user, err := h.Users.FindByResetToken(r.Context(), hash)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if user == nil {
		apperr.WriteError(w, apperr.New(apperr.KindNotFound, "Reset password token is invalid or has expired."))
		return
	}

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid request body", err))
		return
	}
	if req.Password != req.ConfirmPassword {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "Password & Confirm Password do not match"))
		return
	}
	if err := validatePassword(req.Password); err != nil {
		apperr.WriteError(w, err)
		return
	}

	digest, err := utils.HashPassword(req.Password)
	if err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindInternal, "Failed to hash password", err))
		return
	}
	if err := h.Users.UpdatePassword(r.Context(), user.ID, digest); err != nil {
		apperr.WriteError(w, err)
		return
	}
	if err := h.Users.ClearResetToken(r.Context(), user.ID); err != nil {
		apperr.WriteError(w, err)
		return
	}

	h.sendToken(w, user, "Reset Password Successfully!", http.StatusOK)
}

// replaceMedia destroys the old object (if any) and uploads the new one.
func (h *Handler) replaceMedia(r *http.Request, header *multipart.FileHeader, oldPublicID, folder string) (models.MediaRef, error) {
	if oldPublicID != "" {
		if err := h.Media.Destroy(r.Context(), oldPublicID); err != nil {
			return models.MediaRef{}, apperr.Wrap(apperr.KindUpstreamFailure, "Failed to replace file", err)
		}
	}
	ref, err := h.Media.UploadFileFromHeader(r.Context(), header, folder)
	if err != nil {
		return models.MediaRef{}, apperr.Wrap(apperr.KindUpstreamFailure, "Failed to upload file", err)
	}
	return ref, nil
}

// formFile returns the first uploaded file under name, or nil.
func formFile(r *http.Request, name string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[name]
	if len(headers) == 0 {
		return nil
	}
	return headers[0]
}

func profileFieldsFromForm(r *http.Request) profileFields {
	return profileFields{
		FullName:     r.FormValue("fullName"),
		Email:        r.FormValue("email"),
		Phone:        r.FormValue("phone"),
		AboutMe:      r.FormValue("aboutMe"),
		PortfolioURL: r.FormValue("portfolioURL"),
		GithubURL:    r.FormValue("githubURL"),
		LeetcodeURL:  r.FormValue("leetcodeURL"),
		TwitterURL:   r.FormValue("twitterURL"),
		LinkedInURL:  r.FormValue("linkedInURL"),
		FacebookURL:  r.FormValue("facebookURL"),
	}
}
