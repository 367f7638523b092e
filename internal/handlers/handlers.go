package handlers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Shubham-7300/Portfolio-Backend/internal/apperr"
	"github.com/Shubham-7300/Portfolio-Backend/internal/config"
	"github.com/Shubham-7300/Portfolio-Backend/internal/models"
	"github.com/Shubham-7300/Portfolio-Backend/internal/services"
)

// maxUploadSize caps multipart parsing (avatar + resume in one request).
const maxUploadSize = 20 << 20 // 20MB

// UserStore is the credential-store surface the handlers depend on.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string, withPassword bool) (*models.User, error)
	FindByEmail(ctx context.Context, email string, withPassword bool) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, digest string) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, hash string, expiry time.Time) error
	ClearResetToken(ctx context.Context, id primitive.ObjectID) error
	FindByResetToken(ctx context.Context, hash string) (*models.User, error)
}

// MediaStore is the media-host surface the handlers depend on.
type MediaStore interface {
	UploadFileFromHeader(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (models.MediaRef, error)
	Destroy(ctx context.Context, publicID string) error
}

// MailSender is the notification channel.
type MailSender interface {
	Send(to, subject, body string) error
}

// Handler bundles the collaborators every endpoint shares.
type Handler struct {
	Cfg    *config.Config
	Users  UserStore
	Tokens *services.TokenService
	Media  MediaStore
	Mail   MailSender
	DB     *mongo.Database
}

func New(cfg *config.Config, db *mongo.Database, media *services.CloudinaryService, mail *services.Mailer) *Handler {
	return &Handler{
		Cfg:    cfg,
		Users:  services.NewUserStore(db),
		Tokens: services.NewTokenService(cfg.JWTSecret, cfg.JWTExpires, cfg.CookieExpireDays),
		Media:  media,
		Mail:   mail,
		DB:     db,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// AuthResponse is the envelope for authentication endpoints.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

// sendToken issues a session for user, sets the cookie, and writes the
// standard auth envelope. Login, registration, and password reset all end here.
func (h *Handler) sendToken(w http.ResponseWriter, user *models.User, message string, status int) {
	token, err := h.Tokens.Issue(user.ID.Hex())
	if err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindInternal, "Failed to create session", err))
		return
	}

	h.Tokens.Attach(w, token)
	user.Password = ""
	writeJSON(w, status, AuthResponse{
		Success: true,
		Message: message,
		User:    user,
		Token:   token,
	})
}
