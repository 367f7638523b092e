package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Shubham-7300/Portfolio-Backend/internal/apperr"
	"github.com/Shubham-7300/Portfolio-Backend/internal/config"
	"github.com/Shubham-7300/Portfolio-Backend/internal/middleware"
	"github.com/Shubham-7300/Portfolio-Backend/internal/models"
	"github.com/Shubham-7300/Portfolio-Backend/internal/services"
	"github.com/Shubham-7300/Portfolio-Backend/pkg/utils"
)

type fakeUsers struct {
	users       map[string]*models.User // keyed by email
	digests     map[string]string       // id hex -> password digest
	created     []*models.User
	createErr   error
	resetHash   string
	resetExpiry time.Time
	tokenSets   int
	tokenClears int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*models.User{}, digests: map[string]string{}}
}

func (f *fakeUsers) addUser(u *models.User) {
	f.users[u.Email] = u
	f.digests[u.ID.Hex()] = u.Password
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = primitive.NewObjectID()
	f.created = append(f.created, user)
	f.addUser(user)
	return nil
}

func (f *fakeUsers) FindByID(ctx context.Context, id string, withPassword bool) (*models.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			found := *u
			if withPassword {
				found.Password = f.digests[id]
			} else {
				found.Password = ""
			}
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string, withPassword bool) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	found := *u
	if withPassword {
		found.Password = f.digests[u.ID.Hex()]
	} else {
		found.Password = ""
	}
	return &found, nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	return nil, errors.New("not supported in this fake")
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id primitive.ObjectID, digest string) error {
	f.digests[id.Hex()] = digest
	return nil
}

func (f *fakeUsers) SetResetToken(ctx context.Context, id primitive.ObjectID, hash string, expiry time.Time) error {
	f.tokenSets++
	f.resetHash = hash
	f.resetExpiry = expiry
	return nil
}

func (f *fakeUsers) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	f.tokenClears++
	f.resetHash = ""
	return nil
}

func (f *fakeUsers) FindByResetToken(ctx context.Context, hash string) (*models.User, error) {
	if f.resetHash == "" || hash != f.resetHash || !f.resetExpiry.After(time.Now()) {
		return nil, nil
	}
	for _, u := range f.users {
		found := *u
		found.Password = ""
		return &found, nil
	}
	return nil, nil
}

type fakeMedia struct {
	uploadErr error
	uploads   []string
	destroyed []string
}

func (f *fakeMedia) UploadFileFromHeader(ctx context.Context, header *multipart.FileHeader, folder string) (models.MediaRef, error) {
	if f.uploadErr != nil {
		return models.MediaRef{}, f.uploadErr
	}
	id := fmt.Sprintf("%s/%d", folder, len(f.uploads)+1)
	f.uploads = append(f.uploads, id)
	return models.MediaRef{PublicID: id, URL: "https://media.example/" + id}, nil
}

func (f *fakeMedia) Destroy(ctx context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMail struct {
	err  error
	sent []sentMail
}

func (f *fakeMail) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func newTestHandler(users *fakeUsers, media *fakeMedia, mail *fakeMail) *Handler {
	return &Handler{
		Cfg: &config.Config{
			DashboardURL: "https://dashboard.example",
		},
		Users:  users,
		Tokens: services.NewTokenService("test-secret", time.Hour, 7),
		Media:  media,
		Mail:   mail,
	}
}

func registerFields() map[string]string {
	return map[string]string{
		"fullName": "Shubham",
		"email":    "a@b.com",
		"phone":    "1234567890",
		"aboutMe":  "I build things.",
		"password": "password1",
	}
}

// multipartRequest builds a multipart POST with the given fields and one
// dummy file per name in files.
func multipartRequest(t *testing.T, target string, fields map[string]string, files ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, name := range files {
		fw, err := w.CreateFormFile(name, name+".png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("file-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeAuthResponse(t *testing.T, rec *httptest.ResponseRecorder) AuthResponse {
	t.Helper()
	var body AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == services.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestRegisterWithoutFilesCreatesNoUser(t *testing.T) {
	users := newFakeUsers()
	media := &fakeMedia{}
	h := newTestHandler(users, media, &fakeMail{})

	rec := httptest.NewRecorder()
	h.Register(rec, multipartRequest(t, "/api/v1/user/register", registerFields()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeAuthResponse(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Avatar and Resume are Required!", body.Message)

	assert.Empty(t, users.created)
	assert.Empty(t, media.uploads)
	assert.Nil(t, sessionCookie(rec))
}

func TestRegisterDestroysUploadsWhenCreateFails(t *testing.T) {
	users := newFakeUsers()
	users.createErr = apperr.New(apperr.KindDuplicateKey, "Email is already registered!")
	media := &fakeMedia{}
	h := newTestHandler(users, media, &fakeMail{})

	rec := httptest.NewRecorder()
	h.Register(rec, multipartRequest(t, "/api/v1/user/register", registerFields(), "avatar", "resume"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, users.created)
	// Both uploads happened before the create failed; both must be reclaimed.
	require.Len(t, media.uploads, 2)
	assert.ElementsMatch(t, media.uploads, media.destroyed)
	assert.Nil(t, sessionCookie(rec))
}

func TestRegisterIssuesSession(t *testing.T) {
	users := newFakeUsers()
	media := &fakeMedia{}
	h := newTestHandler(users, media, &fakeMail{})

	rec := httptest.NewRecorder()
	h.Register(rec, multipartRequest(t, "/api/v1/user/register", registerFields(), "avatar", "resume"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, users.created, 1)
	created := users.created[0]
	assert.Equal(t, "a@b.com", created.Email)

	// stored hashed, never in plaintext
	digest := users.digests[created.ID.Hex()]
	assert.NotEqual(t, "password1", digest)
	assert.True(t, utils.CheckPassword("password1", digest))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	userID, err := h.Tokens.Verify(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, created.ID.Hex(), userID)

	body := decodeAuthResponse(t, rec)
	assert.True(t, body.Success)
	require.NotNil(t, body.User)
	assert.Equal(t, "a@b.com", body.User.Email)
	assert.NotEmpty(t, body.Token)
	assert.Empty(t, media.destroyed)
}

func TestLoginWrongPasswordSetsNoCookie(t *testing.T) {
	users := newFakeUsers()
	digest, err := utils.HashPassword("password1")
	require.NoError(t, err)
	users.addUser(&models.User{ID: primitive.NewObjectID(), Email: "a@b.com", Password: digest})
	h := newTestHandler(users, &fakeMedia{}, &fakeMail{})

	for name, creds := range map[string]loginRequest{
		"wrong password": {Email: "a@b.com", Password: "wrong"},
		"unknown email":  {Email: "nobody@b.com", Password: "password1"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Login(rec, jsonRequest(t, http.MethodPost, "/api/v1/user/login", creds))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeAuthResponse(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, "Invalid Email Or Password!", body.Message)
			assert.Nil(t, sessionCookie(rec))
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUsers()
	digest, err := utils.HashPassword("password1")
	require.NoError(t, err)
	owner := &models.User{ID: primitive.NewObjectID(), Email: "a@b.com", Password: digest}
	users.addUser(owner)
	h := newTestHandler(users, &fakeMedia{}, &fakeMail{})

	rec := httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, http.MethodPost, "/api/v1/user/login", loginRequest{Email: "a@b.com", Password: "password1"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	userID, err := h.Tokens.Verify(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, owner.ID.Hex(), userID)
}

func TestForgotPasswordStoresHashNotRaw(t *testing.T) {
	users := newFakeUsers()
	users.addUser(&models.User{ID: primitive.NewObjectID(), Email: "a@b.com"})
	mail := &fakeMail{}
	h := newTestHandler(users, &fakeMedia{}, mail)

	rec := httptest.NewRecorder()
	h.ForgotPassword(rec, jsonRequest(t, http.MethodPost, "/api/v1/user/password/forgot", forgotPasswordRequest{Email: "a@b.com"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "a@b.com", mail.sent[0].to)

	raw := rawTokenFromMail(t, mail.sent[0].body)
	assert.NotEqual(t, raw, users.resetHash)
	assert.Equal(t, services.HashResetToken(raw), users.resetHash)
	assert.WithinDuration(t, time.Now().Add(services.ResetTokenTTL), users.resetExpiry, time.Minute)
}

func TestForgotPasswordMailFailureClearsToken(t *testing.T) {
	users := newFakeUsers()
	users.addUser(&models.User{ID: primitive.NewObjectID(), Email: "a@b.com"})
	mail := &fakeMail{err: errors.New("smtp: connection refused")}
	h := newTestHandler(users, &fakeMedia{}, mail)

	rec := httptest.NewRecorder()
	h.ForgotPassword(rec, jsonRequest(t, http.MethodPost, "/api/v1/user/password/forgot", forgotPasswordRequest{Email: "a@b.com"}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeAuthResponse(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Failed to send recovery email. Please try again later.", body.Message)

	// The token was stored and then cleared: no undelivered token stays active.
	assert.Equal(t, 1, users.tokenSets)
	assert.Equal(t, 1, users.tokenClears)
	assert.Empty(t, users.resetHash)
}

func TestResetPasswordSingleUse(t *testing.T) {
	users := newFakeUsers()
	oldDigest, err := utils.HashPassword("password1")
	require.NoError(t, err)
	owner := &models.User{ID: primitive.NewObjectID(), Email: "a@b.com", Password: oldDigest}
	users.addUser(owner)
	mail := &fakeMail{}
	h := newTestHandler(users, &fakeMedia{}, mail)

	router := chi.NewRouter()
	router.Put("/api/v1/user/password/reset/{token}", h.ResetPassword)

	rec := httptest.NewRecorder()
	h.ForgotPassword(rec, jsonRequest(t, http.MethodPost, "/api/v1/user/password/forgot", forgotPasswordRequest{Email: "a@b.com"}))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, mail.sent, 1)
	raw := rawTokenFromMail(t, mail.sent[0].body)

	resetBody := resetPasswordRequest{Password: "newpass1", ConfirmPassword: "newpass1"}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, http.MethodPut, "/api/v1/user/password/reset/"+raw, resetBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, sessionCookie(rec))
	assert.True(t, utils.CheckPassword("newpass1", users.digests[owner.ID.Hex()]))
	assert.Empty(t, users.resetHash)

	// Same raw token again: already consumed.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, http.MethodPut, "/api/v1/user/password/reset/"+raw, resetBody))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeAuthResponse(t, rec)
	assert.Equal(t, "Reset password token is invalid or has expired.", body.Message)
	assert.Nil(t, sessionCookie(rec))
	assert.True(t, utils.CheckPassword("newpass1", users.digests[owner.ID.Hex()]))
}

func TestResetPasswordExpiredToken(t *testing.T) {
	users := newFakeUsers()
	oldDigest, err := utils.HashPassword("password1")
	require.NoError(t, err)
	owner := &models.User{ID: primitive.NewObjectID(), Email: "a@b.com", Password: oldDigest}
	users.addUser(owner)

	raw, hash, _, err := services.NewResetToken()
	require.NoError(t, err)
	users.resetHash = hash
	users.resetExpiry = time.Now().Add(-time.Minute)

	h := newTestHandler(users, &fakeMedia{}, &fakeMail{})
	router := chi.NewRouter()
	router.Put("/api/v1/user/password/reset/{token}", h.ResetPassword)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, http.MethodPut, "/api/v1/user/password/reset/"+raw,
		resetPasswordRequest{Password: "newpass1", ConfirmPassword: "newpass1"}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	// password unchanged
	assert.True(t, utils.CheckPassword("password1", users.digests[owner.ID.Hex()]))
}

func TestUpdatePasswordThroughGate(t *testing.T) {
	users := newFakeUsers()
	digest, err := utils.HashPassword("password1")
	require.NoError(t, err)
	owner := &models.User{ID: primitive.NewObjectID(), Email: "a@b.com", Password: digest}
	users.addUser(owner)
	h := newTestHandler(users, &fakeMedia{}, &fakeMail{})

	gate := &middleware.Authenticator{Tokens: h.Tokens, Users: users}
	router := chi.NewRouter()
	router.With(gate.RequireAuth).Put("/api/v1/user/update/password", h.UpdatePassword)

	token, err := h.Tokens.Issue(owner.ID.Hex())
	require.NoError(t, err)

	do := func(body updatePasswordRequest) *httptest.ResponseRecorder {
		req := jsonRequest(t, http.MethodPut, "/api/v1/user/update/password", body)
		req.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: token})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := do(updatePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpass1", ConfirmNewPassword: "newpass1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect Current Password!", decodeAuthResponse(t, rec).Message)
	assert.True(t, utils.CheckPassword("password1", users.digests[owner.ID.Hex()]))

	rec = do(updatePasswordRequest{CurrentPassword: "password1", NewPassword: "newpass1", ConfirmNewPassword: "newpass1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Password Updated!", decodeAuthResponse(t, rec).Message)
	assert.True(t, utils.CheckPassword("newpass1", users.digests[owner.ID.Hex()]))
}

func TestGetUserForPortfolioUnconfigured(t *testing.T) {
	h := newTestHandler(newFakeUsers(), &fakeMedia{}, &fakeMail{})
	h.Cfg.PortfolioUserID = ""

	rec := httptest.NewRecorder()
	h.GetUserForPortfolio(rec, httptest.NewRequest(http.MethodGet, "/api/v1/user/portfolio/me", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeAuthResponse(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "User not found!", body.Message)
}

func TestGetUserForPortfolioConfigured(t *testing.T) {
	users := newFakeUsers()
	owner := &models.User{ID: primitive.NewObjectID(), Email: "a@b.com", Password: "digest"}
	users.addUser(owner)
	h := newTestHandler(users, &fakeMedia{}, &fakeMail{})
	h.Cfg.PortfolioUserID = owner.ID.Hex()

	rec := httptest.NewRecorder()
	h.GetUserForPortfolio(rec, httptest.NewRequest(http.MethodGet, "/api/v1/user/portfolio/me", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeAuthResponse(t, rec)
	assert.True(t, body.Success)
	require.NotNil(t, body.User)
	assert.Equal(t, "a@b.com", body.User.Email)
}

// rawTokenFromMail pulls the raw reset token out of the emailed link.
func rawTokenFromMail(t *testing.T, body string) string {
	t.Helper()
	const marker = "/password/reset/"
	i := strings.Index(body, marker)
	require.NotEqual(t, -1, i, "mail body carries no reset link: %q", body)
	raw := body[i+len(marker):]
	if j := strings.IndexAny(raw, " \r\n"); j != -1 {
		raw = raw[:j]
	}
	return raw
}
