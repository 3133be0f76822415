package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/sqlinline"
)

// uniqueViolation is the Postgres SQLSTATE raised when the username is taken.
const uniqueViolation = "23505"

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	OwnerName   string `json:"owner_name"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthRegister creates the account and its company profile in one atomic
// write, then returns a fresh bearer token.
func (a *App) AuthRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "username and password are required")
		return
	}
	if strings.TrimSpace(req.OwnerName) == "" || strings.TrimSpace(req.CompanyName) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "owner_name and company_name are required")
		return
	}

	hash, err := a.Auth.HashPassword(req.Password)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create account")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertUserWithCompany,
		req.Username, hash, req.OwnerName, req.CompanyName, req.Address, req.PhoneNumber)
	var userID int64
	var username string
	var createdAt time.Time
	if err := row.Scan(&userID, &username, &createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			a.error(w, http.StatusBadRequest, "conflict", "Username already taken")
			return
		}
		a.Logger.Error().Err(err).Msg("register failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create account")
		return
	}

	token, err := a.Auth.IssueToken(username)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// AuthLogin verifies credentials and returns a fresh bearer token.
func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByUsername, strings.TrimSpace(req.Username))
	var (
		userID       int64
		username     string
		passwordHash string
		isActive     bool
		createdAt    time.Time
	)
	if err := row.Scan(&userID, &username, &passwordHash, &isActive, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusBadRequest, "unauthorized", "Incorrect username or password")
			return
		}
		a.Logger.Error().Err(err).Msg("login lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "login failed")
		return
	}
	if !a.Auth.VerifyPassword(req.Password, passwordHash) {
		a.error(w, http.StatusBadRequest, "unauthorized", "Incorrect username or password")
		return
	}

	token, err := a.Auth.IssueToken(username)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
