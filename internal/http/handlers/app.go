package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/auth"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/diffusion"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/domain"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/infra"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/middleware"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/providers/prompt"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/providers/vision"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/sqlinline"
)

// App is the handler container. Every collaborator is injected so tests can
// substitute fakes for the database and the AI providers.
type App struct {
	SQL            infra.SQLExecutor
	Logger         zerolog.Logger
	Auth           *auth.Service
	Synthesizer    prompt.Synthesizer
	Extractor      vision.Extractor
	Generator      diffusion.Generator
	StorageBaseURL string
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// currentUser resolves the authenticated account from the token subject the
// middleware stored on the context.
func (a *App) currentUser(ctx context.Context) (*domain.User, error) {
	username := middleware.UsernameFromContext(ctx)
	if username == "" {
		return nil, domain.ErrUnauthorized
	}
	row := a.SQL.QueryRow(ctx, sqlinline.QSelectUserByUsername, username)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsActive, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return &u, nil
}

// imageURL maps a storage key onto its servable URL.
func (a *App) imageURL(key string) string {
	base := strings.TrimRight(a.StorageBaseURL, "/")
	return base + "/" + strings.TrimLeft(key, "/")
}
