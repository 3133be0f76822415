package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/domain"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/sqlinline"
)

// maxUploadBytes caps reference-image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

type designResponse struct {
	ImageURL    string `json:"image_url"`
	FinalPrompt string `json:"final_prompt"`
	Status      string `json:"status"`
}

type historyItem struct {
	ID          int64     `json:"id"`
	JewelryType string    `json:"jewelry_type"`
	Material    string    `json:"material"`
	Stone       string    `json:"stone"`
	ImagePath   string    `json:"image_path"`
	FinalPrompt string    `json:"final_prompt"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenerateHistory lists the caller's past designs, newest first.
func (a *App) GenerateHistory(w http.ResponseWriter, r *http.Request) {
	user, err := a.currentUser(r.Context())
	if err != nil {
		a.unauthorizedOrInternal(w, err)
		return
	}

	rows, err := a.SQL.Query(r.Context(), sqlinline.QSelectDesignsByUser, user.ID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("history query failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load history")
		return
	}
	defer rows.Close()

	items := make([]historyItem, 0)
	for rows.Next() {
		var item historyItem
		if err := rows.Scan(&item.ID, &item.JewelryType, &item.Material, &item.Stone, &item.ImagePath, &item.FinalPrompt, &item.CreatedAt); err != nil {
			a.Logger.Error().Err(err).Msg("history scan failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to load history")
			return
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("history rows failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load history")
		return
	}
	a.json(w, http.StatusOK, items)
}

// GenerateDesign is the text/attribute-driven workflow: synthesize a prompt
// from the structured attributes, render the image, persist the design.
func (a *App) GenerateDesign(w http.ResponseWriter, r *http.Request) {
	user, err := a.currentUser(r.Context())
	if err != nil {
		a.unauthorizedOrInternal(w, err)
		return
	}

	var attrs domain.DesignAttributes
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(attrs.JewelryType) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "jewelry_type is required")
		return
	}
	if err := domain.CheckContent(attrs.ExtraText); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	a.Logger.Info().Str("user", user.Username).Str("jewelry_type", attrs.JewelryType).Msg("design requested")

	res := a.Synthesizer.SynthesizeFromAttributes(r.Context(), attrs)
	if res.Degraded {
		a.Logger.Warn().Str("reason", res.FallbackReason).Msg("prompt synthesis degraded to fallback")
	}

	imagePath, err := a.Generator.Generate(r.Context(), res.Text)
	if err != nil {
		a.Logger.Error().Err(err).Msg("image generation failed")
		a.error(w, http.StatusInternalServerError, "generation_failed", fmt.Sprintf("Image generation failed: %v", err))
		return
	}

	design := domain.Design{
		UserID:       user.ID,
		JewelryType:  attrs.JewelryType,
		Style:        attrs.Style,
		Material:     attrs.Material,
		Stone:        attrs.Stone,
		GemTheme:     attrs.Theme,
		SizeCategory: attrs.Size,
		Finish:       attrs.Finish,
		ExtraText:    attrs.ExtraText,
		FinalPrompt:  res.Text,
		ImagePath:    imagePath,
	}
	if err := a.insertDesign(r, design); err != nil {
		a.Logger.Error().Err(err).Msg("persist design failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save design")
		return
	}

	a.json(w, http.StatusOK, designResponse{
		ImageURL:    a.imageURL(imagePath),
		FinalPrompt: res.Text,
		Status:      "success",
	})
}

// GenerateImageToImage is the image-driven variation workflow: extract design
// DNA from the uploaded reference, merge it with the target shape and the
// optional user instruction, render, persist.
func (a *App) GenerateImageToImage(w http.ResponseWriter, r *http.Request) {
	user, err := a.currentUser(r.Context())
	if err != nil {
		a.unauthorizedOrInternal(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	jewelryType := strings.TrimSpace(r.FormValue("jewelry_type"))
	if jewelryType == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "jewelry_type is required")
		return
	}
	userInstruction := strings.TrimSpace(r.FormValue("prompt"))
	if err := domain.CheckContent(userInstruction); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if raw := strings.TrimSpace(r.FormValue("strength")); raw != "" {
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "strength must be a number")
			return
		}
	}

	file, header, err := r.FormFile("init_image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "init_image file is required")
		return
	}
	defer file.Close()
	imageBytes, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil || len(imageBytes) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid image file")
		return
	}

	a.Logger.Info().Str("user", user.Username).Str("target", jewelryType).Msg("image-to-image requested")

	dna := a.Extractor.Extract(r.Context(), imageBytes, header.Header.Get("Content-Type"))
	if dna.Degraded {
		a.Logger.Warn().Str("reason", dna.FallbackReason).Msg("design DNA extraction degraded to fallback")
	}

	res := a.Synthesizer.SynthesizeFromVisualDNA(r.Context(), dna.Description, jewelryType, userInstruction)
	if res.Degraded {
		a.Logger.Warn().Str("reason", res.FallbackReason).Msg("prompt synthesis degraded to fallback")
	}

	imagePath, err := a.Generator.Generate(r.Context(), res.Text)
	if err != nil {
		a.Logger.Error().Err(err).Msg("image generation failed")
		a.error(w, http.StatusInternalServerError, "generation_failed", fmt.Sprintf("Image generation failed: %v", err))
		return
	}

	sourceNote := "No extra instructions"
	if userInstruction != "" {
		sourceNote = "Instructions: " + userInstruction
	}
	design := domain.Design{
		UserID:       user.ID,
		JewelryType:  jewelryType,
		Style:        "Adapted",
		Material:     "Original",
		Stone:        "Original",
		GemTheme:     "Variation",
		SizeCategory: "Standard",
		Finish:       "Original",
		ExtraText:    "Variation Source: " + sourceNote,
		FinalPrompt:  res.Text,
		ImagePath:    imagePath,
	}
	if err := a.insertDesign(r, design); err != nil {
		a.Logger.Error().Err(err).Msg("persist design failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save design")
		return
	}

	a.json(w, http.StatusOK, designResponse{
		ImageURL:    a.imageURL(imagePath),
		FinalPrompt: res.Text,
		Status:      "success",
	})
}

func (a *App) insertDesign(r *http.Request, d domain.Design) error {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertDesign,
		d.UserID, d.JewelryType, d.Style, d.Material, d.Stone, d.GemTheme,
		d.SizeCategory, d.Finish, d.ExtraText, d.FinalPrompt, d.ImagePath)
	var id int64
	var createdAt time.Time
	return row.Scan(&id, &createdAt)
}

func (a *App) unauthorizedOrInternal(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing or unknown user")
		return
	}
	a.Logger.Error().Err(err).Msg("resolve user failed")
	a.error(w, http.StatusInternalServerError, "internal", "failed to resolve user")
}
