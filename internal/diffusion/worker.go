package diffusion

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/storage"
)

// generatedImagePrefix is the directory inside the storage root where
// rendered images land. The HTTP layer serves the root statically, so keys
// map directly onto URLs.
const generatedImagePrefix = "generated_image"

// Renderer is the contract the worker needs from the diffusion client.
type Renderer interface {
	Render(ctx context.Context, prompt string) ([]byte, error)
}

// Generator is the capability interface the orchestration layer depends on:
// a finished prompt in, a storage-relative image path out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Worker serializes access to the diffusion backend. The server holds one
// copy of the model weights on one device, so concurrent renders would
// contend for it; the single-slot gate makes that contract explicit instead
// of accidental. Requests queue on the slot in arrival order.
type Worker struct {
	renderer Renderer
	store    *storage.FileStore
	logger   zerolog.Logger
	slot     chan struct{}
}

// NewWorker wires a renderer to a file store behind a single admission slot.
func NewWorker(renderer Renderer, store *storage.FileStore, logger zerolog.Logger) *Worker {
	return &Worker{
		renderer: renderer,
		store:    store,
		logger:   logger,
		slot:     make(chan struct{}, 1),
	}
}

// Generate renders the prompt and persists the image under a fresh UUID,
// returning the storage-relative path. Errors propagate: there is no retry
// and no partial artifact left behind on failure.
func (w *Worker) Generate(ctx context.Context, prompt string) (string, error) {
	select {
	case w.slot <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-w.slot }()

	w.logger.Info().Str("prompt", truncate(prompt, 50)).Msg("diffusion: generating")

	data, err := w.renderer.Render(ctx, prompt)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.png", generatedImagePrefix, uuid.NewString())
	storedKey, err := w.store.Write(ctx, key, data)
	if err != nil {
		return "", fmt.Errorf("diffusion: persist image: %w", err)
	}

	w.logger.Info().Str("image", storedKey).Msg("diffusion: image saved")
	return storedKey, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ Generator = (*Worker)(nil)
