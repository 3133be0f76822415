package handlers

import "net/http"

// Health reports service liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"status":  "online",
		"message": "Gen Jewels API is running",
	})
}

// Root is the public landing response.
func (a *App) Root(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Gen Jewels AI Design API",
	})
}
