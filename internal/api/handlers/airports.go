package handlers

import (
	"net/http"

	"reunion-route-service/internal/api/dto"
	"reunion-route-service/internal/ports"
)

// AirportHandler exposes the read-only airport reference table.
type AirportHandler struct {
	Directory ports.AirportDirectory
}

func (h *AirportHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	airports := h.Directory.List()

	res := dto.ListAirportsResponse{
		Airports: make([]dto.AirportResponse, 0, len(airports)),
	}
	for _, a := range airports {
		res.Airports = append(res.Airports, dto.AirportResponse{
			Code: a.Code,
			Name: a.Name,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
