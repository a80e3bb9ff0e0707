package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/Sathyasree11/Crowd-count-using-video-analytics/flatlog"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/models"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/services"
)

// TelemetryHandler exposes the zone-save and count-log write paths plus the
// flat-file exports.
type TelemetryHandler struct {
	Service  *services.TelemetryService
	ZoneFile flatlog.ZoneStore
	CountLog flatlog.CountLog
}

func NewTelemetryHandler(svc *services.TelemetryService, zoneFile flatlog.ZoneStore, countLog flatlog.CountLog) *TelemetryHandler {
	return &TelemetryHandler{Service: svc, ZoneFile: zoneFile, CountLog: countLog}
}

type pointPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type zonePayload struct {
	ID          string       `json:"id"`
	Label       *string      `json:"label"`
	TopLeft     pointPayload `json:"topleft"`
	TopRight    pointPayload `json:"topright"`
	BottomLeft  pointPayload `json:"bottomleft"`
	BottomRight pointPayload `json:"bottomright"`
}

type saveZonesPayload struct {
	File  string        `json:"file"`
	Zones []zonePayload `json:"zones"`
}

// toModel fills defaults: absent corners are 0.0, an absent id is
// "", an absent label is "Zone". A label explicitly sent as "" stays empty.
func (zp zonePayload) toModel() models.VideoZone {
	label := "Zone"
	if zp.Label != nil {
		label = *zp.Label
	}
	return models.VideoZone{
		ZoneID:       zp.ID,
		Label:        label,
		TopLeftX:     zp.TopLeft.X,
		TopLeftY:     zp.TopLeft.Y,
		TopRightX:    zp.TopRight.X,
		TopRightY:    zp.TopRight.Y,
		BottomLeftX:  zp.BottomLeft.X,
		BottomLeftY:  zp.BottomLeft.Y,
		BottomRightX: zp.BottomRight.X,
		BottomRightY: zp.BottomRight.Y,
	}
}

// SaveZones handles resolve-and-save-zones. Malformed bodies are treated as
// an empty submission rather than rejected, and the response reports ok even
// when nothing reached the relational store.
func (th *TelemetryHandler) SaveZones(w http.ResponseWriter, r *http.Request) {
	var payload saveZonesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		payload = saveZonesPayload{}
	}

	zones := make([]models.VideoZone, 0, len(payload.Zones))
	for _, zp := range payload.Zones {
		zones = append(zones, zp.toModel())
	}

	result, err := th.Service.SaveZones(CurrentUserID(r), payload.File, zones)
	if err != nil {
		log.Printf("Error saving zones: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "flat_store_error", "Failed to save zones")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"inserted": result.Inserted,
	})
}

type countPayload struct {
	Label   string `json:"label"`
	Current int    `json:"current"`
	Peak    int    `json:"peak"`
}

type logCountsPayload struct {
	File   string                  `json:"file"`
	Counts map[string]countPayload `json:"counts"`
}

// LogCounts handles resolve-and-log-counts. The flat ledger append runs even
// when no video resolves; totals cover this payload only.
func (th *TelemetryHandler) LogCounts(w http.ResponseWriter, r *http.Request) {
	var payload logCountsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		payload = logCountsPayload{}
	}

	counts := make(map[string]services.CountSubmission, len(payload.Counts))
	for zoneID, cp := range payload.Counts {
		counts[zoneID] = services.CountSubmission{
			Label:   cp.Label,
			Current: cp.Current,
			Peak:    cp.Peak,
		}
	}

	result, err := th.Service.LogCounts(CurrentUserID(r), payload.File, counts)
	if err != nil {
		log.Printf("Error logging counts: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "flat_store_error", "Failed to log counts")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":            true,
		"total_current": result.TotalCurrent,
		"total_peak":    result.TotalPeak,
	})
}

// ExportZones streams the current global zone file.
func (th *TelemetryHandler) ExportZones(w http.ResponseWriter, r *http.Request) {
	data, err := th.ZoneFile.ReadRaw()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "no zones")
			return
		}
		log.Printf("Error reading zone file for export: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "export_error", "Failed to export zones")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="zones.json"`)
	w.Write(data)
}

// ExportCounts streams the global flat count ledger.
func (th *TelemetryHandler) ExportCounts(w http.ResponseWriter, r *http.Request) {
	data, err := th.CountLog.ReadRaw()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "no counts")
			return
		}
		log.Printf("Error reading count log for export: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "export_error", "Failed to export counts")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="counts_log.csv"`)
	w.Write(data)
}
