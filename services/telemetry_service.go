package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Sathyasree11/Crowd-count-using-video-analytics/database"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/flatlog"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/models"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/repository"
)

// SinkStatus classifies the outcome of one relational write attempt. Failures
// are folded into a no-op at the call site; the caller still observes success.
type SinkStatus int

const (
	SinkOK SinkStatus = iota
	// SinkSkipped means no target video resolved, so the relational write
	// never ran.
	SinkSkipped
	// SinkUnavailable means the relational store could not be reached.
	SinkUnavailable
	// SinkSchemaMismatch means an older-schema installation rejected both the
	// primary and the fallback write.
	SinkSchemaMismatch
	// SinkFailed covers any other relational error.
	SinkFailed
)

func (s SinkStatus) String() string {
	switch s {
	case SinkOK:
		return "ok"
	case SinkSkipped:
		return "skipped"
	case SinkUnavailable:
		return "unavailable"
	case SinkSchemaMismatch:
		return "schema-mismatch"
	default:
		return "failed"
	}
}

func classifySinkErr(err error) SinkStatus {
	switch {
	case err == nil:
		return SinkOK
	case errors.Is(err, database.ErrUnavailable):
		return SinkUnavailable
	case errors.Is(err, database.ErrSchemaMismatch):
		return SinkSchemaMismatch
	default:
		return SinkFailed
	}
}

// CountSubmission is one zone's occupancy reading as submitted by the caller.
type CountSubmission struct {
	Label   string
	Current int
	Peak    int
}

// SaveZonesResult reports one resolve-and-save-zones call. Inserted counts
// relational rows only; the flat file is rewritten regardless.
type SaveZonesResult struct {
	Inserted   int
	Resolution Resolution
	Sink       SinkStatus
}

// LogCountsResult reports one resolve-and-log-counts call. Totals are sums
// over this call's payload only, not over history.
type LogCountsResult struct {
	TotalCurrent int
	TotalPeak    int
	Resolution   Resolution
	Sink         SinkStatus
}

// TelemetryService is the write path for zones and occupancy counts. Every
// operation has two destinations: the global flat file (always attempted,
// failure is fatal to the request) and the relational store (best effort,
// failure degrades to a logged no-op).
type TelemetryService struct {
	Resolver *VideoResolver
	Zones    repository.ZoneRepository
	Counts   repository.CountRepository
	ZoneFile flatlog.ZoneStore
	CountLog flatlog.CountLog
}

func NewTelemetryService(resolver *VideoResolver, zones repository.ZoneRepository,
	counts repository.CountRepository, zoneFile flatlog.ZoneStore, countLog flatlog.CountLog) *TelemetryService {
	return &TelemetryService{
		Resolver: resolver,
		Zones:    zones,
		Counts:   counts,
		ZoneFile: zoneFile,
		CountLog: countLog,
	}
}

// SaveZones overwrites the shared flat zone file with the submitted list,
// then resolves the target video and replaces its relational zone set as a
// unit. The flat write happens before and independently of resolution, so it
// succeeds even when no video can be determined.
func (s *TelemetryService) SaveZones(ownerID *uint, filenameHint string, zones []models.VideoZone) (SaveZonesResult, error) {
	if err := s.ZoneFile.WriteAll(zonesToRecords(zones)); err != nil {
		return SaveZonesResult{}, fmt.Errorf("failed to write flat zone file: %w", err)
	}

	res := s.Resolver.Resolve(ownerID, filenameHint)
	if res.Status == ResolutionNone {
		return SaveZonesResult{Resolution: res, Sink: SinkSkipped}, nil
	}

	inserted, err := s.Zones.ReplaceForVideo(res.VideoID, zones)
	status := classifySinkErr(err)
	if err != nil {
		log.Printf("zone replace for video %d degraded (%s): %v", res.VideoID, status, err)
		return SaveZonesResult{Resolution: res, Sink: status}, nil
	}
	return SaveZonesResult{Inserted: inserted, Resolution: res, Sink: status}, nil
}

// LogCounts stamps the submitted readings with the current time, appends them
// to the global flat ledger, and mirrors them to the per-video relational
// ledger when a target video resolves. The flat append runs unconditionally;
// its failure is the only one surfaced to the caller.
func (s *TelemetryService) LogCounts(ownerID *uint, filenameHint string, counts map[string]CountSubmission) (LogCountsResult, error) {
	ts := float64(time.Now().UnixNano()) / float64(time.Second)

	result := LogCountsResult{}
	rows := make([]flatlog.CountRow, 0, len(counts))
	samples := make([]models.ZoneCount, 0, len(counts))
	for zoneID, c := range counts {
		rows = append(rows, flatlog.CountRow{
			TS:      ts,
			ZoneID:  zoneID,
			Label:   c.Label,
			Current: c.Current,
			Peak:    c.Peak,
		})
		samples = append(samples, models.ZoneCount{
			ZoneID:  zoneID,
			TS:      ts,
			Label:   c.Label,
			Current: c.Current,
			Peak:    c.Peak,
		})
		result.TotalCurrent += c.Current
		result.TotalPeak += c.Peak
	}

	if err := s.CountLog.Append(rows); err != nil {
		return LogCountsResult{}, fmt.Errorf("failed to append flat count ledger: %w", err)
	}

	res := s.Resolver.Resolve(ownerID, filenameHint)
	result.Resolution = res
	if res.Status == ResolutionNone {
		result.Sink = SinkSkipped
		return result, nil
	}

	for i := range samples {
		samples[i].VideoID = res.VideoID
	}
	err := s.Counts.AppendBatch(samples)
	result.Sink = classifySinkErr(err)
	if err != nil {
		log.Printf("count append for video %d degraded (%s): %v", res.VideoID, result.Sink, err)
	}
	return result, nil
}

func zonesToRecords(zones []models.VideoZone) []flatlog.ZoneRecord {
	records := make([]flatlog.ZoneRecord, 0, len(zones))
	for _, z := range zones {
		records = append(records, flatlog.ZoneRecord{
			ID:          z.ZoneID,
			Label:       z.Label,
			TopLeft:     flatlog.Point{X: z.TopLeftX, Y: z.TopLeftY},
			TopRight:    flatlog.Point{X: z.TopRightX, Y: z.TopRightY},
			BottomLeft:  flatlog.Point{X: z.BottomLeftX, Y: z.BottomLeftY},
			BottomRight: flatlog.Point{X: z.BottomRightX, Y: z.BottomRightY},
		})
	}
	return records
}
