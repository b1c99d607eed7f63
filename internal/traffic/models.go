// Package traffic provides road traffic flow context for route scoring and
// result metadata.
package traffic

import (
	"context"
	"errors"
	"time"
)

// ErrProviderUnavailable indicates the traffic provider is unconfigured or
// the call failed.
var ErrProviderUnavailable = errors.New("traffic provider unavailable")

// BBox is a geographic bounding box.
type BBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Center returns the center point of the box.
func (b BBox) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// Provider fetches traffic flow data for an area.
type Provider interface {
	// GetFlow retrieves a representative flow snapshot for the area.
	GetFlow(ctx context.Context, area BBox) (*Snapshot, error)
	// Name returns the provider identifier.
	Name() string
}

// Snapshot is a point-in-time view of traffic flow on roads representative
// of the queried area.
type Snapshot struct {
	Provider         string
	CurrentSpeedKPH  float64
	FreeFlowSpeedKPH float64
	Confidence       float64
	RoadClosure      bool
	FetchedAt        time.Time
}

// CongestionLevel returns the congestion on a 0..1 scale, where 0 is free
// flow and 1 is standstill.
func (s *Snapshot) CongestionLevel() float64 {
	if s == nil || s.FreeFlowSpeedKPH <= 0 {
		return 0
	}
	level := 1 - s.CurrentSpeedKPH/s.FreeFlowSpeedKPH
	if level < 0 {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}

// Summary is the bucketed traffic description included in result metadata.
type Summary struct {
	Status      string  `json:"status"`
	Description string  `json:"description"`
	Congestion  float64 `json:"congestion"`
}

// Congestion bucket thresholds.
const (
	lightCongestionMax    = 0.2
	moderateCongestionMax = 0.5
)

// Summarize buckets a snapshot into a human-readable summary. A nil
// snapshot yields the unknown status.
func Summarize(s *Snapshot) Summary {
	if s == nil {
		return Summary{Status: "unknown", Description: "Traffic data unavailable"}
	}

	level := s.CongestionLevel()
	switch {
	case level < lightCongestionMax:
		return Summary{Status: "normal", Description: "Normal traffic conditions", Congestion: level}
	case level < moderateCongestionMax:
		return Summary{Status: "moderate", Description: "Moderate congestion on main roads", Congestion: level}
	default:
		return Summary{Status: "heavy", Description: "Heavy congestion, expect delays", Congestion: level}
	}
}
