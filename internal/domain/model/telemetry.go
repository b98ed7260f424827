package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Degrees is a coordinate as the API printed it. Open Notify sends strings,
// but plain JSON numbers are accepted too.
type Degrees string

func (d *Degrees) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("parse degrees %q: %w", s, err)
		}
		*d = Degrees(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("parse degrees %s: %w", b, err)
	}
	*d = Degrees(b)
	return nil
}

func (d Degrees) Float64() (float64, error) {
	return strconv.ParseFloat(string(d), 64)
}

func (d Degrees) String() string { return string(d) }

// Position is where the station is right now.
type Position struct {
	Latitude  Degrees
	Longitude Degrees
	Timestamp int64
}

func (p Position) GeoPoint() (GeoPoint, error) {
	lat, err := p.Latitude.Float64()
	if err != nil {
		return GeoPoint{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := p.Longitude.Float64()
	if err != nil {
		return GeoPoint{}, fmt.Errorf("longitude: %w", err)
	}
	return GeoPoint{Latitude: lat, Longitude: lon}, nil
}

type Astronaut struct {
	Name  string
	Craft string
}

// Crew is everyone currently in space, in API order.
type Crew struct {
	Number int
	People []Astronaut
}

func (c Crew) Names() []string {
	names := make([]string, 0, len(c.People))
	for _, p := range c.People {
		names = append(names, p.Name)
	}
	return names
}

type Pass struct {
	RiseTime int64 // unix seconds
	Duration int   // seconds
}

// PassTimes lists upcoming visible passes over one location, in API order.
type PassTimes struct {
	Location GeoPoint
	Passes   []Pass
}

func (p PassTimes) RiseTimes() []int64 {
	out := make([]int64, 0, len(p.Passes))
	for _, pass := range p.Passes {
		out = append(out, pass.RiseTime)
	}
	return out
}

// RemoteResult summarizes one telemetry call for logging. Body is kept only
// for failed calls.
type RemoteResult struct {
	StatusCode int
	URL        string
	Body       []byte
}

func (r RemoteResult) OK() bool { return r.StatusCode == http.StatusOK }
