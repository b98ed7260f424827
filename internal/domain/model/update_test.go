//go:build !integration

package model

import (
	"encoding/json"
	"errors"
	"testing"

	"iss-telemetry-bot/internal/domain"
)

func TestInboundUpdate(t *testing.T) {
	t.Run("should treat any location as a pass times request", func(t *testing.T) {
		u := InboundUpdate{Kind: UpdateLocation, ChatID: 1, Location: &GeoPoint{Latitude: 10, Longitude: 20}}
		if u.Intent() != domain.IntentPassTimes {
			t.Errorf("expected pass times, got %v", u.Intent())
		}
		if err := u.Validate(); err != nil {
			t.Errorf("expected valid update, got %v", err)
		}
	})

	t.Run("should resolve callbacks by data, not text", func(t *testing.T) {
		u := InboundUpdate{Kind: UpdateCallback, ChatID: 1, Data: "crew", Text: "/position"}
		if u.Intent() != domain.IntentCrew {
			t.Errorf("expected crew, got %v", u.Intent())
		}
	})

	t.Run("should reject updates without a chat", func(t *testing.T) {
		err := InboundUpdate{Kind: UpdateText, Text: "/start"}.Validate()
		if !errors.Is(err, domain.ErrMissingChat) {
			t.Errorf("expected ErrMissingChat, got %v", err)
		}
	})

	t.Run("should reject location updates without coordinates", func(t *testing.T) {
		err := InboundUpdate{Kind: UpdateLocation, ChatID: 1}.Validate()
		if !errors.Is(err, domain.ErrMissingLocation) {
			t.Errorf("expected ErrMissingLocation, got %v", err)
		}
	})

	t.Run("should resolve unset kinds to unknown", func(t *testing.T) {
		if (InboundUpdate{ChatID: 1, Text: "/crew"}).Intent() != domain.IntentUnknown {
			t.Error("expected unknown")
		}
	})
}

func TestDegrees(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "string", raw: `"-51.2345"`, want: "-51.2345"},
		{name: "number", raw: `12.5`, want: "12.5"},
		{name: "not a number", raw: `"north"`, wantErr: true},
		{name: "bool", raw: `true`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Degrees
			err := json.Unmarshal([]byte(tc.raw), &d)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.String() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, d)
			}
		})
	}
}
