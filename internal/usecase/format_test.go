//go:build !integration

package usecase_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"iss-telemetry-bot/internal/domain/model"
	"iss-telemetry-bot/internal/usecase"
)

func TestFormatPassTimes(t *testing.T) {
	t.Run("should print each rise time in the configured zone", func(t *testing.T) {
		msk := time.FixedZone("MSK", 3*60*60)

		got := usecase.FormatPassTimes([]int64{1700000000, 1700003600}, msk)

		want := "15.11.2023 01:13:20\n15.11.2023 02:13:20"
		if got != want {
			t.Errorf("wanted %q, got %q", want, got)
		}
	})

	t.Run("should keep input order and layout", func(t *testing.T) {
		layout := regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4} \d{2}:\d{2}:\d{2}$`)

		got := usecase.FormatPassTimes([]int64{1700003600, 1700000000}, time.UTC)

		lines := strings.Split(got, "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
		}
		for _, l := range lines {
			if !layout.MatchString(l) {
				t.Errorf("line %q does not match DD.MM.YYYY HH:MM:SS", l)
			}
		}
		if lines[0] != "14.11.2023 23:13:20" || lines[1] != "14.11.2023 22:13:20" {
			t.Errorf("expected input order, got %v", lines)
		}
	})

	t.Run("should return empty text for no passes", func(t *testing.T) {
		if got := usecase.FormatPassTimes(nil, time.UTC); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

func TestFormatCrew(t *testing.T) {
	t.Run("should list names comma and newline separated", func(t *testing.T) {
		crew := model.Crew{Number: 3, People: []model.Astronaut{{Name: "A"}, {Name: "B"}, {Name: "C"}}}

		got := usecase.FormatCrew(crew)

		want := "*Current crew is 3 humans:*\nA,\nB,\nC"
		if got != want {
			t.Errorf("wanted %q, got %q", want, got)
		}
	})

	t.Run("should escape markdown in names", func(t *testing.T) {
		crew := model.Crew{Number: 1, People: []model.Astronaut{{Name: "Jane_Doe*"}}}

		got := usecase.FormatCrew(crew)

		if !strings.HasSuffix(got, `Jane\_Doe\*`) {
			t.Errorf("expected escaped name, got %q", got)
		}
	})
}

func TestFormatPosition(t *testing.T) {
	got := usecase.FormatPosition(model.Position{Latitude: "-51.2345", Longitude: "12.0001"})

	want := "Current ISS position is: -51.2345°, 12.0001°"
	if got != want {
		t.Errorf("wanted %q, got %q", want, got)
	}
}
