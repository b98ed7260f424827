package usecase

import (
	"fmt"
	"strings"
	"time"

	"iss-telemetry-bot/internal/domain/model"
)

// PassTimeLayout is DD.MM.YYYY HH:MM:SS.
const PassTimeLayout = "02.01.2006 15:04:05"

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

func FormatPosition(p model.Position) string {
	return fmt.Sprintf("Current ISS position is: %s°, %s°", p.Latitude, p.Longitude)
}

// FormatCrew renders Markdown; names are escaped so they cannot break the markup.
func FormatCrew(c model.Crew) string {
	names := c.Names()
	for i, n := range names {
		names[i] = markdownEscaper.Replace(n)
	}
	return fmt.Sprintf("*Current crew is %d humans:*\n", c.Number) + strings.Join(names, ",\n")
}

// FormatPassTimes prints each unix rise time in loc, one per line, keeping order.
func FormatPassTimes(riseTimes []int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	lines := make([]string, 0, len(riseTimes))
	for _, ts := range riseTimes {
		lines = append(lines, time.Unix(ts, 0).In(loc).Format(PassTimeLayout))
	}
	return strings.Join(lines, "\n")
}
