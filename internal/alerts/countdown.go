package alerts

import (
	"fmt"
	"time"
)

// CountdownRefresh is how often a displayed countdown is recomputed.
const CountdownRefresh = 60 * time.Second

const TextFinalizada = "Audiencia finalizada"

type CountdownResult struct {
	Text     string `json:"text"`
	Urgency  Level  `json:"urgency"`
	Finished bool   `json:"finished"`
	Valid    bool   `json:"valid"`
}

// Countdown formats the time left until fecha+hora using the largest
// non-zero unit: "2d 3h 15m", "3h 15m" or "15m". Unparseable input
// returns hora unchanged.
func Countdown(fecha, hora string, now time.Time) CountdownResult {
	instant, err := CombineFechaHora(fecha, hora, now.Location())
	if err != nil {
		return CountdownResult{Text: hora, Urgency: LevelNone}
	}
	diff := instant.Sub(now)
	if diff <= 0 {
		return CountdownResult{Text: TextFinalizada, Urgency: LevelNone, Finished: true, Valid: true}
	}

	days := int(diff / day)
	hours := int((diff % day) / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)

	res := CountdownResult{Valid: true}
	switch {
	case days > 0:
		res.Text = fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
		res.Urgency = LevelGreen
		if days <= 1 {
			res.Urgency = LevelOrange
		}
	case hours > 0:
		res.Text = fmt.Sprintf("%dh %dm", hours, minutes)
		res.Urgency = LevelOrange
		if hours <= 2 {
			res.Urgency = LevelRed
		}
	default:
		res.Text = fmt.Sprintf("%dm", minutes)
		res.Urgency = LevelRed
	}
	return res
}
