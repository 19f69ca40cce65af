package arena

import "github.com/freeeve/tergiversators/pkg/tergiversators"

// SeatStats aggregates one seat's results across games.
type SeatStats struct {
	Player tergiversators.Player `json:"player"`
	Games  int                   `json:"games"`
	Wins   int                   `json:"wins"`
}

// Summary aggregates a batch of arena results. Nil results (failed games)
// are skipped.
type Summary struct {
	Games      int         `json:"games"`
	Draws      int         `json:"draws"`
	Unfinished int         `json:"unfinished"`
	Stalled    int         `json:"stalled"`
	AvgTurns   float64     `json:"avg_turns"`
	Seats      []SeatStats `json:"seats"`

	// Zones held at the end of each game, summed per crew.
	Zones struct {
		Rogues  int `json:"rogues"`
		Bullies int `json:"bullies"`
		Goons   int `json:"goons"`
	} `json:"zones"`
}

// Summarize aggregates results.
func Summarize(results []*Result) Summary {
	var s Summary
	seats := make([]SeatStats, tergiversators.PlayerCount)
	for i, p := range tergiversators.AllPlayers() {
		seats[i].Player = p
	}

	turns := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Games++
		turns += r.Turns
		if !r.Finished {
			s.Unfinished++
		}
		if r.Stalled {
			s.Stalled++
		}
		for i := 0; i < r.Players; i++ {
			seats[i].Games++
		}
		if r.Winner.Draw {
			s.Draws++
		} else if i := r.Winner.Player.Seat(); i >= 0 {
			seats[i].Wins++
		}
		s.Zones.Rogues += int(r.Tally.Rogues)
		s.Zones.Bullies += int(r.Tally.Bullies)
		s.Zones.Goons += int(r.Tally.Goons)
	}
	if s.Games > 0 {
		s.AvgTurns = float64(turns) / float64(s.Games)
	}
	for _, st := range seats {
		if st.Games > 0 {
			s.Seats = append(s.Seats, st)
		}
	}
	return s
}
