// Package console plays games in a terminal: it draws boards as text and
// reads actions typed by the players.
package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

// mapRows lists the zones in the order they sit on the printed map, top to
// bottom.
var mapRows = [][]tergiversators.Zone{
	{tergiversators.Green},
	{tergiversators.Yellow, tergiversators.Cyan, tergiversators.Magenta, tergiversators.Blue},
	{tergiversators.Orange, tergiversators.Purple, tergiversators.White},
	{tergiversators.Red, tergiversators.Gray, tergiversators.Black},
}

var crewColors = map[tergiversators.Crew]string{
	tergiversators.Rogues:  "\x1b[31m",
	tergiversators.Bullies: "\x1b[34m",
	tergiversators.Goons:   "\x1b[32m",
}

const colorReset = "\x1b[0m"

// Title returns a display name such as "Magenta" or "Goons".
func Title[T ~string](s T) string {
	return cases.Title(language.English).String(string(s))
}

// Renderer writes text pictures of boards.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer creates a Renderer. With color set, crew names are drawn in
// ANSI colours.
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

func (r *Renderer) crew(c tergiversators.Crew) string {
	if c == tergiversators.NoCrew {
		return "-"
	}
	if !r.color {
		return Title(c)
	}
	return crewColors[c] + Title(c) + colorReset
}

func counts(pc tergiversators.PieceCounter) string {
	return fmt.Sprintf("%d\t%d\t%d", pc.Rogues, pc.Bullies, pc.Goons)
}

// Board draws every zone with its pieces, controller and neighbours,
// followed by the tallies and the hand of the seat to play.
func (r *Renderer) Board(b tergiversators.Board) error {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Zone\tR\tB\tG\tControl\tBorders")
	for _, row := range mapRows {
		for _, z := range row {
			var borders []string
			for _, n := range tergiversators.ZonesAdjacentTo(z) {
				borders = append(borders, Title(n))
			}
			name := Title(z)
			if home := z.HomeCrew(); home != tergiversators.NoCrew {
				name += " (" + Title(home) + ")"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, counts(b.Zone(z)), r.crew(b.Controller(z)), strings.Join(borders, ", "))
		}
	}
	fmt.Fprintln(tw, "\t\t\t\t\t")
	fmt.Fprintf(tw, "Flags\t%s\t\t\n", counts(b.Flags()))
	fmt.Fprintf(tw, "Swords\t%s\t\t\n", counts(b.Swords()))
	fmt.Fprintf(tw, "Hand\t%s\t\t\n", counts(b.CurrentHand()))
	if err := tw.Flush(); err != nil {
		return err
	}

	status := fmt.Sprintf("%s to play. Bag: %d.", b.NextPlayer().Ordinal(), b.Bag().Total())
	if b.Negotiating() {
		status += " Negotiating."
	}
	if n := b.ConsecutiveNegotiations(); n > 0 {
		status += fmt.Sprintf(" Negotiations: %d/%d.", n, b.NumPlayers())
	}
	_, err := fmt.Fprintln(r.w, status)
	return err
}

// Winner announces the end of a game.
func (r *Renderer) Winner(w tergiversators.Winner) error {
	_, err := fmt.Fprintf(r.w, "Winner: %s\n", w)
	return err
}

// Rejected reports an action the rules refused.
func (r *Renderer) Rejected(err error) error {
	_, werr := fmt.Fprintf(r.w, "Error: %v\n", err)
	return werr
}
