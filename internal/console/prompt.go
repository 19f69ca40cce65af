package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

// ParseCrew reads a crew name or its initial, ignoring case.
func ParseCrew(s string) (tergiversators.Crew, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range tergiversators.AllCrews() {
		if s == string(c) || (len(s) == 1 && s[0] == c[0]) {
			return c, true
		}
	}
	return tergiversators.NoCrew, false
}

// ParseZone reads a zone name, ignoring case.
func ParseZone(s string) (tergiversators.Zone, bool) {
	z := tergiversators.Zone(strings.ToLower(strings.TrimSpace(s)))
	if z.Index() < 0 {
		return "", false
	}
	return z, true
}

// Prompter asks questions and reads one answer per line, asking again until
// the answer is valid. It returns io.EOF once input runs out.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) ask(question string, parse func(string) bool) error {
	for {
		fmt.Fprintf(p.out, "%s ", question)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return err
			}
			return io.EOF
		}
		line := p.in.Text()
		if parse(line) {
			return nil
		}
		fmt.Fprintf(p.out, "Invalid answer: %q\n", strings.TrimSpace(line))
	}
}

// Crew asks for a crew by name or initial.
func (p *Prompter) Crew(question string) (tergiversators.Crew, error) {
	var c tergiversators.Crew
	err := p.ask(question, func(s string) bool {
		var ok bool
		c, ok = ParseCrew(s)
		return ok
	})
	return c, err
}

// Zone asks for a zone.
func (p *Prompter) Zone(question string) (tergiversators.Zone, error) {
	var z tergiversators.Zone
	err := p.ask(question, func(s string) bool {
		var ok bool
		z, ok = ParseZone(s)
		return ok
	})
	return z, err
}

// Number asks for a count between 0 and 255.
func (p *Prompter) Number(question string) (uint8, error) {
	var n uint8
	err := p.ask(question, func(s string) bool {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
		n = uint8(v)
		return err == nil
	})
	return n, err
}

// Action asks which action to take and then for its details. Only the
// actions a player can start a turn with are offered.
func (p *Prompter) Action() (tergiversators.Action, error) {
	var kind tergiversators.ActionType
	err := p.ask("Action? (recruit, march, battle, negotiate)", func(s string) bool {
		t, err := tergiversators.ParseActionType(strings.ToLower(strings.TrimSpace(s)))
		if err != nil || t == tergiversators.ActionEndNegotiation {
			return false
		}
		kind = t
		return true
	})
	if err != nil {
		return tergiversators.Action{}, err
	}

	switch kind {
	case tergiversators.ActionRecruit:
		return p.recruit()
	case tergiversators.ActionMarch:
		return p.march()
	case tergiversators.ActionBattle:
		return p.battle()
	default:
		return tergiversators.StartNegotiation(), nil
	}
}

func (p *Prompter) recruit() (tergiversators.Action, error) {
	c, err := p.Crew("Recruit which crew?")
	if err != nil {
		return tergiversators.Action{}, err
	}
	z, err := p.Zone("Recruit to which zone?")
	if err != nil {
		return tergiversators.Action{}, err
	}
	return tergiversators.Recruit(c, z), nil
}

func (p *Prompter) march() (tergiversators.Action, error) {
	c, err := p.Crew("March which crew?")
	if err != nil {
		return tergiversators.Action{}, err
	}
	from, err := p.Zone("From which zone?")
	if err != nil {
		return tergiversators.Action{}, err
	}
	to, err := p.Zone("To which zone?")
	if err != nil {
		return tergiversators.Action{}, err
	}
	n, err := p.Number("How many?")
	if err != nil {
		return tergiversators.Action{}, err
	}
	return tergiversators.March(c, from, to, n), nil
}

// battle skips asking how many of the attacking crew to remove.
func (p *Prompter) battle() (tergiversators.Action, error) {
	attacker, err := p.Crew("Attacking crew?")
	if err != nil {
		return tergiversators.Action{}, err
	}
	z, err := p.Zone("Battle in which zone?")
	if err != nil {
		return tergiversators.Action{}, err
	}
	var removed tergiversators.PieceCounter
	for _, c := range tergiversators.AllCrews() {
		if c == attacker {
			continue
		}
		n, err := p.Number("Remove how many " + Title(c) + "?")
		if err != nil {
			return tergiversators.Action{}, err
		}
		removed.Add(c, n)
	}
	return tergiversators.Battle(attacker, z, removed.Rogues, removed.Bullies, removed.Goons), nil
}
