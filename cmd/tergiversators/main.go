// Command tergiversators plays a hot-seat game in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/freeeve/tergiversators/internal/console"
	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

func main() {
	var (
		players int
		seed    int64
		noColor bool
	)
	flag.IntVar(&players, "players", 2, "Number of players (2-5)")
	flag.Int64Var(&seed, "seed", 0, "Shuffle seed (0 = random)")
	flag.BoolVar(&noColor, "no-color", false, "Disable coloured output")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	board, err := tergiversators.Build(players, rand.New(rand.NewSource(seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	color := !noColor && isatty.IsTerminal(os.Stdout.Fd())
	fmt.Printf("%d players, seed %d\n", players, seed)

	_, err = console.Play(board, console.NewPrompter(os.Stdin, os.Stdout), console.NewRenderer(os.Stdout, color))
	if err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
