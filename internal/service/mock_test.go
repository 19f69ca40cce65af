package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

type fakeTokens struct {
	fail bool
}

func (f fakeTokens) GenerateSeatToken(gameID string, player tergiversators.Player) (string, error) {
	if f.fail {
		return "", errors.New("signing failed")
	}
	return fmt.Sprintf("%s/%s", gameID, player), nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	closed []string
}

func (n *recordingNotifier) GameClosed(gameID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = append(n.closed, gameID)
}
