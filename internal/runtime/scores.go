package runtime

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/arcade-runtime/internal/storage"
)

// ScoreStore persists finished sessions. *storage.Store implements it.
type ScoreStore interface {
	SaveSession(sess storage.Session) error
	HighScore(game string) (int, error)
}

// ScoreList is the append-only list of scores recorded during one game
// session.
type ScoreList struct {
	id     string
	game   string
	player string
	scores []int
}

func newScoreList(game, player string) *ScoreList {
	return &ScoreList{id: uuid.NewString(), game: game, player: player}
}

// ID returns the session id.
func (l *ScoreList) ID() string {
	return l.id
}

// Game returns the name of the game the session belongs to.
func (l *ScoreList) Game() string {
	return l.game
}

// Record appends a score.
func (l *ScoreList) Record(v int) {
	l.scores = append(l.scores, v)
}

// Scores returns a copy of the recorded scores, oldest first.
func (l *ScoreList) Scores() []int {
	out := make([]int, len(l.scores))
	copy(out, l.scores)
	return out
}

// Best returns the highest recorded score, or 0.
func (l *ScoreList) Best() int {
	best := 0
	for _, s := range l.scores {
		if s > best {
			best = s
		}
	}
	return best
}

// Session converts the list for storage.
func (l *ScoreList) Session() storage.Session {
	return storage.Session{ID: l.id, Game: l.game, Player: l.player, Scores: l.Scores()}
}
