package runtime

import (
	"testing"

	"github.com/vovakirdan/arcade-runtime/internal/config"
)

func TestCatalogPeek(t *testing.T) {
	c := NewCatalog([]config.Unit{{Name: "a"}, {Name: "b"}, {Name: "c"}})

	tests := []struct {
		current int
		delta   int
		want    int
	}{
		{-1, 1, 0},
		{-1, -1, 2},
		{0, 1, 1},
		{2, 1, 0},
		{0, -1, 2},
		{1, -1, 0},
	}
	for _, tc := range tests {
		c.Select(tc.current)
		if got := c.Peek(tc.delta); got != tc.want {
			t.Errorf("Peek(%d) from %d = %d, expected %d", tc.delta, tc.current, got, tc.want)
		}
	}

	if got := NewCatalog(nil).Peek(1); got != -1 {
		t.Errorf("empty Peek() = %d, expected -1", got)
	}
	if c.Index("b") != 1 || c.Index("zzz") != -1 {
		t.Error("Index() mismatch")
	}
}

func TestScoreList(t *testing.T) {
	l := newScoreList("snake", "ann")
	l.Record(4)
	l.Record(9)
	l.Record(2)

	if l.Best() != 9 {
		t.Errorf("Best() = %d, expected 9", l.Best())
	}
	sess := l.Session()
	if sess.ID == "" || sess.ID != l.ID() || sess.Game != "snake" || sess.Player != "ann" || len(sess.Scores) != 3 {
		t.Errorf("Session() = %+v", sess)
	}
	if newScoreList("snake", "ann").ID() == l.ID() {
		t.Error("session ids repeat")
	}
}
