package deck

import (
	"fmt"
	"testing"

	"github.com/youruser/botdb/internal/cards"
)

func card(name, print, typ string) cards.Card {
	return cards.Card{Name: name, Print: print, Type: typ, IsOnlyOne: "N"}
}

func singleton(name, print, typ string) cards.Card {
	c := card(name, print, typ)
	c.IsOnlyOne = OnlyOneFlag
	return c
}

func lifeCard(i int) cards.Card {
	return card(fmt.Sprintf("Life %d", i), fmt.Sprintf("L-%03d", i), TypeLife)
}

func mustAdd(t *testing.T, s *Store, c cards.Card, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		if err := s.Add(c); err != nil {
			t.Fatalf("add %s (#%d): %v", c.Name, i+1, err)
		}
	}
}

func wantReason(t *testing.T, err error, want Reason) {
	t.Helper()
	rv, ok := err.(*RuleViolation)
	if !ok {
		t.Fatalf("expected *RuleViolation with %s, got %v", want.Code(), err)
	}
	if rv.Reason != want {
		t.Fatalf("expected reason %s, got %s", want.Code(), rv.Reason.Code())
	}
}
