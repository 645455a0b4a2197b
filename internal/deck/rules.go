package deck

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/youruser/botdb/internal/cards"
)

const (
	MaxDeckSize  = 50
	MaxCopies    = 4
	MaxLifeCards = 5

	// TypeLife marks life cards: at most MaxLifeCards of them, one copy each.
	TypeLife = "L"
	// OnlyOneFlag in Card.IsOnlyOne limits a card to a single copy.
	OnlyOneFlag = "Y"
)

// Reason says why a card cannot be added.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonSingletonPresent
	ReasonCardCap
	ReasonLifeSlots
	ReasonLifeDuplicate
	ReasonDeckFull
)

var reasonText = map[Reason]string{
	ReasonNone:             "allowed",
	ReasonSingletonPresent: "this card is #1: only one copy is allowed in a deck",
	ReasonCardCap:          fmt.Sprintf("at most %d copies of this card are allowed in a deck", MaxCopies),
	ReasonLifeSlots:        fmt.Sprintf("at most %d life cards are allowed in a deck", MaxLifeCards),
	ReasonLifeDuplicate:    "life cards cannot be duplicated",
	ReasonDeckFull:         fmt.Sprintf("the deck already holds %d cards", MaxDeckSize),
}

var reasonCodes = map[Reason]string{
	ReasonNone:             "none",
	ReasonSingletonPresent: "singleton_present",
	ReasonCardCap:          "card_cap",
	ReasonLifeSlots:        "life_slots",
	ReasonLifeDuplicate:    "life_duplicate",
	ReasonDeckFull:         "deck_full",
}

func (r Reason) String() string {
	if s, ok := reasonText[r]; ok {
		return s
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Code is a stable machine-readable name for r.
func (r Reason) Code() string {
	if s, ok := reasonCodes[r]; ok {
		return s
	}
	return "unknown"
}

func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.Code()), nil
}

// Decision is the outcome of CanAdd.
type Decision struct {
	Allowed bool
	Reason  Reason
}

var allow = Decision{Allowed: true}

func reject(r Reason) Decision { return Decision{Reason: r} }

// ErrRuleViolation matches every *RuleViolation under errors.Is.
var ErrRuleViolation = errors.New("deck rule violation")

// RuleViolation is returned by Store.Add when the rules reject a card.
type RuleViolation struct {
	Reason Reason
	Card   string
}

func (e *RuleViolation) Error() string {
	return fmt.Sprintf("cannot add %q: %s", e.Card, e.Reason)
}

func (e *RuleViolation) Is(target error) bool {
	return target == ErrRuleViolation
}

// CanAdd decides whether one more copy of card fits in s. Checks run in a
// fixed order and the first failure is reported.
func CanAdd(s *Store, card cards.Card) Decision {
	existing, present := s.entries[card.Name]

	if card.IsOnlyOne == OnlyOneFlag && present && existing.Count >= 1 {
		return reject(ReasonSingletonPresent)
	}
	if card.Type != TypeLife && present && existing.Count >= MaxCopies {
		return reject(ReasonCardCap)
	}
	if card.Type == TypeLife {
		if !present && s.lifeEntries() >= MaxLifeCards {
			return reject(ReasonLifeSlots)
		}
		if present {
			return reject(ReasonLifeDuplicate)
		}
	}
	if s.Total() >= MaxDeckSize {
		return reject(ReasonDeckFull)
	}
	return allow
}

// Violation is a broken deck rule found by Validate.
type Violation struct {
	Reason Reason `json:"reason"`
	Card   string `json:"card,omitempty"`
	Detail string `json:"detail"`
}

// Validate checks a whole deck against the rules that Add enforces one card
// at a time. Decks built only through Add never have violations; imported
// decks may.
func Validate(s *Store) []Violation {
	var out []Violation
	for _, e := range s.Entries() {
		switch {
		case e.Card.IsOnlyOne == OnlyOneFlag && e.Count > 1:
			out = append(out, Violation{
				Reason: ReasonSingletonPresent,
				Card:   e.Card.Name,
				Detail: fmt.Sprintf("%d copies of a #1 card", e.Count),
			})
		case e.Card.Type == TypeLife && e.Count > 1:
			out = append(out, Violation{
				Reason: ReasonLifeDuplicate,
				Card:   e.Card.Name,
				Detail: fmt.Sprintf("%d copies of a life card", e.Count),
			})
		case e.Card.Type != TypeLife && e.Count > MaxCopies:
			out = append(out, Violation{
				Reason: ReasonCardCap,
				Card:   e.Card.Name,
				Detail: fmt.Sprintf("%d copies, limit %d", e.Count, MaxCopies),
			})
		}
	}
	if n := s.lifeEntries(); n > MaxLifeCards {
		out = append(out, Violation{
			Reason: ReasonLifeSlots,
			Detail: fmt.Sprintf("%d life cards, limit %d", n, MaxLifeCards),
		})
	}
	if total := s.Total(); total > MaxDeckSize {
		out = append(out, Violation{
			Reason: ReasonDeckFull,
			Detail: fmt.Sprintf("%d cards, limit %d", total, MaxDeckSize),
		})
	}
	return out
}
