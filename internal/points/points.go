package points

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

var (
	ErrUnauthorized  = errors.New("not authorized to grant points")
	ErrInvalidUserID = errors.New("invalid user id")
	ErrInvalidAmount = errors.New("amount must be a finite number greater than zero")
)

type Balances map[string]float64

// Document is everything the bot persists. A single authorized role applies
// to every server the bot is in.
type Document struct {
	AuthorizedRoleID *string      `json:"roleIdAllowed"`
	Balances         Balances     `json:"userPoints"`
	Reply            *ReplyConfig `json:"replyConfig"`
}

type ReplyConfig struct {
	Text  *string `json:"text"`
	Media *string `json:"media"`
}

func Default() Document {
	return Document{Balances: make(Balances)}
}

// IsAuthorized reports whether an actor holding roleIDs may grant points.
// Nobody may until a role has been configured.
func IsAuthorized(roleIDs []string, doc Document) bool {
	if doc.AuthorizedRoleID == nil || *doc.AuthorizedRoleID == "" {
		return false
	}

	for _, id := range roleIDs {
		if id == *doc.AuthorizedRoleID {
			return true
		}
	}
	return false
}

func (d *Document) SetAuthorizedRole(roleID string) {
	d.AuthorizedRoleID = &roleID
}

// Credit adds amount to the balance of userID and returns the new balance.
func (d *Document) Credit(userID string, amount float64) float64 {
	if d.Balances == nil {
		d.Balances = make(Balances)
	}
	d.Balances[userID] += amount
	return d.Balances[userID]
}

func (d Document) Balance(userID string) float64 {
	return d.Balances[userID]
}

// ParseUserID accepts a Discord snowflake, surrounding whitespace allowed.
func ParseUserID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidUserID)
	}

	id, err := snowflake.Parse(s)
	if err != nil || id == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidUserID, s)
	}
	return id.String(), nil
}

// ParseAmount accepts any finite number greater than zero, fractions
// included.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if math.IsInf(amount, 0) || math.IsNaN(amount) || amount <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return amount, nil
}

// FormatPoints renders a balance in its shortest form: 150, 2.5.
func FormatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
