package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/jsonc"

	"github.com/connorkuehl/pointsbot/internal/points"
)

var log = logrus.StandardLogger().WithFields(logrus.Fields{
	"component": "jsonfile",
})

const DefaultPath Path = "data.json"

type Path string

func PathFromEnv() Path {
	return pathFromEnv(os.Getenv)
}

// Store keeps the ledger in a single JSON file which is rewritten in full on
// every save.
type Store struct {
	path string
}

func New(path Path) *Store {
	return &Store{path: string(path)}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load(ctx context.Context) points.Document {
	ll := log.WithField("path", s.path)

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return points.Default()
	}
	if err != nil {
		ll.WithError(err).Warn("read ledger, using empty ledger")
		return points.Default()
	}

	doc, err := Decode(raw)
	if err != nil {
		ll.WithError(err).Warn("decode ledger, using empty ledger")
		return points.Default()
	}
	return doc
}

func (s *Store) Save(ctx context.Context, doc points.Document) error {
	b, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write ledger %s: %w", s.path, err)
	}
	return nil
}

// Decode parses a ledger file. Comments and trailing commas left behind by
// hand edits are tolerated.
func Decode(raw []byte) (points.Document, error) {
	var doc points.Document
	if err := json.Unmarshal(jsonc.ToJSON(raw), &doc); err != nil {
		return points.Document{}, err
	}
	return normalize(doc), nil
}

// Encode renders doc with two space indentation and no trailing newline.
func Encode(doc points.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(normalize(doc)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func normalize(doc points.Document) points.Document {
	balances := make(points.Balances, len(doc.Balances))
	for id, v := range doc.Balances {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			log.WithFields(logrus.Fields{"user_id": id, "points": v}).Warn("dropping invalid balance")
			continue
		}
		balances[id] = v
	}
	doc.Balances = balances

	if doc.Reply != nil {
		var text, media string
		if doc.Reply.Text != nil {
			text = *doc.Reply.Text
		}
		if doc.Reply.Media != nil {
			media = *doc.Reply.Media
		}
		reply := points.NewReplyConfig(text, media)
		doc.Reply = &reply
	}

	if doc.AuthorizedRoleID != nil && *doc.AuthorizedRoleID == "" {
		doc.AuthorizedRoleID = nil
	}

	return doc
}
