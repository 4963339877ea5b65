package discord

import (
	"fmt"

	"github.com/connorkuehl/pointsbot/internal/env"
)

func tokenFromEnv(f func(key string) (val string)) (Token, error) {
	token, err := env.Get("DISCORD_TOKEN", f)
	if err != nil {
		return "", fmt.Errorf("DISCORD_TOKEN: %w", err)
	}

	return Token(token), err
}
