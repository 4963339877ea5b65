//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/connorkuehl/pointsbot/internal/bot"
	"github.com/connorkuehl/pointsbot/internal/command"
	"github.com/connorkuehl/pointsbot/internal/database"
	"github.com/connorkuehl/pointsbot/internal/discord"
	"github.com/connorkuehl/pointsbot/internal/health"
)

var DiscordSet = wire.NewSet(
	discord.NewSession,
	discord.NewDialer,
	discord.TokenFromEnv,
)

var StoreSet = wire.NewSet(
	database.NewLocked,
	provideStore,
)

func InitializeApp() (*App, func(), error) {
	wire.Build(
		wire.Struct(new(App), "*"),
		bot.New,
		command.NewRouter,
		health.NewServer,
		wire.Bind(new(bot.CommandRouter), new(*command.Router)),
		wire.Bind(new(bot.Session), new(*discord.Session)),
		wire.Bind(new(health.Heartbeater), new(*discord.Session)),
		DiscordSet,
		wire.Bind(new(bot.DB), new(*database.Locked)),
		StoreSet,
	)
	return nil, nil, nil
}
