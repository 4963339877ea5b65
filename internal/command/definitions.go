package command

import "github.com/connorkuehl/pointsbot/internal/discord"

// Definitions lists the slash commands registered on startup.
func Definitions() []discord.CommandDefinition {
	return []discord.CommandDefinition{
		{
			Name:        CommandPanel,
			Description: "Admin panel for managing points",
			Permission:  discord.PermissionManageServer,
		},
		{
			Name:        CommandSetRole,
			Description: "Set the role allowed to grant points",
			Permission:  discord.PermissionManageRoles,
			RoleOptions: []discord.CommandOption{
				{Name: OptionRole, Description: "The allowed role", Required: true},
			},
		},
		{
			Name:        CommandSetupReply,
			Description: "Post a button that shows the configured reply",
			Permission:  discord.PermissionManageServer,
		},
	}
}
