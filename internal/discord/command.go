package discord

import "github.com/bwmarrin/discordgo"

const (
	PermissionManageServer = discordgo.PermissionManageServer
	PermissionManageRoles  = discordgo.PermissionManageRoles
)

// CommandDefinition describes a global slash command.
type CommandDefinition struct {
	Name        string
	Description string
	Permission  int64
	RoleOptions []CommandOption
}

type CommandOption struct {
	Name        string
	Description string
	Required    bool
}

func (c CommandDefinition) applicationCommand() *discordgo.ApplicationCommand {
	cmd := &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
	}
	if c.Permission != 0 {
		perm := c.Permission
		cmd.DefaultMemberPermissions = &perm
	}

	for _, opt := range c.RoleOptions {
		cmd.Options = append(cmd.Options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        opt.Name,
			Description: opt.Description,
			Required:    opt.Required,
		})
	}
	return cmd
}
