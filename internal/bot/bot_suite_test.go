package bot_test

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/connorkuehl/pointsbot/internal/bot"
	"github.com/connorkuehl/pointsbot/internal/command"
	"github.com/connorkuehl/pointsbot/internal/database"
	"github.com/connorkuehl/pointsbot/internal/database/jsonfile"
	"github.com/connorkuehl/pointsbot/internal/database/sqlite"
	"github.com/connorkuehl/pointsbot/internal/discord"
	"github.com/connorkuehl/pointsbot/internal/discord/discordtest"
	"github.com/connorkuehl/pointsbot/internal/points"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const (
	guildID    = "900000000000000001"
	adminID    = "100000000000000001"
	adminTag   = "admin#0001"
	grantRole  = "555000000000000001"
	otherRole  = "777000000000000001"
	targetUser = "123456789012345678"
)

func slash(id, name string, options map[string]string) discord.Interaction {
	return discord.Interaction{
		ID:      id,
		Kind:    discord.KindCommand,
		Name:    name,
		GuildID: guildID,
		UserID:  adminID,
		UserTag: adminTag,
		Options: options,
	}
}

func component(id, customID string, values ...string) discord.Interaction {
	return discord.Interaction{
		ID:      id,
		Kind:    discord.KindComponent,
		Name:    customID,
		GuildID: guildID,
		UserID:  adminID,
		UserTag: adminTag,
		Values:  values,
	}
}

func grant(id string, roles []string, target, amount string) discord.Interaction {
	return discord.Interaction{
		ID:      id,
		Kind:    discord.KindModalSubmit,
		Name:    command.ModalGivePoints,
		GuildID: guildID,
		UserID:  adminID,
		UserTag: adminTag,
		RoleIDs: roles,
		Fields: map[string]string{
			command.FieldTargetUserID: target,
			command.FieldPointsAmount: amount,
		},
	}
}

func query(id, target string) discord.Interaction {
	return discord.Interaction{
		ID:      id,
		Kind:    discord.KindModalSubmit,
		Name:    command.ModalViewPoints,
		GuildID: guildID,
		UserID:  adminID,
		Fields:  map[string]string{command.FieldTargetUserID: target},
	}
}

func configureReply(id, text, media string) discord.Interaction {
	return discord.Interaction{
		ID:      id,
		Kind:    discord.KindModalSubmit,
		Name:    command.ModalSetReply,
		GuildID: guildID,
		UserID:  adminID,
		Fields: map[string]string{
			command.FieldReplyText:  text,
			command.FieldReplyMedia: media,
		},
	}
}

func ephemeral(content string) discord.Response {
	return discord.Response{Content: content, Ephemeral: true}
}

// brokenDB fails every write and panics on reads.
type brokenDB struct{}

func (brokenDB) Load(context.Context) points.Document {
	panic("backing store exploded")
}

func (brokenDB) Update(context.Context, func(*points.Document) error) error {
	return errors.New("disk full")
}

var _ = Describe("Bot", func() {
	var (
		router  *command.Router
		db      *database.Locked
		session *discordtest.ResponseRecorder
	)

	listen := func(interactions ...discord.Interaction) {
		session = discordtest.NewResponseRecorder(interactions)
		b := bot.New(session, db, router)
		_ = b.Listen(context.Background())
	}

	balanceOf := func(userID string) float64 {
		return db.Load(context.Background()).Balance(userID)
	}

	BeforeEach(func() {
		router = command.NewRouter()
		store := jsonfile.New(jsonfile.Path(filepath.Join(GinkgoT().TempDir(), "data.json")))
		db = database.NewLocked(store)
	}, OncePerOrdered)

	It("registers its slash commands when it starts listening", func() {
		listen()
		Expect(session.Registered).To(Equal(command.Definitions()))
	})

	It("keeps listening when command registration fails", func() {
		session = discordtest.NewResponseRecorder([]discord.Interaction{
			component("1", command.ButtonShowReply),
		})
		session.RegisterErr = errors.New("missing access")

		_ = bot.New(session, db, router).Listen(context.Background())
		Expect(session.Contents()).To(Equal([]string{points.NotConfigured}))
	})

	It("ignores interactions nobody handles", func() {
		listen(component("1", "some_other_bot_button"))
		Expect(session.Replies).To(BeEmpty())
	})

	When("the admin panel is opened", func() {
		It("replies privately with the action menu", func() {
			listen(slash("1", command.CommandPanel, nil))

			Expect(session.Replies).To(HaveLen(1))
			rsp := session.Replies[0].Response
			Expect(rsp.Ephemeral).To(BeTrue())
			Expect(rsp.Menu).ToNot(BeNil())
			Expect(rsp.Menu.CustomID).To(Equal(command.MenuAdmin))
			Expect(rsp.Menu.Options).To(ConsistOf(
				HaveField("Value", command.ActionGivePoints),
				HaveField("Value", command.ActionViewPoints),
			))
		})

		It("opens the grant form for the grant action", func() {
			listen(component("1", command.MenuAdmin, command.ActionGivePoints))

			Expect(session.Replies).To(HaveLen(1))
			modal := session.Replies[0].Response.Modal
			Expect(modal).ToNot(BeNil())
			Expect(modal.CustomID).To(Equal(command.ModalGivePoints))
			Expect(modal.Inputs).To(ConsistOf(
				HaveField("CustomID", command.FieldTargetUserID),
				HaveField("CustomID", command.FieldPointsAmount),
			))
		})

		It("opens the lookup form for the query action", func() {
			listen(component("1", command.MenuAdmin, command.ActionViewPoints))

			Expect(session.Replies).To(HaveLen(1))
			modal := session.Replies[0].Response.Modal
			Expect(modal).ToNot(BeNil())
			Expect(modal.CustomID).To(Equal(command.ModalViewPoints))
			Expect(modal.Inputs).To(HaveLen(1))
		})

		It("rejects an unknown action", func() {
			listen(component("1", command.MenuAdmin, "delete_everything"))
			Expect(session.Replies).To(ConsistOf(discordtest.Reply{InteractionID: "1", Response: ephemeral("❌ Invalid input.")}))
		})
	})

	When("the authorized role is set", func() {
		It("stores the role and acknowledges it", func() {
			listen(slash("1", command.CommandSetRole, map[string]string{command.OptionRole: grantRole}))

			Expect(session.Contents()).To(Equal([]string{"✅ Authorized role set: <@&" + grantRole + ">"}))
			doc := db.Load(context.Background())
			Expect(doc.AuthorizedRoleID).ToNot(BeNil())
			Expect(*doc.AuthorizedRoleID).To(Equal(grantRole))
		})

		It("replaces the previous role", func() {
			listen(
				slash("1", command.CommandSetRole, map[string]string{command.OptionRole: grantRole}),
				slash("2", command.CommandSetRole, map[string]string{command.OptionRole: otherRole}),
			)

			Expect(*db.Load(context.Background()).AuthorizedRoleID).To(Equal(otherRole))
		})
	})

	When("granting points", func() {
		Context("and no role has been configured", func() {
			It("refuses everyone", func() {
				listen(grant("1", []string{grantRole, otherRole}, targetUser, "100"))

				Expect(session.Contents()).To(Equal([]string{"❌ You are not allowed to grant points."}))
				Expect(balanceOf(targetUser)).To(BeZero())
				Expect(session.DirectMessages).To(BeEmpty())
			})
		})

		Context("and the member lacks the authorized role", func() {
			It("refuses the grant", func() {
				listen(
					slash("1", command.CommandSetRole, map[string]string{command.OptionRole: grantRole}),
					grant("2", []string{otherRole}, targetUser, "100"),
				)

				Expect(session.Contents()[1]).To(Equal("❌ You are not allowed to grant points."))
				Expect(balanceOf(targetUser)).To(BeZero())
			})
		})

		Context("and the member holds the authorized role", Ordered, func() {
			BeforeAll(func() {
				listen(
					slash("1", command.CommandSetRole, map[string]string{command.OptionRole: grantRole}),
					grant("2", []string{otherRole, grantRole}, targetUser, "100"),
					grant("3", []string{grantRole}, targetUser, "50"),
				)
			})

			It("acknowledges each grant privately", func() {
				Expect(session.Replies[1:]).To(Equal([]discordtest.Reply{
					{InteractionID: "2", Response: ephemeral("✅ Granted 100 points to user " + targetUser + ".")},
					{InteractionID: "3", Response: ephemeral("✅ Granted 50 points to user " + targetUser + ".")},
				}))
			})

			It("accumulates the balance", func() {
				Expect(balanceOf(targetUser)).To(Equal(float64(150)))
			})

			It("notifies the recipient of every grant", func() {
				Expect(session.DirectMessages).To(HaveLen(2))
				dm := session.DirectMessages[0]
				Expect(dm.UserID).To(Equal(targetUser))
				Expect(dm.Embed.Description).To(ContainSubstring("**100**"))
				Expect(dm.Embed.Footer).To(ContainSubstring(adminTag))
			})
		})

		DescribeTable("rejects invalid input without changing balances",
			func(target, amount string) {
				listen(
					slash("1", command.CommandSetRole, map[string]string{command.OptionRole: grantRole}),
					grant("2", []string{grantRole}, targetUser, "10"),
					grant("3", []string{grantRole}, target, amount),
				)

				Expect(session.Contents()[2]).To(Equal("❌ Invalid input."))
				Expect(db.Load(context.Background()).Balances).To(Equal(points.Balances{targetUser: 10}))
			},
			Entry("zero amount", targetUser, "0"),
			Entry("negative amount", targetUser, "-5"),
			Entry("non-numeric amount", targetUser, "lots"),
			Entry("empty amount", targetUser, ""),
			Entry("malformed user id", "not-a-user", "10"),
			Entry("empty user id", "", "10"),
		)

		It("checks authorization before validating input", func() {
			listen(grant("1", nil, "", "-1"))
			Expect(session.Contents()).To(Equal([]string{"❌ You are not allowed to grant points."}))
		})

		It("accepts fractional amounts", func() {
			listen(
				slash("1", command.CommandSetRole, map[string]string{command.OptionRole: grantRole}),
				grant("2", []string{grantRole}, targetUser, "2.5"),
				grant("3", []string{grantRole}, targetUser, "0.25"),
			)

			Expect(balanceOf(targetUser)).To(Equal(2.75))
		})

		It("keeps the grant when the direct message cannot be delivered", func() {
			session = discordtest.NewResponseRecorder([]discord.Interaction{
				slash("1", command.CommandSetRole, map[string]string{command.OptionRole: grantRole}),
				grant("2", []string{grantRole}, targetUser, "100"),
			})
			session.DMErr = errors.New("cannot send messages to this user")

			_ = bot.New(session, db, router).Listen(context.Background())

			Expect(session.Contents()[1]).To(Equal("✅ Granted 100 points to user " + targetUser + "."))
			Expect(session.Replies).To(HaveLen(2))
			Expect(balanceOf(targetUser)).To(Equal(float64(100)))
		})
	})

	When("querying points", func() {
		It("reports zero for someone who was never granted any", func() {
			listen(query("1", targetUser))
			Expect(session.Contents()).To(Equal([]string{"📊 Points for user " + targetUser + ": **0**"}))
		})

		It("reports the stored balance without requiring the role", func() {
			listen(
				slash("1", command.CommandSetRole, map[string]string{command.OptionRole: grantRole}),
				grant("2", []string{grantRole}, targetUser, "100"),
				query("3", targetUser),
			)
			Expect(session.Contents()[2]).To(Equal("📊 Points for user " + targetUser + ": **100**"))
		})

		It("rejects a malformed user id", func() {
			listen(query("1", "someone"))
			Expect(session.Contents()).To(Equal([]string{"❌ Invalid input."}))
		})
	})

	When("configuring the reply", func() {
		It("posts the reply buttons publicly and resets the reply", func() {
			listen(
				configureReply("1", "Old", ""),
				slash("2", command.CommandSetupReply, nil),
				component("3", command.ButtonShowReply),
			)

			rsp := session.Replies[1].Response
			Expect(rsp.Ephemeral).To(BeFalse())
			Expect(rsp.Buttons).To(Equal([][]discord.Button{
				{{CustomID: command.ButtonConfigureReply, Label: "Edit reply", Style: discord.ButtonSecondary}},
				{{CustomID: command.ButtonShowReply, Label: "Show reply", Style: discord.ButtonPrimary}},
			}))
			Expect(session.Contents()[2]).To(Equal(points.NotConfigured))
		})

		It("opens the reply form from the edit button", func() {
			listen(component("1", command.ButtonConfigureReply))

			modal := session.Replies[0].Response.Modal
			Expect(modal).ToNot(BeNil())
			Expect(modal.CustomID).To(Equal(command.ModalSetReply))
			Expect(modal.Inputs).To(ConsistOf(
				HaveField("Required", false),
				HaveField("Required", false),
			))
		})

		It("shows exactly the text when only text is set", func() {
			listen(
				configureReply("1", "Hello", ""),
				component("2", command.ButtonShowReply),
			)
			Expect(session.Contents()).To(Equal([]string{"✅ Reply configuration saved.", "Hello"}))
		})

		It("shows text then media on separate lines", func() {
			listen(
				configureReply("1", "Hello", "https://example.com/a.png"),
				component("2", command.ButtonShowReply),
			)
			Expect(session.Contents()[1]).To(Equal("Hello\nhttps://example.com/a.png"))
		})

		It("treats blank fields as not configured", func() {
			listen(
				configureReply("1", "   ", ""),
				component("2", command.ButtonShowReply),
			)
			Expect(session.Contents()[1]).To(Equal(points.NotConfigured))
		})

		It("reports a reply that was never configured", func() {
			listen(component("1", command.ButtonShowReply))
			Expect(session.Replies).To(ConsistOf(discordtest.Reply{InteractionID: "1", Response: ephemeral(points.NotConfigured)}))
		})
	})

	When("the store fails", func() {
		It("answers a failed save with the generic error", func() {
			store := jsonfile.New(jsonfile.Path(filepath.Join(GinkgoT().TempDir(), "missing", "data.json")))
			db = database.NewLocked(store)

			listen(configureReply("1", "Hello", ""))
			Expect(session.Contents()).To(Equal([]string{"❌ An unexpected error occurred."}))
		})

		It("answers a panicking handler with the generic error", func() {
			session = discordtest.NewResponseRecorder([]discord.Interaction{
				component("1", command.ButtonShowReply),
				slash("2", command.CommandPanel, nil),
			})

			_ = bot.New(session, brokenDB{}, router).Listen(context.Background())

			Expect(session.Contents()[0]).To(Equal("❌ An unexpected error occurred."))
			Expect(session.Replies[1].Response.Menu).ToNot(BeNil())
		})

		It("refuses a grant that could not be saved", func() {
			session = discordtest.NewResponseRecorder([]discord.Interaction{
				grant("1", []string{grantRole}, targetUser, "10"),
			})

			_ = bot.New(session, brokenDB{}, router).Listen(context.Background())

			Expect(session.Contents()).To(Equal([]string{"❌ An unexpected error occurred."}))
			Expect(session.DirectMessages).To(BeEmpty())
		})
	})

	When("backed by SQLite", func() {
		It("grants and reports points the same way", func() {
			sq, cleanup, err := sqlite.NewInMemory()
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(cleanup)
			db = database.NewLocked(sq)

			listen(
				slash("1", command.CommandSetRole, map[string]string{command.OptionRole: grantRole}),
				grant("2", []string{grantRole}, targetUser, "100"),
				grant("3", []string{grantRole}, targetUser, "50"),
				query("4", targetUser),
			)

			Expect(session.Contents()[3]).To(Equal("📊 Points for user " + targetUser + ": **150**"))
		})
	})
})
