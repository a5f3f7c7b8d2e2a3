package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/varoOP/shinkrobot/internal/app"
	"github.com/varoOP/shinkrobot/internal/command"
	"github.com/varoOP/shinkrobot/internal/format"
)

var askCmd = &cobra.Command{
	Use:   "ask [flags] -- <message>",
	Short: "Send one chat message to the bot and print the reply",
	Long: `Ask runs a single message through the command handler, the same way a chat
update would. The reply is printed with its HTML removed unless --raw is set.

Examples:
  shinkrobot ask -- /anime 1
  shinkrobot ask --group --admin -- /lang pt
  shinkrobot ask --callback -- anime 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		chatID, _ := flags.GetInt64("chat-id")
		userID, _ := flags.GetInt64("user-id")
		name, _ := flags.GetString("name")
		lang, _ := flags.GetString("lang")
		group, _ := flags.GetBool("group")
		admin, _ := flags.GetBool("admin")
		callback, _ := flags.GetBool("callback")
		raw, _ := flags.GetBool("raw")

		if !group {
			chatID = userID
		}

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		reply, err := application.Handle(cmd.Context(), command.Request{
			ChatID:      chatID,
			SenderID:    userID,
			SenderName:  name,
			LanguageTag: lang,
			Private:     !group,
			Admin:       admin,
			Text:        strings.Join(args, " "),
			Callback:    callback,
		})
		if reply != nil {
			printReply(cmd, reply, raw)
		}
		return err
	},
}

func printReply(cmd *cobra.Command, reply *command.Reply, raw bool) {
	out := cmd.OutOrStdout()

	if reply.PhotoURL != "" {
		fmt.Fprintf(out, "[photo] %s\n\n", reply.PhotoURL)
	}

	text := reply.Text
	if !raw {
		text = format.RemoveHTML(text)
	}
	fmt.Fprintln(out, text)

	if len(reply.Buttons) == 0 {
		return
	}

	var rows [][]string
	for _, row := range reply.Buttons {
		for _, button := range row {
			rows = append(rows, []string{button.Text, button.Data})
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]string{"Button", "Callback"}, rows, []columnAlignment{alignLeft, alignLeft}))
}

func init() {
	askCmd.Flags().Int64("chat-id", -1001, "chat id used with --group")
	askCmd.Flags().Int64("user-id", 1, "sender id")
	askCmd.Flags().String("name", "", "sender display name")
	askCmd.Flags().String("lang", "", "sender client language, e.g. pt-BR")
	askCmd.Flags().Bool("group", false, "send the message to a group chat instead of a private one")
	askCmd.Flags().Bool("admin", false, "the sender administers the group")
	askCmd.Flags().Bool("callback", false, "treat the message as button callback data")
	askCmd.Flags().Bool("raw", false, "print the reply HTML as is")
	rootCmd.AddCommand(askCmd)
}
