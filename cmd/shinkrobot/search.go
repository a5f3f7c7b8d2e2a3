package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/varoOP/shinkrobot/internal/app"
	"github.com/varoOP/shinkrobot/internal/catalog"
	"github.com/varoOP/shinkrobot/internal/domain"
)

var searchCmd = &cobra.Command{
	Use:   "search <anime|manga|character|user> <query>",
	Short: "Search AniList and print the matches",
	Long: `Search queries AniList directly. Search results are never cached.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		query := strings.Join(args[1:], " ")
		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		rows, err := searchRows(cmd, application.Catalog(), kind, query, page, perPage)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Details"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))
		return nil
	},
}

func searchRows(cmd *cobra.Command, c catalog.Service, kind domain.Kind, query string, page, perPage int) ([][]string, error) {
	ctx := cmd.Context()
	var rows [][]string

	switch kind {
	case domain.KindAnime:
		res, err := c.SearchAnime(ctx, query, page, perPage)
		if err != nil {
			return nil, err
		}
		for _, a := range res {
			rows = append(rows, []string{strconv.Itoa(a.ID), a.Title.Preferred(), a.Format + " " + a.Status})
		}
	case domain.KindManga:
		res, err := c.SearchManga(ctx, query, page, perPage)
		if err != nil {
			return nil, err
		}
		for _, m := range res {
			rows = append(rows, []string{strconv.Itoa(m.ID), m.Title.Preferred(), m.Format + " " + m.Status})
		}
	case domain.KindCharacter:
		res, err := c.SearchCharacter(ctx, query, page, perPage)
		if err != nil {
			return nil, err
		}
		for _, ch := range res {
			rows = append(rows, []string{strconv.Itoa(ch.ID), ch.Name.Full, ch.Name.Native})
		}
	case domain.KindUser:
		res, err := c.SearchUser(ctx, query, page, perPage)
		if err != nil {
			return nil, err
		}
		for _, u := range res {
			rows = append(rows, []string{strconv.Itoa(u.ID), u.Name, u.SiteURL})
		}
	}

	return rows, nil
}

func parseKind(s string) (domain.Kind, error) {
	switch strings.ToLower(s) {
	case "anime", "a":
		return domain.KindAnime, nil
	case "manga", "m":
		return domain.KindManga, nil
	case "character", "char", "c":
		return domain.KindCharacter, nil
	case "user", "u":
		return domain.KindUser, nil
	}
	return "", fmt.Errorf("unknown kind %q (must be anime, manga, character or user)", s)
}

func init() {
	searchCmd.Flags().Int("page", 1, "result page")
	searchCmd.Flags().Int("per-page", 10, "results per page")
	rootCmd.AddCommand(searchCmd)
}
