package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/varoOP/shinkrobot/internal/app"
	"github.com/varoOP/shinkrobot/internal/catalog"
	"github.com/varoOP/shinkrobot/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats <anime|manga|character|user> <id>...",
	Short: "Fetch ids through the cache and print its counters",
	Long: `Stats fetches every id concurrently through the in-memory catalog cache,
then prints one row per id and the hit/miss counters of each per-kind cache.
Repeated ids show how concurrent misses share a single AniList request.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}

		ids := make([]int, 0, len(args)-1)
		for _, arg := range args[1:] {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid id %q", arg)
			}
			ids = append(ids, id)
		}

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		c := application.Catalog()
		rows := make([][]string, len(ids))

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(4)
		for i, id := range ids {
			g.Go(func() error {
				name, err := fetchName(ctx, c, kind, id)
				status := "ok"
				switch {
				case errors.Is(err, domain.ErrRemoteUnavailable):
					status = "unavailable"
				case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidID):
					status = "not found"
				case err != nil:
					return err
				}
				rows[i] = []string{strconv.Itoa(id), name, status}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Status"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))

		var statRows [][]string
		for _, s := range c.Stats().Kinds {
			statRows = append(statRows, []string{
				string(s.Kind),
				fmt.Sprintf("%d/%d", s.Size, s.Capacity),
				strconv.FormatUint(s.Hits, 10),
				strconv.FormatUint(s.Misses, 10),
				strconv.FormatUint(s.Failures, 10),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Kind", "Size", "Hits", "Misses", "Failures"},
			statRows,
			[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
		))
		return nil
	},
}

func fetchName(ctx context.Context, c catalog.Service, kind domain.Kind, id int) (string, error) {
	switch kind {
	case domain.KindAnime:
		a, err := c.GetAnime(ctx, id)
		if err != nil {
			return "", err
		}
		return a.Title.Preferred(), nil
	case domain.KindManga:
		m, err := c.GetManga(ctx, id)
		if err != nil {
			return "", err
		}
		return m.Title.Preferred(), nil
	case domain.KindCharacter:
		ch, err := c.GetCharacter(ctx, id)
		if err != nil {
			return "", err
		}
		return ch.Name.Full, nil
	default:
		u, err := c.GetUser(ctx, id)
		if err != nil {
			return "", err
		}
		return u.Name, nil
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
