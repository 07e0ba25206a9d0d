package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"storysite/internal/catalog"
	"storysite/internal/client"
	"storysite/internal/models"
)

func newStoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stories",
		Short: "Browse and manage stories",
	}
	cmd.AddCommand(
		newStoriesListCmd(app),
		newStoriesGetCmd(app),
		newStoriesAdminListCmd(app),
		newStoriesDeleteCmd(app),
	)
	return cmd
}

func newStoriesListCmd(app *App) *cobra.Command {
	var (
		params     client.ListParams
		keyword    string
		statuses   []string
		categories []string
		sortKey    string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List public stories",
		RunE: func(cmd *cobra.Command, args []string) error {
			stories, err := app.clients.Stories.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			filter := catalog.Filter{Keyword: keyword, CategoryIDs: categories, Sort: catalog.ParseSortKey(sortKey)}
			for _, s := range statuses {
				status := models.StoryStatus(strings.ToUpper(s))
				if !status.Valid() {
					return fmt.Errorf("unknown status %q", s)
				}
				filter.Statuses = append(filter.Statuses, status)
			}
			return app.printStories(catalog.Apply(stories, filter))
		},
	}
	f := cmd.Flags()
	f.BoolVar(&params.Hot, "hot", false, "only hot stories")
	f.BoolVar(&params.Recommended, "recommended", false, "only recommended stories")
	f.StringVarP(&keyword, "query", "q", "", "title search, diacritics optional")
	f.StringSliceVar(&statuses, "status", nil, "status filter: ONGOING, COMPLETED, PAUSED, DROPPED")
	f.StringSliceVar(&categories, "category", nil, "category id filter")
	f.StringVar(&sortKey, "sort", string(catalog.SortViews), "sort: views, likes, chapters, title")
	return cmd
}

func newStoriesGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get SLUG",
		Short: "Show one story with its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			story, err := app.clients.Stories.GetBySlug(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.emit(story, func() error {
				app.printf("%s\n", story.Title)
				app.printf("slug: %s  id: %s\n", story.Slug, story.ID)
				if author := story.Author(); author != "" {
					app.printf("author: %s\n", author)
				}
				app.printf("status: %s  chapters: %d  views: %d  likes: %d\n",
					story.StoryStatus.Label(), story.TotalChapters, story.ViewCount, story.LikeCount)
				if d := story.Description(); d != "" {
					app.printf("\n%s\n", d)
				}
				for _, s := range story.SummarySections {
					if t := s.Text(); t != "" {
						app.printf("\n%s", t)
					}
					if img := s.Image(); img != "" {
						app.printf("\n[image] %s", img)
					}
				}
				app.printf("\n")
				return nil
			})
		},
	}
}

func newStoriesAdminListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "admin-list",
		Short: "List all stories (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return err
			}
			stories, err := app.clients.Stories.AdminList(cmd.Context())
			if err != nil {
				return err
			}
			return app.printStories(stories)
		},
	}
}

func newStoriesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a story (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return err
			}
			if err := app.clients.Stories.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.log.Info().Str("story_id", args[0]).Msg("Story deleted")
			app.printf("Deleted story %s\n", args[0])
			return nil
		},
	}
}

func (a *App) printStories(stories []models.Story) error {
	return a.emit(stories, func() error {
		rows := make([][]string, 0, len(stories))
		for _, s := range stories {
			rows = append(rows, []string{
				s.ID, s.Slug, s.Title, string(s.StoryStatus),
				strconv.Itoa(s.TotalChapters),
				strconv.FormatInt(s.ViewCount, 10),
				strconv.FormatInt(s.LikeCount, 10),
				yesNo(s.Hot), yesNo(s.Recommended),
			})
		}
		return a.table([]string{"ID", "SLUG", "TITLE", "STATUS", "CHAPTERS", "VIEWS", "LIKES", "HOT", "RECOMMENDED"}, rows)
	})
}
