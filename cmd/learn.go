package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lynneapp/lynne/internal/education"
	"github.com/lynneapp/lynne/internal/errors"
)

// learnCmd represents the learn command.
var learnCmd = &cobra.Command{
	Use:     "learn [ID]",
	Aliases: []string{"articles", "read"},
	Short:   "Browse birth control education articles",
	Long: `Browse a curated list of birth control education articles. Pass an
article number to show its link.

Examples:
  lynne learn
  lynne learn 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLearn,
}

func init() {
	rootCmd.AddCommand(learnCmd)
}

// runLearn handles the learn command.
func runLearn(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewUserErrorWithField("article", args[0],
				"Not an article number",
				"Use 'lynne learn' to list articles")
		}

		article, found := education.ByID(id)
		if !found {
			return errors.ErrArticleNotFound
		}

		if ctx.IsJSON() {
			return ctx.JSONFormatter().JSON(article)
		}

		cli := ctx.CLIFormatter()
		cli.Title(article.Title)
		cli.Muted(article.Publication)
		cli.Println(article.Link)
		return nil
	}

	articles := education.Feed()

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"articles": articles,
			"count":    len(articles),
		})
	}

	ctx.CLIFormatter().PrintArticles(articles)
	return nil
}
