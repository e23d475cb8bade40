package cli

import (
	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/usecase"
	"github.com/spf13/cobra"
)

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Sort   string
		Output string
		Types  []string
		Desc   bool
		Fresh  bool
	}

	cmd := &cobra.Command{
		Use:   "list <KEY>",
		Short: "List the attachments of an issue",
		Long: `List the attachments of an issue with their uploader, creation time
and size. Pending renames from a saved draft are shown with the original
name in the ORIGINAL column.

Issue keys are case-insensitive.

Examples:
  jira-attach list TES-3
  jira-attach list tes-3 --sort created --desc
  jira-attach list TES-3 --type jpg --type png --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(opts.Output)
			if err != nil {
				return err
			}
			sortName := c.AppConfig.List.Sort
			if cmd.Flags().Changed("sort") {
				sortName = opts.Sort
			}
			field, err := domain.ParseSortField(sortName)
			if err != nil {
				return err
			}
			desc := c.AppConfig.List.Desc
			if cmd.Flags().Changed("desc") {
				desc = opts.Desc
			}

			out, err := openIssue(cmd.Context(), c, cmd.ErrOrStderr(), usecase.FetchIssueInput{
				IssueKey:  args[0],
				Sort:      field,
				Desc:      desc,
				Types:     opts.Types,
				SkipDraft: opts.Fresh,
			})
			if err != nil {
				return err
			}

			rows := attachmentRows(out.Set, out.Attachments)
			if format != formatTable {
				return writeStructured(cmd.OutOrStdout(), format, rows)
			}
			printAttachments(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Sort, "sort", "s", "name", "Sort by name, created, author or size")
	cmd.Flags().BoolVarP(&opts.Desc, "desc", "d", false, "Sort in descending order")
	cmd.Flags().StringArrayVarP(&opts.Types, "type", "t", nil, "Only list files of this type (e.g. jpg); repeatable")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", formatTable, "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&opts.Fresh, "no-draft", false, "Ignore the saved draft and show server names only")

	return cmd
}
