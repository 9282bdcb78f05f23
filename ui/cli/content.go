package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/toeirei/quizmaster/internal/i18n"
	"github.com/toeirei/quizmaster/internal/model"
	"github.com/toeirei/quizmaster/internal/quiz"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Manage quiz themes",
	}

	add := &cobra.Command{
		Use:     "add <title>",
		Short:   "Create a theme",
		Args:    cobra.ExactArgs(1),
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := svc.quiz.CreateTheme(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.theme_created", t.ID, t.Title))
			return nil
		},
	}

	list := &cobra.Command{
		Use:     "list",
		Short:   "List themes",
		Args:    cobra.NoArgs,
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			themes, err := svc.quiz.ListThemes(commandContext(cmd))
			if err != nil {
				return err
			}
			if len(themes) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.no_themes"))
				return nil
			}
			printThemes(cmd.OutOrStdout(), themes)
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newQuestionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "question",
		Short: "Manage quiz questions",
	}

	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a question with its answers",
		Long: `Creates a question under --theme. Answers are given in order with
repeated --answer flags; --correct is the 1-based position of the correct one.

Example:
  quizmaster question add "Who painted the Mona Lisa?" --theme 2 \
    --answer "Michelangelo" --answer "Leonardo da Vinci" --correct 2`,
		Args:    cobra.ExactArgs(1),
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			themeID, _ := cmd.Flags().GetInt64("theme")
			titles, _ := cmd.Flags().GetStringArray("answer")
			correct, _ := cmd.Flags().GetInt("correct")

			answers := make([]model.Answer, 0, len(titles))
			for i, title := range titles {
				answers = append(answers, model.Answer{Title: title, IsCorrect: i+1 == correct})
			}
			q, err := svc.quiz.CreateQuestion(commandContext(cmd), args[0], themeID, answers)
			if err != nil {
				return describeContentError(err, themeID)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.question_created", q.ID, q.ThemeID, q.Title))
			return nil
		},
	}
	add.Flags().Int64("theme", 0, "Theme id")
	add.Flags().StringArray("answer", nil, "Answer text, repeat for each answer")
	add.Flags().Int("correct", 0, "1-based position of the correct answer")
	_ = add.MarkFlagRequired("theme")

	list := &cobra.Command{
		Use:     "list",
		Short:   "List questions with their answers",
		Args:    cobra.NoArgs,
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			var themeID *int64
			if cmd.Flags().Changed("theme") {
				raw, _ := cmd.Flags().GetString("theme")
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return fmt.Errorf("--theme must be an integer: %w", err)
				}
				themeID = &id
			}
			qs, err := svc.quiz.ListQuestions(commandContext(cmd), themeID)
			if err != nil {
				return err
			}
			if len(qs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.no_questions"))
				return nil
			}
			printQuestions(cmd.OutOrStdout(), qs)
			return nil
		},
	}
	list.Flags().String("theme", "", "Only list questions of this theme id")

	imp := &cobra.Command{
		Use:   "import <catalog.yaml>",
		Short: "Import themes and questions from a YAML or JSON catalog",
		Long: `Creates the themes and questions listed in a catalog file:

  themes:
    - title: History
      questions:
        - title: When did Columbus reach America?
          answers:
            - title: "1492"
              correct: true
            - title: "1500"

Existing themes are reused by title; questions whose title already exists
are skipped.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := quiz.LoadCatalog(args[0])
			if err != nil {
				return err
			}
			res, err := svc.quiz.ImportCatalog(commandContext(cmd), c)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.import_summary", res.ThemesCreated, res.QuestionsCreated, res.QuestionsSkipped))
			return err
		},
	}

	cmd.AddCommand(add, list, imp)
	return cmd
}

// describeContentError turns taxonomy errors into operator-facing messages.
func describeContentError(err error, themeID int64) error {
	switch {
	case errors.Is(err, model.ErrContentRuleViolation):
		return errors.New(i18n.T("error.content_rule"))
	case errors.Is(err, model.ErrUnknownReference):
		return fmt.Errorf("theme %d: %s", themeID, i18n.T("error.not_found"))
	case errors.Is(err, model.ErrDuplicateContent):
		return errors.New(i18n.T("error.conflict"))
	}
	return err
}
