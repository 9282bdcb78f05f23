package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/quizmaster/internal/model"
)

var (
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	answerStyle  = lipgloss.NewStyle().PaddingLeft(4)
)

func printThemes(w io.Writer, themes []model.Theme) {
	for _, t := range themes {
		_, _ = fmt.Fprintf(w, "%s %s\n", idStyle.Render(fmt.Sprintf("#%d", t.ID)), titleStyle.Render(t.Title))
	}
}

// printQuestions renders each question followed by its answers, marking
// the correct one.
func printQuestions(w io.Writer, questions []model.Question) {
	for _, q := range questions {
		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			idStyle.Render(fmt.Sprintf("#%d", q.ID)),
			titleStyle.Render(q.Title),
			idStyle.Render(fmt.Sprintf("(theme %d)", q.ThemeID)))
		correct, hasCorrect := q.CorrectAnswer()
		for _, a := range q.Answers {
			line := "[ ] " + a.Title
			if hasCorrect && a == correct {
				line = correctStyle.Render("[x] " + a.Title)
			}
			_, _ = fmt.Fprintln(w, answerStyle.Render(line))
		}
	}
}
