package quiz

import "github.com/toeirei/quizmaster/internal/model"

// CheckAnswers enforces the answer-set rule: exactly one correct answer and
// at least two answers overall. Both failures share one error.
func CheckAnswers(answers []model.Answer) error {
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return model.ErrContentRuleViolation
	}
	if len(answers) < 2 {
		return model.ErrContentRuleViolation
	}
	return nil
}
