package review

import (
	"slices"

	"github.com/quizmd/quizmd/quiz"
)

// DisplayOptions picks the options to show for a single ask: every correct
// option, plus incorrect options up to limit total, in document order.
// Incorrect options that were not part of the previous ask are preferred,
// so distractors rotate across repeat encounters. The chosen incorrect IDs
// are recorded on the question, replacing the previous set.
//
// A limit of zero or less, or one at least the option count, shows every
// option. True/false questions always show both options.
func DisplayOptions(q *quiz.QuizQuestion, limit int) []quiz.QuizOption {
	if q.Type == quiz.TypeTrueFalse || limit <= 0 || limit >= len(q.Options) {
		shown := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			if !q.IsCorrect(opt.OptionID) {
				shown = append(shown, opt.OptionID)
			}
		}
		q.ShownIncorrectOptionIDs = shown
		return slices.Clone(q.Options)
	}

	previously := make(map[string]bool, len(q.ShownIncorrectOptionIDs))
	for _, id := range q.ShownIncorrectOptionIDs {
		previously[id] = true
	}

	slots := limit
	for _, opt := range q.Options {
		if q.IsCorrect(opt.OptionID) {
			slots--
		}
	}

	chosen := make(map[string]bool, slots)
	if slots > 0 {
		for _, opt := range q.Options {
			if slots == 0 {
				break
			}
			if !q.IsCorrect(opt.OptionID) && !previously[opt.OptionID] {
				chosen[opt.OptionID] = true
				slots--
			}
		}
		// Not enough fresh distractors: fill with previously shown ones.
		for _, opt := range q.Options {
			if slots == 0 {
				break
			}
			if !q.IsCorrect(opt.OptionID) && !chosen[opt.OptionID] {
				chosen[opt.OptionID] = true
				slots--
			}
		}
	}

	display := make([]quiz.QuizOption, 0, limit)
	shown := make([]string, 0, len(chosen))
	for _, opt := range q.Options {
		if q.IsCorrect(opt.OptionID) {
			display = append(display, opt)
			continue
		}
		if chosen[opt.OptionID] {
			display = append(display, opt)
			shown = append(shown, opt.OptionID)
		}
	}
	q.ShownIncorrectOptionIDs = shown
	return display
}
