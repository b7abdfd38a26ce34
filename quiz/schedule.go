package quiz

import "time"

// Review delays for the 3-level Leitner rotation. They live with the data
// model because both the scheduler (computing NextReviewAt on answer) and
// the normalization engine (re-deriving a missing NextReviewAt from
// LastAttemptedAt) depend on them.

// PassDelay is the wait before the next review after a correct answer
// that has not yet mastered the question (level 0 -> 1).
const PassDelay = 10 * time.Minute

// FailDelay is the wait before retrying after an incorrect answer.
const FailDelay = 30 * time.Second
