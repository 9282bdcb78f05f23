// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the core data structures shared by the storage layer,
// the services and the HTTP surface.
package model

import "time"

// Admin is an operator allowed to manage quiz content.
// PasswordHash holds the digest, never the plaintext password.
type Admin struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Theme groups questions under a unique title.
type Theme struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Question is a titled prompt belonging to exactly one Theme.
// Answers keep the order in which they were submitted.
type Question struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	ThemeID int64    `json:"theme_id"`
	Answers []Answer `json:"answers"`
}

// Answer is one option of a Question. ID and QuestionID are zero until the
// answer has been stored.
type Answer struct {
	ID         int64  `json:"-"`
	QuestionID int64  `json:"-"`
	Title      string `json:"title"`
	IsCorrect  bool   `json:"is_correct"`
}

// CorrectAnswer returns the first answer flagged correct, if any.
func (q Question) CorrectAnswer() (Answer, bool) {
	for _, a := range q.Answers {
		if a.IsCorrect {
			return a, true
		}
	}
	return Answer{}, false
}

// BackupVersion is the current schema version of BackupData.
const BackupVersion = 1

// BackupData is the portable dump of all quiz content. Admins are not part of
// a backup; their password hashes stay in the database they were created in.
type BackupData struct {
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	Themes    []Theme    `json:"themes"`
	Questions []Question `json:"questions"`
}
