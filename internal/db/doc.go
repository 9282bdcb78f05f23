// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db is the persistence port of Quizmaster.
//
// A single bun-backed implementation, BunStore, serves SQLite (modernc),
// PostgreSQL (pgx) and MySQL (go-sql-driver). Schema changes live in
// migrations/<type>/*.up.sql, are embedded into the binary and applied on
// open.
//
// Constraint handling
//   - Writes rejected by a unique or foreign key constraint return a
//     *ConstraintError. Callers branch on OutcomeOf(err) instead of looking
//     at driver error codes.
//   - Any other error (connectivity, syntax, cancelled context) is returned
//     wrapped with the failing operation and OutcomeOf reports OutcomeOther.
//
// Transactions
//   - Each Store method runs on its own pooled connection. InTx groups
//     several calls into one transaction; the quiz service uses it to write a
//     question together with its answers.
//
// Testing notes
//   - Prefer db.New("sqlite", "file:<name>?mode=memory&cache=shared") in
//     tests that need real DB semantics and migrations. In-memory databases
//     are pinned to a single connection.
package db
