// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli implements the quizmaster command line: the HTTP server,
// admin provisioning, quiz content management, backups and database upkeep.
package cli
