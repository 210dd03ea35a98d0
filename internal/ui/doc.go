// Package ui renders the interactive conversation with the user.
//
// The Printer writes colored step, success, and warning lines, the Prompter
// asks the menu and yes/no questions, and the Spinner animates long waits,
// optionally until a watched child process exits. Diagnostics belong to the
// logger package; everything here is meant for human eyes on stdout.
package ui
