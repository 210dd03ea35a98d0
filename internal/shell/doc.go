// Package shell knows how login shells are configured.
//
// It resolves which startup file belongs to the user's shell, renders the
// dialect-correct PATH line, and edits the file idempotently: the line is
// appended once, guarded by a marker comment, and re-runs leave the file
// byte-identical.
package shell
