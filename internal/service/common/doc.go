// Package common holds helpers shared by several services.
//
// It probes the host environment before any filesystem change is made:
// processor family, login shell, remote reachability, tool availability,
// and the identity of the invoking user for ownership handling.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
