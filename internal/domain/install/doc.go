// Package install contains core domain types for the bootstrap business logic.
//
// It defines the InstallationPlan resolved from the user's mode choice (where
// the tool lives, where the wrapper goes, whether elevation is needed), the
// run lifecycle state machine, and the verification report produced after the
// filesystem work is done.
package install
