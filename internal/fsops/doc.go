// Package fsops applies filesystem changes for the bootstrap.
//
// The Executor interface hides whether an operation runs natively or through
// sudo: user-mode installations use Native, system-mode installations use
// Elevated. File placement is atomic in both flavors, so a destination never
// holds a partially written file.
package fsops
