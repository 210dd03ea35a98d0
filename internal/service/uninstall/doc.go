// Package uninstall removes an installation created by the bootstrap:
// the wrapper executable, the install root, and the PATH line the
// bootstrap appended to the shell profile.
package uninstall
