// Package receipt persists what a bootstrap run created.
//
// The receipt lives as a small JSON file inside the install root and lets the
// uninstall and verify commands rebuild the installation plan without asking
// the user again. A missing receipt is normal: callers fall back to detecting
// the layout from the filesystem.
package receipt
