// Package bootstrap implements the interactive installation run.
//
// A run walks a fixed sequence: probe the environment, let the user pick the
// installation mode, provision the directory tree, download the program file,
// generate the wrapper, wire PATH, and verify the result. From the first
// filesystem change until verification passes, a rollback guard stands by to
// remove everything the run created, so a failed run never leaves a partial
// installation behind.
//
// The package also backs the standalone verify command, which re-runs the
// post-installation checks against an existing tree without changing it.
package bootstrap
