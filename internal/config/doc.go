// Package config defines the optional bootstrap settings and provides
// helpers to load and validate them from YAML.
//
// The Config type holds the download and probe endpoints, the wrapper's
// runner command and the network timeout. The bootstrap runs fine without
// a settings file; compiled-in defaults cover every field.
package config
