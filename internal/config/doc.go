// Package config holds the validated scan configuration and loads optional
// YAML config files from local and global locations with precedence rules.
// It is internal; CLI code maps flags and files into scanner configuration.
package config
