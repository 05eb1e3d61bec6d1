// Package config loads the demo's layered configuration.
//
// Values resolve in order: built-in defaults, the TOML config file, a .env
// file in the working directory, then REWIND_* environment variables. Later
// layers win. A missing config file is not an error; a malformed one is.
//
// Watch reloads the file when it changes on disk, coalescing editor save
// bursts with a debounce, so the demo can apply edits live.
package config
