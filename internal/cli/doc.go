// Package cli is the cobra command tree of caregrid. It turns flags into an
// app.Config, runs the requested command and maps failures to exit codes.
package cli
