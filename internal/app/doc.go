// Package app contains the application logic behind the command line: it
// loads models and renders them, decoupled from flag parsing and exit codes.
package app
