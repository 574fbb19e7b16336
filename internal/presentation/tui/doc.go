// Package tui holds the terminal front-ends: the banner, glamour-rendered
// step tables and the bubbletea stepper.
package tui
