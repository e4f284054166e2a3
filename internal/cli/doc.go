// Package cli is the terminal front end of the game.
//
// It shows excavation sites and email layers, runs forensics tools through
// the scoring engine, and reports discoveries, artifacts and completion
// reports. The REPL is started with App.Run, which blocks until the player
// exits or input ends. See runREPL for the command set.
package cli
