// Package session owns the game state of one play-through: the selected
// site and layer, the discovery log of the current site, unlocked
// artifacts, experience and completed sites.
//
// The state is restored from a single save slot at startup (see
// (*Manager).Load) and written back when a site is completed. A Manager is
// used by one goroutine at a time.
package session
