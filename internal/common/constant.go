package common

// StateKey is the default save slot holding the game document.
const StateKey = "emailArchaeologyDig"
