// Package ui is the Bubble Tea control surface for the simulated deck.
//
// The screen is a fixed chrome (header with connection bar, command hints,
// the deck display and a tab bar) above one of four tabs:
//
//   - Home: transport buttons and the clip list
//   - Config: video input, file format and slot selection
//   - Files / FTP: listing of the active slot with rename and delete
//   - Console: the device log with a raw command line, or the application log
//
// All device state lives in state.Store. The model subscribes to the store and
// re-reads a snapshot whenever it signals a change, and after every action the
// user triggers. Transport and configuration keys are ignored with a hint while
// the deck is disconnected.
package ui
