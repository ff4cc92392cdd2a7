// Package ui contains the Bubble Tea program used to drive the launcher
// engine from a terminal.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses are translated into the engine's three events (character,
//     delete, commit) in input.go. After every event the model takes a fresh
//     engine snapshot; View only renders that snapshot, so a continuous prompt
//     runs its preview command once per keystroke rather than once per frame.
//   - When the engine asks to exit the program quits.
package ui
