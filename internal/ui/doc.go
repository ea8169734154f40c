// Package ui provides semantic text formatting for sealedconf output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR is
// set, or fatih/color has detected a dumb terminal, they fall back to plain
// text decorations instead:
//
//	ui.Key.Sprint("ConnectionStrings:Main")  // 'ConnectionStrings:Main'
//	ui.Code.Sprint("sealedconf seal")       // `sealedconf seal`
//	ui.Path.Sprint("secrets.json")
//	ui.Success.Sprint("✓")
//	ui.Error.Sprint("✗")
//	ui.Muted.Sprint("null")                  // (null)
//
// Mask hides a configuration value for display.
package ui
