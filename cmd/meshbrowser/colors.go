// Color constants for Mesh Browser.
package main

// UI background colors
var (
	BackgroundColor   = [4]float32{0.1, 0.1, 0.12, 1.0}
	PreviewBackground = [4]float32{0.15, 0.15, 0.15, 1.0}
)

// Status colors
var (
	ErrorColor = [4]float32{1.0, 0.4, 0.4, 1.0}
)
