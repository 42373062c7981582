package render

// Z-indexes shared by the components. Higher values paint later and win
// mouse hit tests.
const (
	ZBase      = 0
	ZCanvas    = 10
	ZSelection = 20
	ZCursor    = 30
	ZPreview   = 40
	ZChrome    = 50
	ZModal     = 90
	ZDialogs   = 100
	ZFlash     = 150
	ZOverlay   = 200
)
