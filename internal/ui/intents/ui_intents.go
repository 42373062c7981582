package intents

type Quit struct{}

func (Quit) isIntent() {}

type OpenCommandPalette struct{}

func (OpenCommandPalette) isIntent() {}

type TogglePreview struct{}

func (TogglePreview) isIntent() {}

// ResizePreview grows (positive) or shrinks the preview pane by Delta percent.
type ResizePreview struct{ Delta float64 }

func (ResizePreview) isIntent() {}

type ExportJSON struct{}

func (ExportJSON) isIntent() {}

type ImportJSON struct{}

func (ImportJSON) isIntent() {}

type ExportPNG struct{}

func (ExportPNG) isIntent() {}

// ExportText writes the rasterized drawing to a .txt file. Trim is nil when
// the configured default applies.
type ExportText struct{ Trim *bool }

func (ExportText) isIntent() {}

type CopyAll struct{ Trim *bool }

func (CopyAll) isIntent() {}

// Apply confirms the focused dialog.
type Apply struct{}

func (Apply) isIntent() {}

type Cancel struct{}

func (Cancel) isIntent() {}

type Navigate struct{ Delta int }

func (Navigate) isIntent() {}
