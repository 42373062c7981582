package intents

type Tool string

const (
	ToolSelect    Tool = "select"
	ToolRectangle Tool = "rectangle"
	ToolLine      Tool = "line"
	ToolText      Tool = "text"
)

type MoveCursor struct{ DX, DY int }

func (MoveCursor) isIntent() {}

// Press acts like a mouse press at the cursor, or a release when a keyboard
// gesture is already in progress.
type Press struct{}

func (Press) isIntent() {}

type SelectTool struct{ Tool Tool }

func (SelectTool) isIntent() {}

type MoveSelection struct{ DX, DY int }

func (MoveSelection) isIntent() {}

type ResizeSelection struct{ DX, DY int }

func (ResizeSelection) isIntent() {}

type EditText struct{}

func (EditText) isIntent() {}

type DeleteSelection struct{}

func (DeleteSelection) isIntent() {}

type Copy struct{}

func (Copy) isIntent() {}

type Paste struct{}

func (Paste) isIntent() {}

type SelectLast struct{}

func (SelectLast) isIntent() {}

type Pan struct{ DX, DY int }

func (Pan) isIntent() {}

type ClearCanvas struct{}

func (ClearCanvas) isIntent() {}
