package common

// StackedModel is a dialog shown above the canvas. Its action owner selects
// the binding scope keys are resolved in while it is on top.
type StackedModel interface {
	ImmediateModel
	StackedActionOwner() string
}
