package component

// Transform is a world-space position. Y grows downward.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
