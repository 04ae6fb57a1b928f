package component

// ProximityRadius is the edge distance at which an entity counts as near the
// avatar. Distances strictly below Threshold are near.
type ProximityRadius struct {
	Threshold float64
}

var ProximityRadiusComponent = NewComponent[ProximityRadius]()
