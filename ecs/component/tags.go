package component

// AvatarTag marks the single player-controlled entity.
type AvatarTag struct{}

var AvatarTagComponent = NewComponent[AvatarTag]()

type NPCTag struct{}

var NPCTagComponent = NewComponent[NPCTag]()

// ProximityEnabled marks entities the proximity watch measures against the
// avatar.
type ProximityEnabled struct{}

var ProximityEnabledComponent = NewComponent[ProximityEnabled]()
