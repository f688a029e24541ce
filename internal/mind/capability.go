package mind

// CapabilityProfile describes an actor's movement affordances. It is attached
// at actor creation and never mutated afterwards; the cost map is the only
// consumer that interprets it.
type CapabilityProfile struct {
	CanFly       bool
	CanBurrow    bool
	CanOpenDoors bool
	// PicksUpItems gates the root goal's opportunistic item seeking.
	PicksUpItems bool
}

// GroundProfile is the baseline walker: doors yes, everything else no.
func GroundProfile() CapabilityProfile {
	return CapabilityProfile{CanOpenDoors: true, PicksUpItems: true}
}

// BeastProfile cannot operate doors and ignores loot.
func BeastProfile() CapabilityProfile {
	return CapabilityProfile{}
}

// WraithProfile flies over hazards but still cannot pass walls.
func WraithProfile() CapabilityProfile {
	return CapabilityProfile{CanFly: true}
}

// SapperProfile tunnels through walls at a steep cost.
func SapperProfile() CapabilityProfile {
	return CapabilityProfile{CanBurrow: true, CanOpenDoors: true}
}
