package logic

// Request returns the mode a completed hold of b asks for while resting in
// current. last is the mode to restore when leaving Maintenance. ModeNone
// means the hold requests nothing.
func Request(current, last Mode, b Button) Mode {
	switch b {
	case ButtonGreen:
		switch current {
		case ModeStandard:
			return ModeEconomic
		case ModeEconomic:
			return ModeStandard
		}
	case ButtonRed:
		switch current {
		case ModeStandard, ModeEconomic:
			return ModeMaintenance
		case ModeMaintenance:
			if last == ModeStandard || last == ModeEconomic {
				return last
			}
			return ModeStandard
		}
	}
	return ModeNone
}

// Apply returns the resting mode after honoring requested from current.
// Requests outside the transition table, and ModeNone, leave current
// unchanged.
func Apply(current, requested Mode) Mode {
	if !requested.Valid() || requested == current {
		return current
	}
	if allowed(current, requested) {
		return requested
	}
	return current
}

func allowed(from, to Mode) bool {
	switch to {
	case ModeConfig:
		// boot-time only; the machine guards when it may be requested
		return true
	case ModeStandard:
		return from == ModeEconomic || from == ModeMaintenance || from == ModeConfig
	case ModeEconomic:
		return from == ModeStandard || from == ModeMaintenance
	case ModeMaintenance:
		return from == ModeStandard || from == ModeEconomic
	}
	return false
}
