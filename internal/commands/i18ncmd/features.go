package i18ncmd

// FeatureGates exposes runtime feature toggles read by the handlers.
type FeatureGates struct {
	UsersEnabled func() bool
}

func (g FeatureGates) usersEnabled() bool {
	if g.UsersEnabled == nil {
		return true
	}
	return g.UsersEnabled()
}
