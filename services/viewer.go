package services

// Viewer is the resolved identity an operation runs as. It is always passed
// explicitly; the core never reads session state from ambient context.
// A zero ID means the caller is anonymous.
//
// IsAdmin is a capability flag resolved once at authentication time (from the
// configured admin usernames) rather than re-compared inside each ledger.
type Viewer struct {
	ID       uint
	Username string
	IsAdmin  bool
}

// Anonymous reports whether the viewer carries no resolved identity.
func (v Viewer) Anonymous() bool {
	return v.ID == 0
}
