package redis

// Key layout:
//   revisitly:session    -> persisted session record (JSON)
//   revisitly:dashboard  -> last dashboard list snapshot (JSON)
const keyPrefix = "revisitly:"

// SessionKey returns the key of the persisted session record.
func SessionKey() string {
	return keyPrefix + "session"
}

// DashboardKey returns the key of the dashboard list snapshot.
func DashboardKey() string {
	return keyPrefix + "dashboard"
}
