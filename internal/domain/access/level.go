package access

// Thresholds on the profile's user_level. A role includes every lower one.
const (
	LevelClient = 1
	LevelStaff  = 5
	LevelAdmin  = 10
)

type Role string

const (
	RoleClient Role = "client"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

func RoleOf(level int) Role {
	switch {
	case level >= LevelAdmin:
		return RoleAdmin
	case level >= LevelStaff:
		return RoleStaff
	default:
		return RoleClient
	}
}

// Actor is the authenticated caller as seen by use cases.
type Actor struct {
	UserID uint
	Level  int
}

func (a Actor) IsStaff() bool { return a.Level >= LevelStaff }
func (a Actor) IsAdmin() bool { return a.Level >= LevelAdmin }
