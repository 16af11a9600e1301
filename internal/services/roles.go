package services

// Role is the closed set of account roles. Keeping it a distinct type
// makes the permission tables below checkable by the compiler.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RolePRL      Role = "prl"
	RolePL       Role = "pl"
	RoleFMG      Role = "fmg"
)

var validRoles = map[Role]bool{
	RoleStudent:  true,
	RoleLecturer: true,
	RolePRL:      true,
	RolePL:       true,
	RoleFMG:      true,
}

func ParseRole(raw string) (Role, bool) {
	role := Role(raw)
	return role, validRoles[role]
}

// Stream is the academic program track. FMG accounts carry none.
type Stream string

const StreamNone Stream = ""

var validStreams = map[Stream]bool{
	"IT": true,
	"IS": true,
	"CS": true,
	"SE": true,
}

func ParseStream(raw string) (Stream, bool) {
	if raw == "" {
		return StreamNone, true
	}
	stream := Stream(raw)
	return stream, validStreams[stream]
}

// Identity is the authenticated caller as the token collaborator
// presents it: id, role, stream.
type Identity struct {
	ID     int64
	Role   Role
	Stream Stream
}

// RateeRoles lists who a role may rate: a strict upward-only chain.
// FMG sits at the top and rates nobody.
func RateeRoles(role Role) []Role {
	switch role {
	case RoleStudent:
		return []Role{RoleLecturer, RolePRL, RolePL, RoleFMG}
	case RoleLecturer:
		return []Role{RolePRL, RolePL, RoleFMG}
	case RolePRL:
		return []Role{RolePL, RoleFMG}
	case RolePL:
		return []Role{RoleFMG}
	default:
		return nil
	}
}

// RecipientRoles lists who a role may address a report to. Students and
// lecturers route through PRLs of any stream; FMG may address the whole
// leadership tier.
func RecipientRoles(role Role) []Role {
	switch role {
	case RoleStudent, RoleLecturer:
		return []Role{RolePRL}
	case RolePRL:
		return []Role{RolePL}
	case RolePL:
		return []Role{RoleFMG}
	default:
		return []Role{RolePRL, RolePL, RoleFMG}
	}
}

// CanManageCatalog gates mutation of courses and classes.
func CanManageCatalog(role Role) bool {
	return role == RolePRL || role == RolePL
}
