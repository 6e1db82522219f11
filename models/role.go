package models

import "strings"

// Role is the closed set of caller roles recognised by the governance core.
// A role is fixed at authentication time and travels with every call as part
// of [Actor].
type Role string

const (
	// RoleUnknown is the zero value produced for any unrecognised role string.
	// It carries no capabilities.
	RoleUnknown Role = ""

	// RoleAdmin sees every field and may perform all privileged operations.
	RoleAdmin Role = "admin"

	// RoleDoctor sees shadow identity fields and the diagnosis.
	RoleDoctor Role = "doctor"

	// RoleReceptionist sees shadow identity fields only and registers subjects.
	RoleReceptionist Role = "receptionist"
)

// Capability is a bit set describing what a role is allowed to do.
type Capability uint8

const (
	// CapFullRead exposes real identity fields, shadow fields and lifecycle metadata.
	CapFullRead Capability = 1 << iota
	// CapDiagnosisRead exposes the sensitive diagnosis field.
	CapDiagnosisRead
	// CapShadowRead exposes anonymized identity fields and timestamps.
	CapShadowRead
	// CapRegister allows adding new subjects.
	CapRegister
	// CapManage allows encryption, decryption, retention, purge, sweeps and audit access.
	CapManage
)

// capabilities is the role → capability table. Roles absent from this map
// have no capabilities.
var capabilities = map[Role]Capability{
	RoleAdmin:        CapFullRead | CapDiagnosisRead | CapShadowRead | CapRegister | CapManage,
	RoleDoctor:       CapDiagnosisRead | CapShadowRead,
	RoleReceptionist: CapShadowRead | CapRegister,
}

// ParseRole converts a stored or transmitted role string into a [Role].
// Unrecognised values yield [RoleUnknown].
func ParseRole(s string) Role {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := capabilities[role]; !ok {
		return RoleUnknown
	}
	return role
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := capabilities[r]
	return ok
}

// Capabilities returns the capability set granted to r.
func (r Role) Capabilities() Capability {
	return capabilities[r]
}

// Can reports whether r holds every capability in c.
func (r Role) Can(c Capability) bool {
	return c != 0 && r.Capabilities()&c == c
}

// String implements [fmt.Stringer].
func (r Role) String() string {
	if r == RoleUnknown {
		return "unknown"
	}
	return string(r)
}

// Actor identifies the authenticated caller of a governance operation.
type Actor struct {
	ID   int64 `json:"actor_id"`
	Role Role  `json:"role"`
}

// SystemActor is used by internal triggers such as the periodic purge worker.
var SystemActor = Actor{ID: 0, Role: RoleAdmin}
