package auth

// User types stored in users.user_type and carried in the token role claim.
const (
	RoleActor           = "actor"
	RoleTechnician      = "technician"
	RoleProductionHouse = "production_house"
	RoleAdmin           = "admin"
	RoleStudio          = "studio"
	RoleMedia           = "media"
)

// NonTalentRoles never show up in talent listings.
var NonTalentRoles = []string{RoleAdmin, RoleProductionHouse, RoleStudio, RoleMedia}

func IsAdmin(claims *Claims) bool {
	return claims != nil && claims.Role == RoleAdmin
}
