package permissions

import "judgeapi/models"

// IsAdmin reports whether the user carries the admin capability.
// The identity system proper lives outside this service; this is the narrow
// "is this caller an admin" check every privileged handler delegates to.
func IsAdmin(user *models.User) bool {
	return user != nil && user.IsAdmin && !user.Blocked
}
