package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Avinash9006/InfinityPower/internal/models"
)

// Capability identifies one guarded operation class.
type Capability struct {
	Resource string
	Action   string
}

const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionManage = "manage"
	ActionInvite = "invite"
)

// capabilityTable is the single source of truth for which roles may
// perform which action on which resource. Routes consult it through
// RequireCapability instead of carrying their own role lists.
// Platform admins implicitly hold every capability granted to admins.
var capabilityTable = map[Capability][]string{
	{"tenants", ActionRead}:    {models.RolePlatformAdmin},
	{"tenants", ActionInvite}:  {models.RoleAdmin},
	{"courses", ActionRead}:    {models.RoleAdmin, models.RoleTeacher, models.RoleStudent},
	{"courses", ActionWrite}:   {models.RoleAdmin, models.RoleTeacher},
	{"subjects", ActionRead}:   {models.RoleAdmin, models.RoleTeacher, models.RoleStudent},
	{"subjects", ActionWrite}:  {models.RoleAdmin, models.RoleTeacher},
	{"chapters", ActionRead}:   {models.RoleAdmin, models.RoleTeacher, models.RoleStudent},
	{"chapters", ActionWrite}:  {models.RoleAdmin, models.RoleTeacher},
	{"videos", ActionRead}:     {models.RoleAdmin, models.RoleTeacher, models.RoleStudent},
	{"videos", ActionWrite}:    {models.RoleAdmin, models.RoleTeacher},
	{"resources", ActionRead}:  {models.RoleAdmin, models.RoleTeacher, models.RoleStudent},
	{"resources", ActionWrite}: {models.RoleAdmin, models.RoleTeacher},
	{"users", ActionManage}:    {models.RoleAdmin},
	{"profile", ActionRead}:    {models.RoleAdmin, models.RoleTeacher, models.RoleStudent},
	{"profile", ActionWrite}:   {models.RoleAdmin, models.RoleTeacher, models.RoleStudent},
}

// Allowed reports whether role may perform action on resource.
func Allowed(role, resource, action string) bool {
	allowed, ok := capabilityTable[Capability{Resource: resource, Action: action}]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
		if role == models.RolePlatformAdmin && r == models.RoleAdmin {
			return true
		}
	}
	return false
}

// RequireCapability is composed after AuthRequired; it never replaces
// authentication.
func RequireCapability(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUserRole(c)
		if role == "" || !Allowed(role, resource, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "access denied",
				"code":    "ACCESS_DENIED",
			})
			return
		}
		c.Next()
	}
}
