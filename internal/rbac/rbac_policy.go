package rbac

import "go-fieldtrack/internal/domain"

const (
	ResourceAuth       = "auth"
	ResourceGeo        = "geo"
	ResourceDashboard  = "dashboard"
	ResourceMap        = "map"
	ResourceHome       = "home"
	ResourceAttendance = "attendance"
	ResourceTasks      = "tasks"
	ResourceLocation   = "location"
	ResourceUsers      = "users"

	ActionRead     = "read"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionComplete = "complete"
	ActionExport   = "export"
)

// roleMember holds what every signed-in user may do.
const roleMember = "member"

// Policies lists (role, resource, action) grants.
var Policies = [][]string{
	{roleMember, ResourceAuth, ActionRead},
	{roleMember, ResourceGeo, ActionRead},

	{string(domain.RoleAdmin), ResourceDashboard, ActionRead},
	{string(domain.RoleAdmin), ResourceMap, ActionRead},
	{string(domain.RoleAdmin), ResourceAttendance, ActionRead},
	{string(domain.RoleAdmin), ResourceAttendance, ActionExport},
	{string(domain.RoleAdmin), ResourceTasks, ActionRead},
	{string(domain.RoleAdmin), ResourceTasks, ActionCreate},
	{string(domain.RoleAdmin), ResourceTasks, ActionComplete},
	{string(domain.RoleAdmin), ResourceUsers, ActionRead},

	{string(domain.RoleEmployee), ResourceHome, ActionRead},
	{string(domain.RoleEmployee), ResourceAttendance, ActionCreate},
	{string(domain.RoleEmployee), ResourceAttendance, ActionRead},
	{string(domain.RoleEmployee), ResourceTasks, ActionRead},
	{string(domain.RoleEmployee), ResourceTasks, ActionComplete},
	{string(domain.RoleEmployee), ResourceLocation, ActionUpdate},
}

// Groupings lists (role, parent role) inheritance.
var Groupings = [][]string{
	{string(domain.RoleAdmin), roleMember},
	{string(domain.RoleEmployee), roleMember},
}
