package domain

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// PayableStatus represents the lifecycle of a payable account.
type PayableStatus string

const (
	PayableStatusPending   PayableStatus = "pending"
	PayableStatusPaid      PayableStatus = "paid"
	PayableStatusCancelled PayableStatus = "cancelled"
)

// XMLExtension is the only accepted extension for invoice uploads.
const XMLExtension = ".xml"
