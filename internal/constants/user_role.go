package constants

// User roles carried in the auth token.
const (
	UserRoleAdmin   = "admin"
	UserRoleShipper = "shipper"
)
