package models

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Profile permissions
	PermissionProfileRead  = "profile:read"
	PermissionProfileWrite = "profile:write"

	// Job permissions
	PermissionJobRead  = "job:read"
	PermissionJobWrite = "job:write"
	PermissionJobApply = "job:apply"

	// Verification permissions
	PermissionVerificationSubmit = "verification:submit"

	// Chat permissions
	PermissionChatRead  = "chat:read"
	PermissionChatWrite = "chat:write"

	// User permissions
	PermissionChangePassword = "user:change-password"
)

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionReadAdmin,
			PermissionWriteAdmin,
			PermissionProfileRead,
			PermissionProfileWrite,
			PermissionJobRead,
			PermissionChatRead,
			PermissionChatWrite,
			PermissionChangePassword,
		}
	case "hospital":
		return []string{
			PermissionProfileRead,
			PermissionProfileWrite,
			PermissionJobRead,
			PermissionJobWrite,
			PermissionVerificationSubmit,
			PermissionChatRead,
			PermissionChatWrite,
			PermissionChangePassword,
		}
	case "doctor", "user":
		return []string{
			PermissionProfileRead,
			PermissionProfileWrite,
			PermissionJobRead,
			PermissionJobApply,
			PermissionVerificationSubmit,
			PermissionChatRead,
			PermissionChatWrite,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
