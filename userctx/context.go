package userctx

import "context"

// Context key type
type contextKey string

const adminKey contextKey = "admin_subject"
const adminEmailKey contextKey = "admin_email"

// SetAdmin marks the request as made by the verified admin subject
func SetAdmin(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminKey, subject)
}

// GetAdmin returns the verified admin subject, if any
func GetAdmin(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(adminKey).(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}

// SetAdminEmail adds the admin's email claim to the context
func SetAdminEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, adminEmailKey, email)
}

// GetAdminEmail retrieves the admin's email claim, "anonymous" when absent
func GetAdminEmail(ctx context.Context) string {
	email, ok := ctx.Value(adminEmailKey).(string)
	if !ok || email == "" {
		return "anonymous"
	}
	return email
}
