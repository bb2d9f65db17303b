package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserFullName extracts the operator's display name from the Gin context
func GetUserFullName(c *gin.Context) string {
	name, exists := c.Get("user_full_name")
	if !exists {
		return ""
	}
	return name.(string)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// IsAdmin checks if the authenticated user holds the admin role
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == "admin"
}
