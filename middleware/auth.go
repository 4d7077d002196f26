package middleware

import (
	"net/http"
	"strings"

	userRepo "garagehub/database/repository/user"
	"garagehub/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and stores the authenticated
// user ID in the request context under "userID".
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Message: "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Message: "Insufficient authorization",
			})
			return
		}

		// The token subject must still resolve to a live account.
		u, err := users.GetByID(userID)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Message: "Insufficient authorization",
			})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// AuthedUserID returns the user ID stored by JWTAuthMiddleware.
func AuthedUserID(c *gin.Context) string {
	id, ok := c.Get("userID")
	if !ok {
		return ""
	}
	s, _ := id.(string)
	return s
}
