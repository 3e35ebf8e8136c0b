package middleware

import (
	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/response"
)

// Roles ordered by privilege.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var roleRank = map[string]int{
	RoleUser:  1,
	RoleAdmin: 2,
}

// Operation names used as capability keys.
const (
	OpBookCreate        = "book:create"
	OpBookUpdate        = "book:update"
	OpBookDelete        = "book:delete"
	OpBookUploadCover   = "book:upload_cover"
	OpAuthorCreate      = "author:create"
	OpAuthorUpdate      = "author:update"
	OpAuthorDelete      = "author:delete"
	OpAuthorUploadPhoto = "author:upload_photo"
	OpReviewAdd         = "review:add"
	OpUserSetRole       = "user:set_role"
	OpCatalogExport     = "catalog:export"
)

// capabilities maps each mutating operation to the minimum role it requires.
// One table, one check; no per-handler role logic.
var capabilities = map[string]string{
	OpBookCreate:        RoleUser,
	OpBookUpdate:        RoleUser,
	OpBookDelete:        RoleAdmin,
	OpBookUploadCover:   RoleUser,
	OpAuthorCreate:      RoleUser,
	OpAuthorUpdate:      RoleUser,
	OpAuthorDelete:      RoleAdmin,
	OpAuthorUploadPhoto: RoleUser,
	OpReviewAdd:         RoleUser,
	OpUserSetRole:       RoleAdmin,
	OpCatalogExport:     RoleAdmin,
}

// Authorize gates an operation on the capability table. An unknown operation
// is a programming error and is denied outright.
func Authorize(op string) gin.HandlerFunc {
	return func(c *gin.Context) {
		required, ok := capabilities[op]
		if !ok {
			response.Forbidden(c, "operation not permitted")
			c.Abort()
			return
		}

		if _, exists := c.Get(CtxUserID); !exists {
			response.Unauthenticated(c, "authentication required")
			c.Abort()
			return
		}

		role := c.GetString(CtxUserRole)
		if roleRank[role] < roleRank[required] {
			response.Forbidden(c, "insufficient role for this operation")
			c.Abort()
			return
		}

		c.Next()
	}
}
