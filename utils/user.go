package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// GetActiveUser returns the token identity the auth middleware stored on
// the request context. Handlers resolve the acting account through this
// instead of reading raw context keys.
func GetActiveUser(ctx *gin.Context) (TokenObject, error) {
	value, exists := ctx.Get("user")
	if !exists {
		return TokenObject{}, fmt.Errorf("no authenticated account on this request")
	}

	user, ok := value.(TokenObject)
	if !ok {
		return TokenObject{}, fmt.Errorf("malformed account identity on this request")
	}

	return user, nil
}
