package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

const ActiveUserKey = "user"

func GetActiveUser(ctx *gin.Context) (TokenObject, error) {
	value, exists := ctx.Get(ActiveUserKey)
	if !exists {
		return TokenObject{}, fmt.Errorf("error occurred, not authorized to access this resource")
	}

	user, ok := value.(TokenObject)
	if !ok {
		return TokenObject{}, fmt.Errorf("an error occurred")
	}

	return user, nil
}
