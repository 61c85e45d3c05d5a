package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/translate-mock/internal/domain/account"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/requests"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/responses"
)

// AccountKey is the gin context key of the authenticated account.
const AccountKey = "mock_account"

// Auth resolves the request credential to an account, provisioning unseen
// credentials from the session's initial limits.
func Auth(accounts *account.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := GetSession(c).Params
		acct, err := accounts.Resolve(c.Request.Context(), requests.Credential(c), account.Provisioning{
			CharacterLimit:    params.InitCharacterLimit,
			DocumentLimit:     params.InitDocumentLimit,
			TeamDocumentLimit: params.InitTeamDocumentLimit,
		})
		if err != nil {
			responses.HandleError(c, err, "authentication failed")
			return
		}
		c.Set(AccountKey, acct)
		c.Next()
	}
}

// GetAccount returns the authenticated account. Routes behind Auth always have one.
func GetAccount(c *gin.Context) *account.Account {
	if v, ok := c.Get(AccountKey); ok {
		if acct, ok := v.(*account.Account); ok {
			return acct
		}
	}
	return nil
}
