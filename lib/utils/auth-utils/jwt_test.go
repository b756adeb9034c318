package authutils

import (
	"docflow-backend/models"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestClaims(t *testing.T) {
	t.Run(`token round trip`, func(t *testing.T) {
		tokenString, err := GetTokenWithSecret("secret", time.Hour, 42, 7, "John", models.TenantManagerRole)
		require.NoError(t, err)

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("secret"), nil
		})
		require.NoError(t, err)
		require.Equal(t, int64(42), GetInt64Claim(claims, "sub"))
		require.Equal(t, int64(7), GetInt64Claim(claims, "tenant"))
		require.Equal(t, string(models.TenantManagerRole), claims["role"])
	})

	t.Run(`missing or broken claims are zero`, func(t *testing.T) {
		claims := jwt.MapClaims{"sub": "abc", "tenant": true}
		require.Equal(t, int64(0), GetInt64Claim(claims, "sub"))
		require.Equal(t, int64(0), GetInt64Claim(claims, "tenant"))
		require.Equal(t, int64(0), GetInt64Claim(claims, "missing"))
	})
}
