package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-api/internal/shared/response"
)

// Recovery converts a panic into the standard SYS_001 error envelope
// so clients never see a bare gin stack response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Msg("Panic recovered")

				response.ErrorResponse(c, 500, "SYS_001", "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
