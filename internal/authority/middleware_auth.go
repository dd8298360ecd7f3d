package authority

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-key-enroll/internal/logger"
	"github.com/MKhiriev/go-key-enroll/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based device authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [utils.ValidateAndParseDeviceToken], and — on success —
// stores the device's instance identifier in the request context under
// [utils.DeviceIDCtxKey] before delegating to the next handler.
//
// Requests are rejected with HTTP 401 Unauthorized when the header is absent
// or malformed, the token has expired, or the signature or issuer does not
// check out.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateAndParseDeviceToken(tokenString, h.tokenSignKey, h.tokenIssuer)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				log.Err(err).Msg("device token expired")
				http.Error(w, "device token expired", http.StatusUnauthorized)
			default:
				log.Err(err).Msg("error occurred during parsing device token")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			}
			return
		}

		// Store the authenticated device's ID in the context so that the
		// endpoints can retrieve it without re-parsing the token.
		ctx := context.WithValue(r.Context(), utils.DeviceIDCtxKey, token.DeviceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
