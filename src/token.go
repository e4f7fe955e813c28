package mambo

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const tokenHeader = "mambo-token"

// tokenClaims is the payload slaves present when the cluster runs with
// security enabled.
type tokenClaims struct {
	WorkerID string `json:"workerId"`
	Exp      int64  `json:"exp"`
}

// ValidateToken checks an HS256 JWT against the shared secret and returns
// its claims. Expired tokens and tokens signed with any other algorithm are
// rejected.
func ValidateToken(token, secretKey string) (tokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return tokenClaims{}, errors.New("invalid token format")
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return tokenClaims{}, errors.New("invalid header encoding")
	}
	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return tokenClaims{}, errors.New("invalid payload encoding")
	}
	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return tokenClaims{}, errors.New("invalid signature encoding")
	}

	var header struct {
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return tokenClaims{}, errors.New("invalid header JSON")
	}
	if header.Alg != "HS256" {
		return tokenClaims{}, errors.New("invalid algorithm")
	}

	expected := signHS256(parts[0]+"."+parts[1], secretKey)
	if subtle.ConstantTimeCompare(expected, signature) != 1 {
		return tokenClaims{}, errors.New("invalid signature")
	}

	var claims tokenClaims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return tokenClaims{}, errors.New("invalid payload JSON")
	}
	if claims.Exp != 0 && time.Now().Unix() > claims.Exp {
		return tokenClaims{}, errors.New("token expired")
	}
	return claims, nil
}

func signHS256(data, secretKey string) []byte {
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return h.Sum(nil)
}

type workerIDKey struct{}

// WorkerIDFromContext returns the authenticated worker identity, if any.
func WorkerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(workerIDKey{}).(string)
	return id, ok
}

// NewTokenInterceptor builds a unary interceptor that only admits calls
// carrying a valid token. The signing secret comes from Secret Manager and
// is cached after the first call.
func NewTokenInterceptor(cfg *Config) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, errors.New("missing metadata")
		}
		tokens := md[tokenHeader]
		if len(tokens) == 0 {
			return nil, fmt.Errorf("missing %s", tokenHeader)
		}
		secret, err := getJWTSecret(cfg)
		if err != nil {
			return nil, fmt.Errorf("fetching token secret: %w", err)
		}
		claims, err := ValidateToken(tokens[0], secret)
		if err != nil {
			return nil, fmt.Errorf("invalid token: %w", err)
		}
		if claims.WorkerID != "" {
			ctx = context.WithValue(ctx, workerIDKey{}, claims.WorkerID)
		}
		return handler(ctx, req)
	}
}
