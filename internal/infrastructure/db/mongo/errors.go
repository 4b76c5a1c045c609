package mongo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/auth"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
)

// Server error codes that matter to the seeder.
const (
	codeAuthenticationFailed = 18
	codeUnauthorized         = 13
)

// classify wraps a driver error with the matching domain sentinel. The
// driver error stays in the chain so callers can still inspect it.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var authErr *auth.Error
	if errors.As(err, &authErr) {
		return fmt.Errorf("%w: %w", domain.ErrAuthentication, err)
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %w", domain.ErrDuplicateKey, err)
	}

	var se mongo.ServerError
	if errors.As(err, &se) {
		if se.HasErrorCode(codeAuthenticationFailed) || se.HasErrorCode(codeUnauthorized) {
			return fmt.Errorf("%w: %w", domain.ErrAuthentication, err)
		}
		return fmt.Errorf("%w: %w", domain.ErrWrite, err)
	}

	return err
}
