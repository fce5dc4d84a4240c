package services

import (
	"context"
	"errors"

	"servini-backend/internal/core/domain"

	"gorm.io/gorm"
)

// loadOwned is the single ownership guard used by every mutating
// operation on an owned resource: load the entity, translate a missing
// row to ErrNotFound, and reject the mutation with ErrForbidden when the
// requester is not the owner. Admins bypass the ownership check but
// never the existence check.
func loadOwned[T any](
	ctx context.Context,
	load func(context.Context, uint) (*T, error),
	ownerOf func(*T) uint,
	id, requesterID uint,
	role domain.Role,
) (*T, error) {
	entity, err := load(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if role != domain.RoleAdmin && ownerOf(entity) != requesterID {
		return nil, domain.ErrForbidden
	}

	return entity, nil
}
