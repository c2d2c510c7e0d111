package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owned is satisfied by pointer models that carry a user_id column.
type Owned[T any] interface {
	*T
	SetOwner(uuid.UUID)
}

// OwnedRepository scopes every statement to a single owner. A row that exists
// but belongs to someone else is reported exactly like a missing one.
type OwnedRepository[T any, P Owned[T]] struct {
	DB *gorm.DB
}

func NewOwnedRepository[T any, P Owned[T]](db *gorm.DB) *OwnedRepository[T, P] {
	return &OwnedRepository[T, P]{DB: db}
}

func (r *OwnedRepository[T, P]) List(ctx context.Context, owner uuid.UUID, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	items := make([]T, 0)
	err := r.DB.WithContext(ctx).
		Scopes(scopes...).
		Where("user_id = ?", owner).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *OwnedRepository[T, P]) Get(ctx context.Context, owner, id uuid.UUID) (P, error) {
	return r.get(r.DB.WithContext(ctx), owner, id)
}

func (r *OwnedRepository[T, P]) get(tx *gorm.DB, owner, id uuid.UUID) (P, error) {
	item := P(new(T))
	if err := tx.First(item, "id = ? AND user_id = ?", id, owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *OwnedRepository[T, P]) Create(ctx context.Context, owner uuid.UUID, item P) error {
	item.SetOwner(owner)
	return r.DB.WithContext(ctx).Create(item).Error
}

// Update applies column changes to an owned row and returns the stored result.
func (r *OwnedRepository[T, P]) Update(ctx context.Context, owner, id uuid.UUID, changes map[string]interface{}) (P, error) {
	var updated P
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := r.get(tx, owner, id)
		if err != nil {
			return err
		}
		if len(changes) > 0 {
			if err := tx.Model(item).Updates(changes).Error; err != nil {
				return err
			}
		}
		updated, err = r.get(tx, owner, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete loads the row first so model delete hooks see its id.
func (r *OwnedRepository[T, P]) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := r.get(tx, owner, id)
		if err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
}
