package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rogue-Bear-Innovations/brain-back/internal/db"
)

// ShareEnable makes the owner's collection public. An existing token is
// returned unchanged; created reports whether this call inserted the link.
// The insert is a single ON CONFLICT DO NOTHING so concurrent callers all end
// up with the one persisted token.
func (s *General) ShareEnable(ctx context.Context, owner uint64) (hash string, created bool, err error) {
	if owner == 0 {
		return "", false, ErrNotFound
	}

	link := db.ShareLink{
		Hash:   uuid.New().String(),
		UserID: owner,
	}
	res := s.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&link)
	if res.Error != nil {
		return "", false, errors.Wrap(res.Error, "create share link")
	}
	created = res.RowsAffected == 1
	if created {
		s.logger.Debugw("share link created", "owner", owner)
	}

	current := db.ShareLink{}
	res = s.db.WithContext(ctx).Where("user_id = ?", owner).First(&current)
	if res.Error != nil {
		return "", false, errors.Wrap(res.Error, "find share link")
	}
	return current.Hash, created, nil
}

// ShareDisable removes the owner's link. Disabling a private collection is a no-op.
func (s *General) ShareDisable(ctx context.Context, owner uint64) (bool, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", owner).Delete(&db.ShareLink{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete share link")
	}
	return res.RowsAffected == 1, nil
}

func (s *General) ShareResolve(ctx context.Context, hash string) (uint64, error) {
	if hash == "" {
		return 0, ErrNotFound
	}

	link := db.ShareLink{}
	res := s.db.WithContext(ctx).Where("hash = ?", hash).First(&link)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, errors.Wrap(res.Error, "find share link")
	}
	return link.UserID, nil
}

// OwnerByToken returns the user behind a share token, or ErrNotFound.
func (s *General) OwnerByToken(ctx context.Context, hash string) (*db.User, error) {
	owner, err := s.ShareResolve(ctx, hash)
	if err != nil {
		return nil, err
	}
	return s.UserGet(ctx, owner)
}

// SharedContent lists the collection behind a share token. An unknown token
// yields ErrNotFound and never reaches the content query.
func (s *General) SharedContent(ctx context.Context, hash string) ([]db.Content, error) {
	owner, err := s.ShareResolve(ctx, hash)
	if err != nil {
		return nil, err
	}
	return s.ContentList(ctx, owner, nil)
}
