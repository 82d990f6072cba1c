package service

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/brain-back/internal/db"
)

func (s *General) TagList(ctx context.Context, owner uint64) ([]db.Tag, error) {
	tags := make([]db.Tag, 0)
	if owner == 0 {
		return tags, nil
	}

	res := s.db.WithContext(ctx).Where("user_id = ?", owner).Order("id").Find(&tags)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "find tags")
	}
	return tags, nil
}

// TagCreate adds a tag for owner. Titles are unique per owner; a taken one yields ErrConflict.
func (s *General) TagCreate(ctx context.Context, owner uint64, title string) (*db.Tag, error) {
	model := db.Tag{
		Title:  title,
		UserID: owner,
	}

	res := s.db.WithContext(ctx).Omit("User").Create(&model)
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return nil, ErrConflict
		}
		return nil, errors.Wrap(res.Error, "create tag")
	}
	return &model, nil
}

// TagUpdate renames one of owner's tags. Someone else's tag is ErrNotFound.
func (s *General) TagUpdate(ctx context.Context, owner, id uint64, title string) (*db.Tag, error) {
	res := s.db.WithContext(ctx).
		Model(&db.Tag{}).
		Where("id = ? AND user_id = ?", id, owner).
		Update("title", title)
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return nil, ErrConflict
		}
		return nil, errors.Wrap(res.Error, "update tag")
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	model := db.Tag{}
	res = s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).First(&model)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "find tag")
	}
	return &model, nil
}

// TagDelete detaches the tag from every bookmark and removes it, owner-scoped.
func (s *General) TagDelete(ctx context.Context, owner, id uint64) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sql, args, err := squirrel.
			Delete("content_tags").
			Where(squirrel.Expr("tag_id IN (SELECT id FROM tags WHERE id = ? AND user_id = ?)", id, owner)).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "build sql")
		}
		if err := tx.Exec(sql, args...).Error; err != nil {
			return errors.Wrap(err, "unlink contents")
		}

		res := tx.Where("id = ? AND user_id = ?", id, owner).Delete(&db.Tag{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete tag")
		}
		deleted = res.RowsAffected == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
