package service

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/brain-back/internal/db"
)

type ContentInput struct {
	Type        db.ContentType
	Link        string
	Title       string
	Description *string
	Tags        []uint64
}

// ContentCreate stores a bookmark for owner. Every tag id must name one of the
// owner's tags, otherwise nothing is stored and ErrUnknownTag is returned.
func (s *General) ContentCreate(ctx context.Context, owner uint64, in ContentInput) (*db.Content, error) {
	if !in.Type.Valid() {
		return nil, errors.Wrapf(db.ErrUnknownContentType, "%q", string(in.Type))
	}

	model := db.Content{
		Link:        in.Link,
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		UserID:      owner,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := ownedTags(tx, owner, in.Tags)
		if err != nil {
			return err
		}
		model.Tags = tags

		if err := tx.Omit("User", "Tags.*").Create(&model).Error; err != nil {
			return errors.Wrap(err, "create content")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// ContentList returns the owner's bookmarks with owner and tags populated.
// A non-empty tagIDs keeps only bookmarks carrying at least one of them.
func (s *General) ContentList(ctx context.Context, owner uint64, tagIDs []uint64) ([]db.Content, error) {
	contents := make([]db.Content, 0)
	if owner == 0 {
		return contents, nil
	}

	w := squirrel.And{
		squirrel.Eq{"contents.user_id": owner},
	}
	if len(tagIDs) != 0 {
		sub, subArgs, err := squirrel.
			Select("content_id").From("content_tags").
			Where(squirrel.Eq{"tag_id": tagIDs}).
			ToSql()
		if err != nil {
			return nil, errors.Wrap(err, "build tag filter")
		}
		w = append(w, squirrel.Expr("contents.id IN ("+sub+")", subArgs...))
	}
	where, args, err := w.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	res := s.db.WithContext(ctx).
		Preload("User").
		Preload("Tags").
		Where(where, args...).
		Order("contents.id").
		Find(&contents)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "find contents")
	}
	return contents, nil
}

// ContentDelete removes the bookmark only when it belongs to owner. It reports
// whether a row was removed; removing nothing is not an error.
func (s *General) ContentDelete(ctx context.Context, owner, id uint64) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sql, args, err := squirrel.
			Delete("content_tags").
			Where(squirrel.Expr("content_id IN (SELECT id FROM contents WHERE id = ? AND user_id = ?)", id, owner)).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "build sql")
		}
		if err := tx.Exec(sql, args...).Error; err != nil {
			return errors.Wrap(err, "unlink tags")
		}

		res := tx.Where("id = ? AND user_id = ?", id, owner).Delete(&db.Content{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete content")
		}
		deleted = res.RowsAffected == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func ownedTags(tx *gorm.DB, owner uint64, ids []uint64) ([]db.Tag, error) {
	seen := make(map[uint64]struct{}, len(ids))
	unique := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, nil
	}

	tags := make([]db.Tag, 0, len(unique))
	res := tx.Where("user_id = ? AND id IN ?", owner, unique).Order("id").Find(&tags)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "find tags")
	}
	if len(tags) != len(unique) {
		return nil, ErrUnknownTag
	}
	return tags, nil
}
