package models

import (
	"github.com/Rogue-Bear-Innovations/brain-back/internal/db"
)

type SignupReq struct {
	User     string `json:"user" validate:"required"`
	Password string `json:"password" validate:"min=8,max=50"`
	Email    string `json:"email" validate:"required,email"`
}

type SigninReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=8,max=50"`
}

type ContentReq struct {
	Type        string   `json:"type" validate:"required,contenttype"`
	Link        string   `json:"link" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Tags        []uint64 `json:"tags" validate:"dive,required"`
	Description *string  `json:"description"`
}

type TagReq struct {
	Title string `json:"title" validate:"required"`
}

type ContentDeleteReq struct {
	ContentID uint64 `json:"contentId" validate:"required"`
}

type ShareReq struct {
	Share bool `json:"share"`
}

type MessageResp struct {
	Mesg string `json:"mesg"`
}

type SigninResp struct {
	Mesg  string `json:"mesg"`
	Token string `json:"token"`
}

type ContentCreateResp struct {
	Mesg      string `json:"mesg"`
	ContentID uint64 `json:"contentId"`
	UserID    uint64 `json:"userId"`
}

type DeleteResp struct {
	Mesg    string `json:"mesg"`
	Deleted bool   `json:"deleted"`
}

type ShareResp struct {
	Mesg string  `json:"mesg"`
	Link *string `json:"link"`
}

type OwnerResp struct {
	ID   uint64 `json:"id"`
	User string `json:"user"`
}

type TagResp struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

type ContentResp struct {
	ID          uint64    `json:"id"`
	Link        string    `json:"link"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Type        string    `json:"type"`
	Tags        []TagResp `json:"tags"`
	Owner       OwnerResp `json:"userId"`
}

type ContentListResp struct {
	Data []ContentResp `json:"data"`
}

type TagListResp struct {
	Data []TagResp `json:"data"`
}

type SharedContentResp struct {
	Content []ContentResp `json:"content"`
}

type UserResp struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	User  string `json:"user"`
}

type UserDetailsResp struct {
	Response *UserResp `json:"response"`
	Status   int       `json:"status"`
}

type UserDetailsErrResp struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

type ValidationErrResp struct {
	Mesg   string       `json:"mesg"`
	Errors []FieldError `json:"errors,omitempty"`
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func NewTagResp(t db.Tag) TagResp {
	return TagResp{
		ID:    t.ID,
		Title: t.Title,
	}
}

func NewTagResps(tags []db.Tag) []TagResp {
	resp := make([]TagResp, len(tags))
	for i := range tags {
		resp[i] = NewTagResp(tags[i])
	}
	return resp
}

// NewContentResp expects User to be preloaded; it carries the owner's handle only.
func NewContentResp(c db.Content) ContentResp {
	return ContentResp{
		ID:          c.ID,
		Link:        c.Link,
		Title:       c.Title,
		Description: c.Description,
		Type:        string(c.Type),
		Tags:        NewTagResps(c.Tags),
		Owner: OwnerResp{
			ID:   c.UserID,
			User: c.User.Handle,
		},
	}
}

func NewContentResps(contents []db.Content) []ContentResp {
	resp := make([]ContentResp, len(contents))
	for i := range contents {
		resp[i] = NewContentResp(contents[i])
	}
	return resp
}

func NewUserResp(u *db.User) *UserResp {
	if u == nil {
		return nil
	}
	return &UserResp{
		ID:    u.ID,
		Email: u.Email,
		User:  u.Handle,
	}
}
