package db

import "github.com/pkg/errors"

// ContentType is the platform a bookmark points at. The set is closed.
type ContentType string

const (
	ContentTypeLinkedin ContentType = "Linkedin"
	ContentTypeYoutube  ContentType = "Youtube"
	ContentTypeArticle  ContentType = "Article"
	ContentTypeTwitter  ContentType = "Twitter"
)

var ErrUnknownContentType = errors.New("unknown content type")

var contentTypes = []ContentType{
	ContentTypeLinkedin,
	ContentTypeYoutube,
	ContentTypeArticle,
	ContentTypeTwitter,
}

func ParseContentType(s string) (ContentType, error) {
	t := ContentType(s)
	if !t.Valid() {
		return "", errors.Wrapf(ErrUnknownContentType, "%q", s)
	}
	return t, nil
}

func (t ContentType) Valid() bool {
	for _, known := range contentTypes {
		if t == known {
			return true
		}
	}
	return false
}
