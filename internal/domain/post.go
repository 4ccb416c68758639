package domain

import "time"

// Like records that a user liked a post.
type Like struct {
	User ID `json:"user" bson:"user"`
}

// Comment is a reply embedded in a Post.
type Comment struct {
	ID     ID        `json:"id"               bson:"_id"`
	User   ID        `json:"user"             bson:"user"`
	Text   string    `json:"text"             bson:"text"`
	Name   string    `json:"name,omitempty"   bson:"name,omitempty"`
	Avatar string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Date   time.Time `json:"date"             bson:"date"`
}

// Post is a status update published by a user. Likes and comments are kept
// most recent first.
type Post struct {
	ID       ID        `json:"id"               bson:"_id"`
	User     ID        `json:"user"             bson:"user"`
	Text     string    `json:"text"             bson:"text"`
	Name     string    `json:"name,omitempty"   bson:"name,omitempty"`
	Avatar   string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Likes    []Like    `json:"likes"            bson:"likes"`
	Comments []Comment `json:"comments"         bson:"comments"`
	Date     time.Time `json:"date"             bson:"date"`
}

// NewPost creates a post authored by user.
func NewPost(user ID, text, name, avatar string) *Post {
	return &Post{
		ID:       NewID(),
		User:     user,
		Text:     text,
		Name:     name,
		Avatar:   avatar,
		Likes:    []Like{},
		Comments: []Comment{},
		Date:     time.Now().UTC(),
	}
}

// LikedBy reports whether user has liked the post.
func (p *Post) LikedBy(user ID) bool {
	for _, l := range p.Likes {
		if l.User == user {
			return true
		}
	}
	return false
}

// Like puts user at the head of the like list.
func (p *Post) Like(user ID) error {
	if p.LikedBy(user) {
		return ErrPostAlreadyLiked
	}
	p.Likes = append([]Like{{User: user}}, p.Likes...)
	return nil
}

// Unlike removes the like left by user.
func (p *Post) Unlike(user ID) error {
	for i, l := range p.Likes {
		if l.User == user {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return ErrPostNotLiked
}

// AddComment puts a new comment at the head of the comment list and returns it.
func (p *Post) AddComment(user ID, text, name, avatar string) Comment {
	c := Comment{
		ID:     NewID(),
		User:   user,
		Text:   text,
		Name:   name,
		Avatar: avatar,
		Date:   time.Now().UTC(),
	}
	p.Comments = append([]Comment{c}, p.Comments...)
	return c
}

// RemoveComment deletes the comment with the given id on behalf of requester.
// Only the comment's author may remove it.
func (p *Post) RemoveComment(id, requester ID) error {
	for i, c := range p.Comments {
		if c.ID != id {
			continue
		}
		if c.User != requester {
			return ErrForbiddenOperation
		}
		p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
		return nil
	}
	return ErrCommentNotFound
}

// Clone returns a deep copy of p.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Likes = append([]Like{}, p.Likes...)
	c.Comments = append([]Comment{}, p.Comments...)
	return &c
}
