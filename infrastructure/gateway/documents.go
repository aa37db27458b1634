package gateway

import (
	"encoding/json"
	"time"

	"blogspace-client/domain/blog"
)

// UserDocument is the user shape the API returns.
type UserDocument struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Role        string           `json:"role"`
	Avatar      string           `json:"avatar"`
	Bio         string           `json:"bio"`
	SocialLinks blog.SocialLinks `json:"socialLinks"`
	IsVerified  bool             `json:"isVerified"`
}

// ToUser converts the wire document into the domain type.
func (d UserDocument) ToUser() blog.User {
	return blog.User{
		ID:          d.ID,
		Name:        d.Name,
		Email:       d.Email,
		Role:        blog.RoleFromString(d.Role),
		Avatar:      d.Avatar,
		Bio:         d.Bio,
		SocialLinks: d.SocialLinks,
		IsVerified:  d.IsVerified,
	}
}

// AuthorRef appears inside posts and comments either as a bare ID
// string or as a populated object, depending on which server handler
// produced the document.
type AuthorRef struct {
	ID     string
	Name   string
	Avatar string
}

func (a *AuthorRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		a.ID = id
		return nil
	}
	var doc struct {
		ID     string `json:"_id"`
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	a.ID = doc.ID
	a.Name = doc.Name
	a.Avatar = doc.Avatar
	return nil
}

func (a AuthorRef) toAuthor() blog.Author {
	return blog.Author{ID: a.ID, Name: a.Name, Avatar: a.Avatar}
}

// PostDocument is the post shape the API returns. Likes arrives as the
// list of user IDs that liked the post; the domain type only carries
// the count.
type PostDocument struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	FeaturedImage string    `json:"featuredImage"`
	VideoURL      string    `json:"videoUrl"`
	Categories    []string  `json:"categories"`
	Author        AuthorRef `json:"author"`
	Tags          []string  `json:"tags"`
	Status        string    `json:"status"`
	Likes         []string  `json:"likes"`
	Views         int       `json:"views"`
	CommentCount  int       `json:"commentCount"`
	IsFeatured    bool      `json:"isFeatured"`
	PublishedAt   time.Time `json:"publishedAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToPost converts the wire document into the domain type.
func (d PostDocument) ToPost() blog.Post {
	return blog.Post{
		ID:            d.ID,
		Title:         d.Title,
		Slug:          d.Slug,
		Excerpt:       d.Excerpt,
		Content:       d.Content,
		FeaturedImage: d.FeaturedImage,
		VideoURL:      d.VideoURL,
		Categories:    d.Categories,
		Author:        d.Author.toAuthor(),
		Tags:          d.Tags,
		Status:        blog.PostStatus(d.Status),
		Likes:         len(d.Likes),
		Views:         d.Views,
		IsFeatured:    d.IsFeatured,
		PublishedAt:   d.PublishedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		Comments:      d.CommentCount,
	}
}

// CategoryDocument is the category shape the API returns.
type CategoryDocument struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PostCount   int       `json:"postCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (d CategoryDocument) ToCategory() blog.Category {
	return blog.Category{
		ID:          d.ID,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		PostCount:   d.PostCount,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// CommentDocument is the comment shape the API returns. Replies nest
// recursively when the tree form is requested.
type CommentDocument struct {
	ID        string            `json:"_id"`
	PostID    string            `json:"post"`
	Author    AuthorRef         `json:"author"`
	Content   string            `json:"content"`
	Status    string            `json:"status"`
	ParentID  string            `json:"parent"`
	Likes     []string          `json:"likes"`
	Replies   []CommentDocument `json:"replies"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (d CommentDocument) ToComment() blog.Comment {
	var replies []blog.Comment
	for _, r := range d.Replies {
		replies = append(replies, r.ToComment())
	}
	return blog.Comment{
		ID:        d.ID,
		Content:   d.Content,
		Author:    d.Author.toAuthor(),
		PostID:    d.PostID,
		ParentID:  d.ParentID,
		Likes:     len(d.Likes),
		Status:    blog.CommentStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Replies:   replies,
	}
}

// AuthorDocument is the featured-author shape the API returns.
type AuthorDocument struct {
	ID          string           `json:"_id"`
	Name        string           `json:"name"`
	Title       string           `json:"title"`
	Avatar      string           `json:"avatar"`
	Bio         string           `json:"bio"`
	SocialLinks blog.SocialLinks `json:"socialLinks"`
	PostCount   int              `json:"postCount"`
	Followers   int              `json:"followers"`
}

func (d AuthorDocument) ToAuthor() blog.Author {
	return blog.Author{
		ID:             d.ID,
		Name:           d.Name,
		Title:          d.Title,
		Avatar:         d.Avatar,
		Bio:            d.Bio,
		PostsCount:     d.PostCount,
		FollowersCount: d.Followers,
	}
}
