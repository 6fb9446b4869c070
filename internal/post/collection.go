package post

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Collection is the set of posts produced by one build. It is owned by the
// orchestrator and handed to index and feed assembly once the walk is done.
type Collection struct {
	posts []*Post
	seen  map[string]struct{}
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{seen: make(map[string]struct{})}
}

// Add appends a post. Adding the same source path twice is an error.
func (c *Collection) Add(p *Post) error {
	if c.seen == nil {
		c.seen = make(map[string]struct{})
	}
	if _, dup := c.seen[p.SourcePath]; dup {
		return errors.InternalError("duplicate post in collection", nil).WithContext("path", p.SourcePath)
	}
	c.seen[p.SourcePath] = struct{}{}
	c.posts = append(c.posts, p)
	return nil
}

// Len returns the number of posts.
func (c *Collection) Len() int {
	return len(c.posts)
}

// All returns the posts in insertion order.
func (c *Collection) All() []*Post {
	return slices.Clone(c.posts)
}

// Sorted returns the posts newest first. Posts with identical dates are
// ordered by source path so output never depends on walk order.
func (c *Collection) Sorted() []*Post {
	out := slices.Clone(c.posts)
	slices.SortStableFunc(out, func(a, b *Post) int {
		if cmp := b.Metadata.Date.Compare(a.Metadata.Date); cmp != 0 {
			return cmp
		}
		return strings.Compare(a.SourcePath, b.SourcePath)
	})
	return out
}

// RequireRendered returns an error naming the first post that has no
// output path yet.
func (c *Collection) RequireRendered() error {
	for _, p := range c.posts {
		if !p.Rendered() {
			return errors.InternalError("post has no output path", nil).WithContext("path", p.SourcePath)
		}
	}
	return nil
}
