package models

// Validate checks the create/replace payload.
func (in *PostInput) Validate() error {
	return validate.Struct(in)
}

// Post builds a new, unsaved post from the payload.
func (in *PostInput) Post() *Post {
	return &Post{Title: in.Title, Content: in.Content}
}

// Validate checks the fields that are present in the patch.
func (p *PostPatch) Validate() error {
	return validate.Struct(p)
}

// IsEmpty reports whether the patch changes nothing.
func (p *PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}

// Apply overwrites the fields of post that the patch supplies and reports
// whether anything changed. The post ID is never touched.
func (p *PostPatch) Apply(post *Post) bool {
	changed := false
	if p.Title != nil && *p.Title != post.Title {
		post.Title = *p.Title
		changed = true
	}
	if p.Content != nil && *p.Content != post.Content {
		post.Content = *p.Content
		changed = true
	}
	return changed
}
