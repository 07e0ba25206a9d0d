package models

// Category - категория историй. Дерево строится по ParentID.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
}

// CategoryRequest - тело запроса создания/обновления категории.
type CategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
}

// Parent возвращает id родителя или пустую строку для корневой категории.
func (c Category) Parent() string {
	if c.ParentID == nil {
		return ""
	}
	return *c.ParentID
}
