package todos

// Todo is a stored record. ID is assigned by the backend and never changes.
type Todo struct {
	ID          int64  `json:"id"          bson:"_id"`
	Title       string `json:"title"       bson:"title"`
	Description string `json:"description" bson:"description"`
	Done        bool   `json:"done"        bson:"done"`
}

// CreateTodo is the create payload. New todos always start not done.
type CreateTodo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTodo is a partial update. Nil fields keep their current value.
type UpdateTodo struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
}
