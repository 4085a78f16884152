package users

// User is a stored record. ID is assigned by State and never changes.
type User struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProtoUser is the create payload: a User without an identity yet.
type ProtoUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserUpdate is a partial update. Nil fields keep their current value.
type UserUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
