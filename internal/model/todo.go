package model

// Todo is the domain model for a todo entry as the API returns it.
// The id is assigned by the server and never changes.
type Todo struct {
	ID          int    `json:"id"`
	Todo        string `json:"todo"`
	IsCompleted bool   `json:"isCompleted"`
	UserID      int    `json:"userId,omitempty"`
}

// CreateTodo is the body of a create call.
type CreateTodo struct {
	Todo string `json:"todo"`
}

// UpdateTodo is the body of an update call. Both fields are always sent.
type UpdateTodo struct {
	Todo        string `json:"todo"`
	IsCompleted bool   `json:"isCompleted"`
}

// Credentials is the email/password pair posted by the sign-up and sign-in forms.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
