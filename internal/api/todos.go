package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Makepad-fr/tada-remote/internal/model"
)

// ListTodos returns the signed-in user's todos.
func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.doJSON(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// CreateTodo creates a todo and returns it with its server id.
func (c *Client) CreateTodo(ctx context.Context, body model.CreateTodo) (model.Todo, error) {
	var t model.Todo
	err := c.doJSON(ctx, http.MethodPost, "/todos", body, &t)
	return t, err
}

// UpdateTodo replaces the text and completed flag of todo id.
func (c *Client) UpdateTodo(ctx context.Context, id int, body model.UpdateTodo) (model.Todo, error) {
	var t model.Todo
	err := c.doJSON(ctx, http.MethodPut, todoPath(id), body, &t)
	return t, err
}

// DeleteTodo removes todo id.
func (c *Client) DeleteTodo(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

func todoPath(id int) string {
	return fmt.Sprintf("/todos/%d", id)
}
