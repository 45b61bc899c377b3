package devapi

import (
	"errors"
	"strings"
	"sync"

	"github.com/Makepad-fr/tada-remote/internal/model"
	"github.com/Makepad-fr/tada-remote/internal/store/jsonstore"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound       = errors.New("todo not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmailTaken     = errors.New("already in use")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrUnknownUser    = errors.New("user not found")
)

// Store is the in-memory state of the dev server.
type Store struct {
	mu       sync.Mutex
	nextUser int
	nextTodo int
	users    []model.User
	todos    []model.Todo

	// bcrypt cost; tests lower it
	cost int
	path string
}

// NewStore returns an empty store. With a non-empty path the state is loaded
// from and saved to that JSON file.
func NewStore(path string) (*Store, error) {
	s := &Store{nextUser: 1, nextTodo: 1, cost: bcrypt.DefaultCost, path: path}
	if path == "" {
		return s, nil
	}
	snap, err := jsonstore.Load(path)
	if err != nil {
		return nil, err
	}
	s.nextUser, s.nextTodo = snap.NextUserID, snap.NextTodoID
	s.users, s.todos = snap.Users, snap.Todos
	return s, nil
}

// SetHashCost overrides the bcrypt cost for new accounts.
func (s *Store) SetHashCost(cost int) {
	s.mu.Lock()
	s.cost = cost
	s.mu.Unlock()
}

// CreateUser registers email with a bcrypt hash of password.
func (s *Store) CreateUser(email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.User{}, ErrInvalidInput
	}
	s.mu.Lock()
	cost := s.cost
	s.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return model.User{}, ErrEmailTaken
		}
	}
	u := model.User{ID: s.nextUser, Email: email, PasswordHash: string(hash)}
	s.nextUser++
	s.users = append(s.users, u)
	return u, s.persistLocked()
}

// Authenticate checks email/password.
func (s *Store) Authenticate(email, password string) (model.User, error) {
	s.mu.Lock()
	var found *model.User
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, strings.TrimSpace(email)) {
			u := s.users[i]
			found = &u
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		return model.User{}, ErrUnknownUser
	}
	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
		return model.User{}, ErrBadCredentials
	}
	return *found, nil
}

// List returns userID's todos in creation order.
func (s *Store) List(userID int) []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Todo, 0)
	for _, t := range s.todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// Create adds a todo owned by userID.
func (s *Store) Create(userID int, text string) (model.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return model.Todo{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.Todo{ID: s.nextTodo, Todo: text, UserID: userID}
	s.nextTodo++
	s.todos = append(s.todos, t)
	return t, s.persistLocked()
}

// Update replaces text and completed flag of a todo owned by userID.
func (s *Store) Update(userID, id int, text string, completed bool) (model.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return model.Todo{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.todos {
		if s.todos[i].ID == id && s.todos[i].UserID == userID {
			s.todos[i].Todo = text
			s.todos[i].IsCompleted = completed
			return s.todos[i], s.persistLocked()
		}
	}
	return model.Todo{}, ErrNotFound
}

// Delete removes a todo owned by userID.
func (s *Store) Delete(userID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.todos {
		if s.todos[i].ID == id && s.todos[i].UserID == userID {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return s.persistLocked()
		}
	}
	return ErrNotFound
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	return jsonstore.Save(s.path, &jsonstore.Snapshot{
		NextUserID: s.nextUser,
		NextTodoID: s.nextTodo,
		Users:      s.users,
		Todos:      s.todos,
	})
}
