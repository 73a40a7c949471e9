// Package console holds the state and behaviour of the console's screens, independent of how
// they are rendered. Each resource screen is a Controller configured for one entity shape.
package console

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
)

// Keyed is implemented by every backend entity.
type Keyed interface {
	Key() int
}

// Endpoint is the collection surface a screen works against.
type Endpoint[T any] interface {
	List(ctx context.Context, creds *backend.Credentials) ([]T, error)
	Create(ctx context.Context, creds *backend.Credentials, item T) error
	Update(ctx context.Context, creds *backend.Credentials, id int, item T) error
	Delete(ctx context.Context, creds *backend.Credentials, id int) error
}

// Messages are the banners and prompts of one screen.
type Messages struct {
	LoadError     string
	SaveError     string
	DeleteError   string
	Created       string
	Updated       string
	Deleted       string
	ConfirmDelete string
}

// Config turns the generic controller into a concrete screen.
type Config[T Keyed, F any] struct {
	Name     string
	Messages Messages
	NewForm  func() F
	FormFrom func(T) F
	// Payload builds the record to send. A *ValidationError stops the submit before any request.
	Payload func(F) (T, error)
}

// ValidationError is a client-side rejection shown verbatim in the error banner.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// Controller mirrors one resource screen: the fetched collection, the modal form and its banners.
type Controller[T Keyed, F any] struct {
	cfg Config[T, F]
	api Endpoint[T]

	Items     []T
	ModalOpen bool
	Editing   *T
	Form      F
	Error     string
	Success   string
	// Expired is set once the backend answered 401 to any call.
	Expired bool
}

func NewController[T Keyed, F any](api Endpoint[T], cfg Config[T, F]) *Controller[T, F] {
	return &Controller[T, F]{
		cfg:   cfg,
		api:   api,
		Items: []T{},
		Form:  cfg.NewForm(),
	}
}

func (c *Controller[T, F]) Name() string { return c.cfg.Name }

func (c *Controller[T, F]) Messages() Messages { return c.cfg.Messages }

// Load fetches the whole collection. On failure the previous items stay and the error banner is set.
func (c *Controller[T, F]) Load(ctx context.Context, creds *backend.Credentials) bool {
	items, err := c.api.List(ctx, creds)
	if err != nil {
		log.Error().Err(err).Str("screen", c.cfg.Name).Msg("could not load collection")
		c.noteAuth(err)
		c.Error = backend.Detail(err, c.cfg.Messages.LoadError)
		return false
	}
	c.Items = items
	return true
}

// Find looks an item up in the loaded collection.
func (c *Controller[T, F]) Find(id int) (T, bool) {
	for _, item := range c.Items {
		if item.Key() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// OpenCreate opens the modal with a fresh form.
func (c *Controller[T, F]) OpenCreate() {
	c.Editing = nil
	c.Form = c.cfg.NewForm()
	c.ModalOpen = true
}

// OpenEdit opens the modal pre-filled from item.
func (c *Controller[T, F]) OpenEdit(item T) {
	c.Editing = &item
	c.Form = c.cfg.FormFrom(item)
	c.ModalOpen = true
}

// EditByID opens the modal for a loaded item.
func (c *Controller[T, F]) EditByID(id int) bool {
	item, ok := c.Find(id)
	if !ok {
		return false
	}
	c.OpenEdit(item)
	return true
}

func (c *Controller[T, F]) CloseModal() {
	c.ModalOpen = false
	c.Editing = nil
	c.Form = c.cfg.NewForm()
}

// Submit creates or fully updates the record in the form. On success the modal closes and the
// collection is refetched; on failure the modal stays open with the form untouched.
func (c *Controller[T, F]) Submit(ctx context.Context, creds *backend.Credentials) bool {
	c.Error, c.Success = "", ""

	item, err := c.cfg.Payload(c.Form)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.Error = verr.Message
		} else {
			c.Error = c.cfg.Messages.SaveError
		}
		return false
	}

	success := c.cfg.Messages.Created
	if c.Editing != nil {
		id := (*c.Editing).Key()
		err = c.api.Update(ctx, creds, id, item)
		success = c.cfg.Messages.Updated
	} else {
		err = c.api.Create(ctx, creds, item)
	}
	if err != nil {
		log.Error().Err(err).Str("screen", c.cfg.Name).Msg("could not save")
		c.noteAuth(err)
		c.Error = backend.Detail(err, c.cfg.Messages.SaveError)
		return false
	}

	c.Success = success
	c.CloseModal()
	c.Load(ctx, creds)
	return true
}

// Delete asks confirm first. A declined confirmation issues no request and changes nothing.
func (c *Controller[T, F]) Delete(ctx context.Context, creds *backend.Credentials, id int, confirm Confirmer) bool {
	if !confirm.Confirm(c.cfg.Messages.ConfirmDelete) {
		return false
	}
	c.Error, c.Success = "", ""

	if err := c.api.Delete(ctx, creds, id); err != nil {
		log.Error().Err(err).Str("screen", c.cfg.Name).Int("id", id).Msg("could not delete")
		c.noteAuth(err)
		c.Error = backend.Detail(err, c.cfg.Messages.DeleteError)
		return false
	}

	c.Success = c.cfg.Messages.Deleted
	c.Load(ctx, creds)
	return true
}

func (c *Controller[T, F]) noteAuth(err error) {
	if backend.IsUnauthorized(err) {
		c.Expired = true
	}
}

// Confirmer gates destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Confirmed is a fixed answer, as given by the confirmation form.
type Confirmed bool

func (c Confirmed) Confirm(string) bool { return bool(c) }

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }
