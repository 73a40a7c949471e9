package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

// Resource is the uniform collection surface: GET/POST on the path, PUT/DELETE on path/{id}.
type Resource[T any] struct {
	client *Client
	path   string
}

func NewResource[T any](c *Client, path string) Resource[T] {
	return Resource[T]{client: c, path: path}
}

func (r Resource[T]) Path() string { return r.path }

// List returns the whole collection in server order.
func (r Resource[T]) List(ctx context.Context, creds *Credentials) ([]T, error) {
	var out []T
	if err := r.client.doJSON(ctx, creds, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r Resource[T]) Create(ctx context.Context, creds *Credentials, item T) error {
	return r.client.doJSON(ctx, creds, http.MethodPost, r.path, item, nil)
}

// Update replaces the full record; there is no partial patch.
func (r Resource[T]) Update(ctx context.Context, creds *Credentials, id int, item T) error {
	return r.client.doJSON(ctx, creds, http.MethodPut, r.itemPath(id), item, nil)
}

func (r Resource[T]) Delete(ctx context.Context, creds *Credentials, id int) error {
	return r.client.doJSON(ctx, creds, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r Resource[T]) itemPath(id int) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

func (c *Client) Agencies() Resource[model.Agency] {
	return NewResource[model.Agency](c, "/agencies")
}

func (c *Client) Contents() Resource[model.Content] {
	return NewResource[model.Content](c, "/contents")
}

func (c *Client) Schedules() Resource[model.Schedule] {
	return NewResource[model.Schedule](c, "/schedules")
}

func (c *Client) Devices() Resource[model.Device] {
	return NewResource[model.Device](c, "/devices")
}

type statusRequest struct {
	Status model.DeviceStatus `json:"status"`
}

// SetDeviceStatus is the narrow status transition, separate from the full device update.
func (c *Client) SetDeviceStatus(ctx context.Context, creds *Credentials, id int, status model.DeviceStatus) error {
	return c.doJSON(ctx, creds, http.MethodPut, fmt.Sprintf("/devices/%d/status", id), statusRequest{Status: status}, nil)
}
