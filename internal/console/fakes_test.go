package console

import (
	"context"
	"io"
	"sync"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

type call struct {
	Method string
	ID     int
	Item   any
}

// fakeEndpoint is an in-memory collection that records every request.
type fakeEndpoint[T Keyed] struct {
	mu    sync.Mutex
	items []T
	calls []call

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeEndpoint[T]) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeEndpoint[T]) List(context.Context, *backend.Credentials) ([]T, error) {
	f.record(call{Method: "GET"})
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]T{}, f.items...), nil
}

func (f *fakeEndpoint[T]) Create(_ context.Context, _ *backend.Credentials, item T) error {
	f.record(call{Method: "POST", Item: item})
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	f.items = append(f.items, item)
	f.mu.Unlock()
	return nil
}

func (f *fakeEndpoint[T]) Update(_ context.Context, _ *backend.Credentials, id int, item T) error {
	f.record(call{Method: "PUT", ID: id, Item: item})
	return f.updateErr
}

func (f *fakeEndpoint[T]) Delete(_ context.Context, _ *backend.Credentials, id int) error {
	f.record(call{Method: "DELETE", ID: id})
	return f.deleteErr
}

func (f *fakeEndpoint[T]) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Method)
	}
	return out
}

type fakeUploader struct {
	url       string
	err       error
	gotName   string
	gotType   string
	gotBody   []byte
	callCount int
}

func (f *fakeUploader) UploadContent(_ context.Context, _ *backend.Credentials, filename, mediaType string, src io.Reader) (string, error) {
	f.callCount++
	f.gotName = filename
	f.gotType = mediaType
	f.gotBody, _ = io.ReadAll(src)
	return f.url, f.err
}

type fakeStatus struct {
	err    error
	id     int
	status model.DeviceStatus
}

func (f *fakeStatus) SetDeviceStatus(_ context.Context, _ *backend.Credentials, id int, status model.DeviceStatus) error {
	f.id, f.status = id, status
	return f.err
}

var creds = backend.Bearer("tok")
