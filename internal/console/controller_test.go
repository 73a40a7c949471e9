package console

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

func TestLoadKeepsItemsOnFailure(t *testing.T) {
	ep := &fakeEndpoint[model.Agency]{items: []model.Agency{{ID: 1, Name: "Centro"}}}
	ctl := NewAgencies(ep)
	require.True(t, ctl.Load(context.Background(), creds))
	require.Len(t, ctl.Items, 1)

	ep.listErr = errors.New("connection refused")
	assert.False(t, ctl.Load(context.Background(), creds))
	assert.Len(t, ctl.Items, 1)
	assert.Equal(t, "Erro ao carregar agências", ctl.Error)
}

func TestCreateThenRefetch(t *testing.T) {
	ep := &fakeEndpoint[model.Agency]{}
	ctl := NewAgencies(ep)
	ctx := context.Background()

	ctl.OpenCreate()
	assert.True(t, ctl.ModalOpen)
	assert.Equal(t, model.OrientationHorizontal, ctl.Form.Orientation)
	assert.True(t, ctl.Form.HibernationEnabled)
	assert.Equal(t, "18:00", ctl.Form.HibernationStart)
	assert.Equal(t, "08:00", ctl.Form.HibernationEnd)

	ctl.Form.Name = "Centro"
	ctl.Form.IPAddress = "10.0.0.5"
	require.True(t, ctl.Submit(ctx, creds))

	assert.Equal(t, []string{"POST", "GET"}, ep.methods())
	assert.False(t, ctl.ModalOpen)
	assert.Nil(t, ctl.Editing)
	assert.Equal(t, "Agência criada com sucesso!", ctl.Success)
	assert.Empty(t, ctl.Error)
	require.Len(t, ctl.Items, 1)
	assert.Equal(t, "Centro", ctl.Items[0].Name)
}

func TestEditSendsFullRecordToItemID(t *testing.T) {
	ep := &fakeEndpoint[model.Agency]{items: []model.Agency{{
		ID: 7, Name: "Norte", IPAddress: "10.0.0.7", Orientation: model.OrientationVertical,
		HibernationEnabled: false, HibernationStart: "20:00", HibernationEnd: "06:00",
	}}}
	ctl := NewAgencies(ep)
	ctx := context.Background()
	require.True(t, ctl.Load(ctx, creds))

	require.True(t, ctl.EditByID(7))
	assert.Equal(t, "Norte", ctl.Form.Name)
	ctl.Form.Name = "Norte II"
	require.True(t, ctl.Submit(ctx, creds))

	require.Len(t, ep.calls, 3)
	put := ep.calls[1]
	assert.Equal(t, "PUT", put.Method)
	assert.Equal(t, 7, put.ID)
	sent := put.Item.(model.Agency)
	assert.Equal(t, "Norte II", sent.Name)
	assert.Equal(t, model.OrientationVertical, sent.Orientation)
	assert.Equal(t, "20:00", sent.HibernationStart)
	assert.Equal(t, "Agência atualizada com sucesso!", ctl.Success)
}

func TestSubmitFailureKeepsModalAndForm(t *testing.T) {
	ep := &fakeEndpoint[model.Agency]{createErr: &backend.APIError{Status: 400, Detail: "Nome já existe"}}
	ctl := NewAgencies(ep)
	ctl.OpenCreate()
	ctl.Form.Name = "Centro"

	assert.False(t, ctl.Submit(context.Background(), creds))
	assert.True(t, ctl.ModalOpen)
	assert.Equal(t, "Centro", ctl.Form.Name)
	assert.Equal(t, "Nome já existe", ctl.Error)
	assert.Equal(t, []string{"POST"}, ep.methods())

	ep.createErr = errors.New("dial tcp: refused")
	assert.False(t, ctl.Submit(context.Background(), creds))
	assert.Equal(t, "Erro ao salvar agência", ctl.Error)
}

func TestValidationStopsBeforeRequest(t *testing.T) {
	ep := &fakeEndpoint[model.Content]{}
	ctl := NewContents(ep)
	ctl.OpenCreate()
	ctl.Form.Title = "Promo"
	ctl.Form.URL = "https://exemplo.com"

	for _, d := range []int{0, 4, 3601} {
		ctl.Form.Duration = d
		assert.False(t, ctl.Submit(context.Background(), creds))
		assert.Equal(t, "A duração deve estar entre 5 e 3600 segundos", ctl.Error)
	}
	assert.Empty(t, ep.methods())

	ctl.Form.Duration = model.MaxContentDuration
	assert.True(t, ctl.Submit(context.Background(), creds))
}

func TestDeleteConfirmation(t *testing.T) {
	ep := &fakeEndpoint[model.Device]{items: []model.Device{{ID: 3, Name: "Pi"}}}
	ctl := NewDevices(ep)
	ctx := context.Background()
	require.True(t, ctl.Load(ctx, creds))

	var prompt string
	declined := ConfirmFunc(func(p string) bool { prompt = p; return false })
	assert.False(t, ctl.Delete(ctx, creds, 3, declined))
	assert.Equal(t, "Tem certeza que deseja excluir este dispositivo?", prompt)
	assert.Equal(t, []string{"GET"}, ep.methods())
	assert.Len(t, ctl.Items, 1)
	assert.Empty(t, ctl.Success)

	assert.True(t, ctl.Delete(ctx, creds, 3, Confirmed(true)))
	assert.Equal(t, []string{"GET", "DELETE", "GET"}, ep.methods())
	assert.Equal(t, 3, ep.calls[1].ID)
	assert.Equal(t, "Dispositivo excluído com sucesso!", ctl.Success)
}

func TestDeleteFailure(t *testing.T) {
	ep := &fakeEndpoint[model.Schedule]{deleteErr: &backend.APIError{Status: 500}}
	ctl := NewSchedules(ep)
	assert.False(t, ctl.Delete(context.Background(), creds, 1, Confirmed(true)))
	assert.Equal(t, "Erro ao excluir agendamento", ctl.Error)
	assert.Equal(t, []string{"DELETE"}, ep.methods())
}

func TestCloseModalResetsForm(t *testing.T) {
	ctl := NewContents(&fakeEndpoint[model.Content]{})
	ctl.OpenEdit(model.Content{ID: 2, Title: "Vídeo", Type: model.ContentVideo, Duration: 90})
	require.NotNil(t, ctl.Editing)
	ctl.CloseModal()

	assert.False(t, ctl.ModalOpen)
	assert.Nil(t, ctl.Editing)
	assert.Equal(t, ContentForm{Type: model.ContentLink, Duration: DefaultDuration}, ctl.Form)
}

func TestEditByIDUnknown(t *testing.T) {
	ctl := NewAgencies(&fakeEndpoint[model.Agency]{})
	assert.False(t, ctl.EditByID(99))
	assert.False(t, ctl.ModalOpen)
}

func TestUnauthorizedMarksExpired(t *testing.T) {
	ep := &fakeEndpoint[model.Agency]{listErr: errors.New("connection refused")}
	ctl := NewAgencies(ep)
	ctx := context.Background()

	ctl.Load(ctx, creds)
	assert.False(t, ctl.Expired, "transport failures keep the session")

	ep.listErr = &backend.APIError{Status: http.StatusUnauthorized, Detail: "Could not validate credentials"}
	ctl.Load(ctx, creds)
	assert.True(t, ctl.Expired)

	del := NewAgencies(&fakeEndpoint[model.Agency]{deleteErr: &backend.APIError{Status: http.StatusUnauthorized}})
	assert.False(t, del.Delete(ctx, creds, 1, Confirmed(true)))
	assert.True(t, del.Expired)
}
