package event_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/billing-core/internal/domain"
	"github.com/jhoicas/billing-core/internal/domain/event"
)

func TestFromParams_EventosConocidos(t *testing.T) {
	id := uuid.New()
	userID := "u-9"

	tests := []struct {
		name   string
		params map[string]any
		want   event.Event
	}{
		{"Clients.delete", map[string]any{"client_id": "c-1", "user_id": "u-1"}, event.ClientDeleted{ClientID: "c-1", UserID: "u-1"}},
		{"Contacts.delete", map[string]any{"contact_id": 7, "client_id": float64(3), "user_id": &userID}, event.ContactDeleted{ContactID: "7", ClientID: "3", UserID: "u-9"}},
		{"Users.delete", map[string]any{"user_id": int64(42)}, event.UserDeleted{UserID: "42"}},
		{"Services.delete", map[string]any{"service_id": id}, event.ServiceDeleted{ServiceID: id.String()}},
		{"Transactions.delete", map[string]any{"transaction_id": "t-1"}, event.TransactionDeleted{TransactionID: "t-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := event.FromParams(tt.name, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, event.Kind(tt.name), got.Kind())
		})
	}
}

func TestFromParams_ParametrosAusentesQuedanVacios(t *testing.T) {
	var nilUser *string
	got, err := event.FromParams("Contacts.delete", map[string]any{"contact_id": "c-1", "user_id": nilUser})
	require.NoError(t, err)
	assert.Equal(t, event.ContactDeleted{ContactID: "c-1"}, got)

	got, err = event.FromParams("Users.delete", nil)
	require.NoError(t, err)
	assert.Equal(t, event.UserDeleted{}, got)
}

func TestFromParams_NombreDesconocido(t *testing.T) {
	_, err := event.FromParams("Invoices.delete", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownEvent)
}
