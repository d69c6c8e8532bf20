package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 2*time.Second), server
}

func TestClient_ListMapsRemoteFields(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/productos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"id": 3,
			"nombre": "Audífonos Gamer",
			"descripcion": "Con micrófono",
			"precio": 30000,
			"imagen": "audi1",
			"categoria_nombre": "Audio",
			"stock": 12
		}]`))
	}))
	defer server.Close()

	records, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	p := records[0].ToModel()
	assert.Equal(t, uint(3), p.ID)
	assert.Equal(t, "Audífonos Gamer", p.Name)
	assert.Equal(t, "Con micrófono", p.Description)
	assert.Equal(t, 30000.0, p.Price)
	assert.Equal(t, "audi1", p.ImageKey)
	assert.Equal(t, "Audio", p.Category)
	assert.Equal(t, 12, p.Stock)
}

func TestClient_ListAppliesDefaults(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Sparse record with nulls: every field falls back to a default.
		w.Write([]byte(`[{"id": null, "nombre": null, "precio": null}]`))
	}))
	defer server.Close()

	records, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	p := records[0].ToModel()
	assert.Equal(t, uint(0), p.ID)
	assert.Equal(t, DefaultName, p.Name)
	assert.Equal(t, DefaultDescription, p.Description)
	assert.Equal(t, DefaultCategory, p.Category)
	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, "", p.ImageKey)
	assert.Equal(t, 0, p.Stock)
}

func TestClient_ListCoercesStringPrice(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "nombre": "Mouse", "precio": "1800.00"}]`))
	}))
	defer server.Close()

	records, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1800.0, records[0].ToModel().Price)
}

func TestClient_ListRemoteStatusError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := client.List(context.Background())
	assert.ErrorIs(t, err, ErrRemoteStatus)
}

func TestClient_ListEmptyBody(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := client.List(context.Background())
	assert.ErrorIs(t, err, ErrEmptyBody)
}

func TestClient_NetworkErrorWhenUnreachable(t *testing.T) {
	// Nothing listens on the reserved discard port.
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)

	_, err := client.List(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClient_GetByID(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/productos/5", r.URL.Path)
		w.Write([]byte(`{"id": 5, "nombre": "Play Station 5 Pro", "precio": 380000}`))
	}))
	defer server.Close()

	record, err := client.GetByID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, record.ID)
	assert.Equal(t, 5, *record.ID)
	assert.Equal(t, "Play Station 5 Pro", *record.Name)
}

func TestClient_ListByCategory(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/productos/category/Audio", r.URL.Path)
		w.Write([]byte(`[{"id": 3, "nombre": "Audífonos", "categoria_nombre": "Audio"}]`))
	}))
	defer server.Close()

	records, err := client.ListByCategory(context.Background(), "Audio")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Audio", *records[0].Category)
}

func TestClient_CreateEchoesRecord(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var submitted ProductRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))

		id := 99
		submitted.ID = &id
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(submitted)
	}))
	defer server.Close()

	name := "Nuevo Producto"
	created, err := client.Create(context.Background(), ProductRecord{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 99, *created.ID)
	assert.Equal(t, "Nuevo Producto", *created.Name)
}

func TestClient_CreateEmptyBodyReturnsNil(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	name := "Nuevo Producto"
	created, err := client.Create(context.Background(), ProductRecord{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, created)
}

func TestClient_UpdateAndDelete(t *testing.T) {
	var methods []string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	name := "Mouse"
	require.NoError(t, client.Update(context.Background(), 4, ProductRecord{Name: &name}))
	require.NoError(t, client.Delete(context.Background(), 4))

	assert.Equal(t, []string{"PUT /api/productos/4", "DELETE /api/productos/4"}, methods)
}
