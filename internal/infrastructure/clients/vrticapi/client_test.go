package vrticapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
	"github.com/euprava/vrtic-dashboard/internal/domain/providers"
	"github.com/euprava/vrtic-dashboard/pkg/config"
	apperrors "github.com/euprava/vrtic-dashboard/pkg/errors"
)

type staticTokens string

func (s staticTokens) Get(ctx context.Context) (string, bool) {
	return string(s), s != ""
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return NewClient(config.UpstreamConfig{FacilityURL: server.URL + "/", AuthURL: server.URL}, nil), &calls
}

func TestListFacilities_QueryAndDecode(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vrtici", r.URL.Path)
		assert.Equal(t, "slobodna_mesta", r.URL.Query().Get("sort"))
		_, _ = io.WriteString(w, `[{"id":"65a1","naziv":"Lane","tip":"privatni","grad":"Novi Sad","opstina":"Liman",
			"max_kapacitet":80,"trenutno_upisano":40,"popunjenost":0.5,"slobodna_mesta":40,"kriticno":false}]`)
	})

	list, err := client.ListFacilities(context.Background(), providers.ListOptions{
		Sort: entities.SortByFreePlaces,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Lane", list[0].Name)
	assert.Equal(t, 40, list[0].FreePlaces())
	require.NotNil(t, list[0].Occupancy)
	assert.Equal(t, 0.5, *list[0].Occupancy)
}

func TestListFacilities_DefaultSortSendsNoQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = io.WriteString(w, `null`)
	})

	list, err := client.ListFacilities(context.Background(), providers.ListOptions{Sort: entities.SortByName})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListFacilities_ShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"object instead of array", `{"error":"x"}`},
		{"string capacity", `[{"naziv":"A","max_kapacitet":"sto"}]`},
		{"item not an object", `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := client.ListFacilities(context.Background(), providers.ListOptions{})
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDecode), "got %v", err)
		})
	}
}

func TestDo_NonSuccessCarriesBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "naziv je obavezan", http.StatusBadRequest)
	})

	err := client.ForSession(staticTokens("tok")).CreateFacility(context.Background(), entities.FacilityInput{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRequestFailed))
	assert.Equal(t, "naziv je obavezan", apperrors.UserMessage(err, "fallback"))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
}

func TestDo_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(config.UpstreamConfig{FacilityURL: url, AuthURL: url}, nil)
	_, err := client.ListFacilities(context.Background(), providers.ListOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTransport))
}

func TestMutations_RequireToken(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	api := client.ForSession(staticTokens(""))
	ctx := context.Background()

	errs := []error{
		api.CreateFacility(ctx, entities.FacilityInput{Name: "A"}),
		api.UpdateFacility(ctx, "1", entities.FacilityInput{Name: "A"}),
		api.DeleteFacility(ctx, "1"),
	}
	_, profileErr := api.Profile(ctx)
	errs = append(errs, profileErr)

	for _, err := range errs {
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthenticated), "got %v", err)
	}
	assert.Zero(t, atomic.LoadInt32(calls), "no request may reach the network")
}

func TestCreateFacility_SendsBearerAndPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"naziv":"Lane","tip":"drzavni","grad":"Beograd","opstina":"Vracar",
			"max_kapacitet":100,"trenutno_upisano":20}`, string(body))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.ForSession(staticTokens("tok")).CreateFacility(context.Background(), entities.FacilityInput{
		Name: "Lane", Type: entities.FacilityTypePublic, City: "Beograd", Municipality: "Vracar",
		MaxCapacity: 100, CurrentEnrolled: 20,
	})
	require.NoError(t, err)
}

func TestUpdateAndDelete_Paths(t *testing.T) {
	var seen []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	api := client.ForSession(staticTokens("tok"))

	require.NoError(t, api.UpdateFacility(context.Background(), "65a1", entities.FacilityInput{}))
	require.NoError(t, api.DeleteFacility(context.Background(), "65a1"))
	assert.Equal(t, []string{"PUT /vrtici/65a1", "DELETE /vrtici/65a1"}, seen)
}

func TestMunicipalityReport(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vrtici/izvestaj/opstina", r.URL.Path)
		_, _ = io.WriteString(w, `[{"opstina":"Vracar","broj_vrtica":2,"ukupan_kapacitet":200,"ukupno_upisano":150,"popunjenost":0.75}]`)
	})

	rows, err := client.MunicipalityReport(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entities.MunicipalityReport{
		Municipality: "Vracar", FacilityCount: 2, TotalCapacity: 200, TotalEnrolled: 150, Occupancy: 0.75,
	}, rows[0])
}

func TestMunicipalityReportPDF(t *testing.T) {
	t.Run("pdf payload", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "pdf", r.URL.Query().Get("format"))
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = io.WriteString(w, "%PDF-1.4\n...")
		})
		doc, err := client.MunicipalityReportPDF(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4\n...", string(doc))
	})

	t.Run("non pdf payload", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `[]`)
		})
		_, err := client.MunicipalityReportPDF(context.Background())
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDecode))
	})
}

func TestLoginAndProfile(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"email":"ana@example.com","password":"tajna"}`, string(body))
			_, _ = io.WriteString(w, `{"access_token":"abc","token_type":"Bearer","expires_in":3600,"email":"ana@example.com","role":"admin"}`)
		case "/auth/profile":
			assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
			_, _ = io.WriteString(w, `{"email":"ana@example.com","role":"admin","created_at":"2025-09-01T10:00:00Z"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	result, err := client.Login(context.Background(), "ana@example.com", "tajna")
	require.NoError(t, err)
	assert.Equal(t, "abc", result.AccessToken)
	assert.Equal(t, entities.RoleAdmin, result.Role)

	profile, err := client.ForSession(staticTokens(result.AccessToken)).Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.Equal(t, 2025, profile.CreatedAt.Year())
}

func TestLogin_MissingTokenIsDecodeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"email":"ana@example.com"}`)
	})

	_, err := client.Login(context.Background(), "ana@example.com", "x")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDecode))
}

func TestRegister_SendsRole(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"a@b.rs","password":"p","role":"sluzbenik"}`, string(body))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.Register(context.Background(), entities.Credentials{Email: "a@b.rs", Password: "p", Role: entities.RoleOfficer})
	require.NoError(t, err)
}

func TestPing(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		_, _ = io.WriteString(w, "ok")
	})
	assert.NoError(t, client.Ping(context.Background()))
}
