package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/service"
	"github.com/Veraticus/soko/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLocator struct {
	err   error
	calls int
}

func (f *failingLocator) Locate(context.Context) (model.Coordinate, error) {
	f.calls++
	return model.Coordinate{}, f.err
}

func TestResolver_Success(t *testing.T) {
	want := model.Coordinate{Lat: -4.0435, Lng: 39.6682}
	res := NewResolver(StaticLocator{Coordinate: want}, nil).Resolve(context.Background())

	assert.Equal(t, want, res.Coordinate)
	assert.Empty(t, res.Warning)
	assert.False(t, res.Fallback)
}

func TestResolver_Fallback(t *testing.T) {
	tests := []struct {
		locator     Locator
		name        string
		wantWarning string
	}{
		{name: "permission denied", locator: Denied{}, wantWarning: WarnUnavailable},
		{name: "unsupported", locator: Unsupported{}, wantWarning: WarnUnsupported},
		{name: "nil locator", locator: nil, wantWarning: WarnUnsupported},
		{name: "transport error", locator: &failingLocator{err: errors.New("timeout")}, wantWarning: WarnUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewResolver(tt.locator, nil).Resolve(context.Background())
			assert.Equal(t, Fallback, res.Coordinate)
			assert.Equal(t, tt.wantWarning, res.Warning)
			assert.True(t, res.Fallback)
		})
	}
}

func TestResolver_SingleAttempt(t *testing.T) {
	locator := &failingLocator{err: ErrPermissionDenied}
	NewResolver(locator, nil).Resolve(context.Background())
	assert.Equal(t, 1, locator.calls)
}

func TestResolver_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewResolver(StaticLocator{Coordinate: model.Coordinate{Lat: 1, Lng: 1}}, nil).Resolve(ctx)
	assert.True(t, res.Fallback)
	assert.Equal(t, Fallback, res.Coordinate)
}

func TestResolver_RemembersLastLocation(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	want := model.Coordinate{Lat: 0.5143, Lng: 35.2698}

	r := NewResolver(StaticLocator{Coordinate: want}, store)
	_, ok := r.Last(ctx)
	assert.False(t, ok)

	r.Resolve(ctx)
	got, ok := r.Last(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)

	// A fallback is never stored.
	NewResolver(Denied{}, store).Resolve(ctx)
	got, ok = r.Last(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestResolver_IgnoresCorruptStoredLocation(t *testing.T) {
	store := testutil.SetupTestDBWithValues(t, map[string]string{service.KeyLastLocation: "{not json"})
	_, ok := NewResolver(Unsupported{}, store).Last(context.Background())
	assert.False(t, ok)
}

func TestIPLocator(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    model.Coordinate
		status  int
		wantErr bool
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"status":"success","lat":-0.0917,"lon":34.768}`,
			want:   model.Coordinate{Lat: -0.0917, Lng: 34.768},
		},
		{name: "lookup failure", status: http.StatusOK, body: `{"status":"fail","message":"private range"}`, wantErr: true},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantErr: true},
		{name: "bad json", status: http.StatusOK, body: `{"status":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			got, err := NewIPLocator(server.URL, time.Second).Locate(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDistance(t *testing.T) {
	nairobi := model.Coordinate{Lat: -1.2921, Lng: 36.8219}
	mombasa := model.Coordinate{Lat: -4.0435, Lng: 39.6682}

	assert.InDelta(t, 0.0, Distance(nairobi, nairobi), 1e-9)
	assert.InDelta(t, 440.0, Distance(nairobi, mombasa), 5.0)
	assert.InDelta(t, Distance(nairobi, mombasa), Distance(mombasa, nairobi), 1e-9)
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "850 m away", FormatDistance(0.85))
	assert.Equal(t, "3.2 km away", FormatDistance(3.21))
}

func TestDistanceLabel(t *testing.T) {
	center := model.Coordinate{Lat: -1.2921, Lng: 36.8219}
	assert.Empty(t, DistanceLabel(center, model.Service{Title: "No location"}))

	svc := model.Service{Location: &model.Coordinate{Lat: -1.2921, Lng: 36.8219}}
	assert.Equal(t, "0 m away", DistanceLabel(center, svc))
}
