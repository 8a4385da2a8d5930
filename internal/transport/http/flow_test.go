package httptransport_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"safeher/internal/alert"
	contacthandler "safeher/internal/contact/handler"
	contactservice "safeher/internal/contact/service"
	contactstore "safeher/internal/contact/store"
	locationhandler "safeher/internal/location/handler"
	locationservice "safeher/internal/location/service"
	locationstore "safeher/internal/location/store"
	"safeher/internal/platform/metrics"
	"safeher/internal/risk"
	routinehandler "safeher/internal/routine/handler"
	routineservice "safeher/internal/routine/service"
	routinestore "safeher/internal/routine/store"
	soshandler "safeher/internal/sos/handler"
	sosservice "safeher/internal/sos/service"
	sosstore "safeher/internal/sos/store"
	httptransport "safeher/internal/transport/http"
	userhandler "safeher/internal/user/handler"
	"safeher/internal/user/secrets"
	userservice "safeher/internal/user/service"
	userstore "safeher/internal/user/store"
	"safeher/pkg/testutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	alerts []alert.Alert
}

func (p *recordingPublisher) Publish(_ context.Context, a alert.Alert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, a)
	return nil
}

func (p *recordingPublisher) kinds() []alert.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]alert.Kind, 0, len(p.alerts))
	for _, a := range p.alerts {
		out = append(out, a.Kind)
	}
	return out
}

// Monday 10:00 UTC, inside office hours and outside the night window.
var mondayMorning = time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)

func newApp(t *testing.T, pub alert.Publisher) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	routines, err := routineservice.New(routinestore.NewInMemory(),
		routineservice.WithLogger(logger), routineservice.WithLocation(time.UTC))
	require.NoError(t, err)
	locations, err := locationservice.New(locationstore.NewInMemoryHistory(), risk.NewClassifier(risk.DefaultConfig()),
		locationservice.WithLogger(logger),
		locationservice.WithRoutineChecker(routines),
		locationservice.WithAlertPublisher(pub),
		locationservice.WithLocation(time.UTC),
	)
	require.NoError(t, err)
	contacts, err := contactservice.New(contactstore.NewInMemory(), contactservice.WithLogger(logger))
	require.NoError(t, err)
	sos, err := sosservice.New(sosstore.NewInMemory(), pub, sosservice.WithLogger(logger))
	require.NoError(t, err)
	users, err := userservice.New(userstore.NewInMemory(),
		userservice.WithLogger(logger), userservice.WithHasher(secrets.NewHasher(bcrypt.MinCost)))
	require.NoError(t, err)

	m := metrics.NewWith(prometheus.NewRegistry())
	return httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         logger,
		Metrics:        m,
		RequestTimeout: 5 * time.Second,
		Health:         httptransport.NewHealthHandler(nil, nil, m, logger),
		Clock:          func() time.Time { return mondayMorning },
	},
		userhandler.New(users, logger),
		routinehandler.New(routines, logger),
		locationhandler.New(locations, logger),
		contacthandler.New(contacts, logger),
		soshandler.New(sos, logger),
	)
}

func TestSafetyFlow(t *testing.T) {
	pub := &recordingPublisher{}
	app := newApp(t, pub)

	testutil.Given(t, "a registered user", func(t *testing.T) {
		rr := testutil.Do(app, testutil.NewJSONRequest(t, http.MethodPost, "/register", map[string]string{
			"username": "asha_k",
			"password": "correct horse",
			"email":    "asha@example.com",
			"pin":      "4821",
		}))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		rr = testutil.Do(app, testutil.NewJSONRequest(t, http.MethodGet, "/user/asha_k", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		user := testutil.DecodeJSON[userhandler.UserResponse](t, rr)
		assert.Equal(t, "asha@example.com", user.Email)
	})

	testutil.Given(t, "an office routine and an emergency contact", func(t *testing.T) {
		rr := testutil.Do(app, testutil.NewJSONRequest(t, http.MethodPost, "/routine", map[string]string{
			"username": "asha_k",
			"title":    "Office",
			"timeFrom": "09:00",
			"timeTo":   "17:00",
			"location": "12.9716,77.5946",
		}))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		rr = testutil.Do(app, testutil.NewJSONRequest(t, http.MethodPost, "/contact", map[string]string{
			"username": "asha_k",
			"name":     "Meera Rao",
			"contact":  "+91 98765 43210",
		}))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	})

	testutil.When(t, "a position at the office is analyzed", func(t *testing.T) {
		rr := testutil.Do(app, testutil.NewJSONRequest(t, http.MethodPost, "/analyze", map[string]any{
			"username": "asha_k", "lat": 12.9716, "lng": 77.5946,
		}))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		resp := testutil.DecodeJSON[locationhandler.AnalyzeResponse](t, rr)

		testutil.Then(t, "the user is on schedule and nothing is published", func(t *testing.T) {
			require.NotNil(t, resp.Routine)
			assert.Equal(t, "on_schedule", resp.Routine.Status)
			assert.Equal(t, "Medium", resp.RiskLevel)
			assert.Empty(t, pub.kinds())
		})
	})

	testutil.When(t, "a position far from the office is analyzed", func(t *testing.T) {
		rr := testutil.Do(app, testutil.NewJSONRequest(t, http.MethodPost, "/analyze", map[string]any{
			"username": "asha_k", "lat": 13.6, "lng": 77.6,
		}))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		resp := testutil.DecodeJSON[locationhandler.AnalyzeResponse](t, rr)

		testutil.Then(t, "a deviation alert is published", func(t *testing.T) {
			require.NotNil(t, resp.Routine)
			assert.Equal(t, "deviating", resp.Routine.Status)
			assert.Equal(t, "Low", resp.RiskLevel)
			assert.Equal(t, []alert.Kind{alert.KindDeviation}, pub.kinds())
		})
	})

	testutil.When(t, "the user triggers SOS", func(t *testing.T) {
		rr := testutil.Do(app, testutil.NewJSONRequest(t, http.MethodPost, "/sos", map[string]any{
			"username": "asha_k", "name": "Asha", "lat": 13.6, "lng": 77.6,
		}))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		testutil.Then(t, "an sos alert follows the deviation alert", func(t *testing.T) {
			assert.Equal(t, []alert.Kind{alert.KindDeviation, alert.KindSOS}, pub.kinds())
		})
	})

	testutil.Then(t, "history endpoints reflect the session", func(t *testing.T) {
		rr := testutil.Do(app, testutil.NewJSONRequest(t, http.MethodGet, "/locations/asha_k/latest", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		latest := testutil.DecodeJSON[locationhandler.LocationResponse](t, rr)
		assert.Equal(t, 13.6, latest.Lat)

		rr = testutil.Do(app, testutil.NewJSONRequest(t, http.MethodGet, "/contacts/asha_k", nil))
		contacts := testutil.DecodeJSON[contacthandler.ContactListResponse](t, rr)
		assert.Equal(t, 1, contacts.Count)

		rr = testutil.Do(app, testutil.NewJSONRequest(t, http.MethodGet, "/sos/asha_k", nil))
		events := testutil.DecodeJSON[soshandler.HistoryResponse](t, rr)
		assert.Equal(t, 1, events.Count)
	})

	testutil.Then(t, "unknown users get typed errors", func(t *testing.T) {
		rr := testutil.Do(app, testutil.NewJSONRequest(t, http.MethodGet, "/locations/nobody_here/latest", nil))
		testutil.AssertError(t, rr, http.StatusNotFound, "not_found")
	})
}
