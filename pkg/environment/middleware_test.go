package environment_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rosterkit/pkg/environment"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	for _, env := range []environment.Environment{
		environment.Development,
		environment.Staging,
		environment.Production,
	} {
		env := env
		t.Run(string(env), func(t *testing.T) {
			t.Parallel()

			var seen string
			handler := environment.Middleware(env)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = environment.FromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, string(env), seen)
		})
	}
}
