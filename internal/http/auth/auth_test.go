package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/faktur/internal/http/auth"
)

const secret = "rahasia"

func TestMintThenParse(t *testing.T) {
	token, err := auth.Mint(secret, "kasir", time.Now(), time.Hour)
	require.NoError(t, err)

	claims, err := auth.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "kasir", claims.Subject)

	_, err = auth.Parse("lain", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := auth.Mint(secret, "kasir", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	_, err = auth.Parse(secret, token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	valid, err := auth.Mint(secret, "kasir", time.Now(), time.Hour)
	require.NoError(t, err)

	type args struct {
		secret string
		header string
	}

	type testCase struct {
		name string
		args args
		want int
	}

	tests := []testCase{
		{name: "disabled", args: args{secret: ""}, want: http.StatusOK},
		{name: "missing", args: args{secret: secret}, want: http.StatusUnauthorized},
		{name: "wrong scheme", args: args{secret: secret, header: "Basic abc"}, want: http.StatusUnauthorized},
		{name: "garbage", args: args{secret: secret, header: "Bearer abc"}, want: http.StatusUnauthorized},
		{name: "valid", args: args{secret: secret, header: "Bearer " + valid}, want: http.StatusOK},
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.args.header != "" {
				req.Header.Set("Authorization", tt.args.header)
			}

			rec := httptest.NewRecorder()
			auth.Middleware(tt.args.secret)(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
