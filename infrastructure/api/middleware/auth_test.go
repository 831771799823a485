package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, method, key string) int {
	req := httptest.NewRequest(method, "/", nil)
	if key != "" {
		req.Header.Set(APIKeyHeader, key)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code
}

func TestWriteProtect_SafeMethodsPassWithoutKey(t *testing.T) {
	handler := WriteProtect(NewAuthConfigWithKeys([]string{"secret"}))(okHandler())

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		if code := serve(handler, method, ""); code != http.StatusOK {
			t.Errorf("%s without key: status = %d, want %d", method, code, http.StatusOK)
		}
	}
}

func TestWriteProtect_MutatingMethods(t *testing.T) {
	handler := WriteProtect(NewAuthConfigWithKeys([]string{"secret", "other"}))(okHandler())

	tests := []struct {
		name string
		key  string
		want int
	}{
		{"no key", "", http.StatusUnauthorized},
		{"wrong key", "wrong", http.StatusUnauthorized},
		{"prefix of key", "sec", http.StatusUnauthorized},
		{"first key", "secret", http.StatusOK},
		{"second key", "other", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
				if code := serve(handler, method, tt.key); code != tt.want {
					t.Errorf("%s: status = %d, want %d", method, code, tt.want)
				}
			}
		})
	}
}

func TestWriteProtect_DisabledWithoutKeys(t *testing.T) {
	for _, keys := range [][]string{nil, {""}} {
		config := NewAuthConfigWithKeys(keys)
		if config.Enabled() {
			t.Fatalf("keys %q enabled protection", keys)
		}
		handler := WriteProtect(config)(okHandler())
		if code := serve(handler, http.MethodPost, ""); code != http.StatusOK {
			t.Errorf("POST with auth disabled: status = %d, want %d", code, http.StatusOK)
		}
	}
}
