package naver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func TestSignRequest(t *testing.T) {
	secret := "test-secret"
	timestamp := "1700000000000"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + ".GET./keywordstool"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	got := signRequest(timestamp, "GET", "/keywordstool", secret)
	if got != want {
		t.Errorf("signRequest() = %q, want %q", got, want)
	}
}

func TestAuthHeaders(t *testing.T) {
	headers := authHeaders("GET", "/keywordstool", "key", "secret", "12345")

	for _, name := range []string{"X-Timestamp", "X-API-KEY", "X-Customer", "X-Signature"} {
		if headers[name] == "" {
			t.Errorf("missing header %s", name)
		}
	}
	if headers["X-API-KEY"] != "key" {
		t.Errorf("X-API-KEY = %q", headers["X-API-KEY"])
	}
	if headers["X-Customer"] != "12345" {
		t.Errorf("X-Customer = %q", headers["X-Customer"])
	}

	// Signature must verify against the advertised timestamp.
	want := signRequest(headers["X-Timestamp"], "GET", "/keywordstool", "secret")
	if headers["X-Signature"] != want {
		t.Error("signature does not verify against timestamp")
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>용인</b> 닭국수 맛집", "용인 닭국수 맛집"},
		{"평범한 제목", "평범한 제목"},
		{"공백 &amp; 엔티티 &quot;테스트&quot;", `공백 & 엔티티 "테스트"`},
		{"  <i>여백</i>  ", "여백"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripMarkup(tt.in); got != tt.want {
			t.Errorf("StripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
