package naver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

// signRequest produces the search-ads API signature for one request:
// base64(HMAC-SHA256(secret, "{timestamp}.{method}.{uri}")).
func signRequest(timestamp, method, uri, secretKey string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	fmt.Fprintf(mac, "%s.%s.%s", timestamp, method, uri)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// authHeaders builds the signed header set the ads API requires.
func authHeaders(method, uri, apiKey, secretKey, customerID string) map[string]string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return map[string]string{
		"X-Timestamp": timestamp,
		"X-API-KEY":   apiKey,
		"X-Customer":  customerID,
		"X-Signature": signRequest(timestamp, method, uri, secretKey),
	}
}
