// middleware/jwks.go - Verifying-key-set fetch and cache
package middleware

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"eyehunt/utils"
)

// Key sets change rarely; one refetch per process per hour is the contract.
var jwksTTL = time.Hour

var jwksCache = utils.NewTTLCache[map[string]crypto.PublicKey]()

var jwksHTTPClient = &http.Client{Timeout: 10 * time.Second}

type jwksDocument struct {
	Keys []jwksKey `json:"keys"`
}

type jwksKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// getVerifyingKeys returns the kid -> public key map for url, fetching at
// most once per TTL window.
func getVerifyingKeys(url string) (map[string]crypto.PublicKey, error) {
	if keys, ok := jwksCache.Get(url); ok {
		return keys, nil
	}

	resp, err := jwksHTTPClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch JWKS: unexpected status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode JWKS: %w", err)
	}

	keys := make(map[string]crypto.PublicKey, len(doc.Keys))
	for _, jwk := range doc.Keys {
		key, err := jwk.publicKey()
		if err != nil {
			// Skip key types we cannot verify with
			continue
		}
		keys[jwk.Kid] = key
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("JWKS at %s contains no usable keys", url)
	}

	jwksCache.Set(url, keys, jwksTTL)
	return keys, nil
}

func (k jwksKey) publicKey() (crypto.PublicKey, error) {
	switch k.Kty {
	case "EC":
		return k.ecdsaKey()
	case "RSA":
		return k.rsaKey()
	default:
		return nil, fmt.Errorf("unsupported key type %q", k.Kty)
	}
}

func (k jwksKey) ecdsaKey() (*ecdsa.PublicKey, error) {
	var curve elliptic.Curve
	switch k.Crv {
	case "P-256":
		curve = elliptic.P256()
	case "P-384":
		curve = elliptic.P384()
	case "P-521":
		curve = elliptic.P521()
	default:
		return nil, fmt.Errorf("unsupported curve %q", k.Crv)
	}

	x, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil {
		return nil, err
	}
	y, err := base64.RawURLEncoding.DecodeString(k.Y)
	if err != nil {
		return nil, err
	}

	return &ecdsa.PublicKey{
		Curve: curve,
		X:     new(big.Int).SetBytes(x),
		Y:     new(big.Int).SetBytes(y),
	}, nil
}

func (k jwksKey) rsaKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: int(new(big.Int).SetBytes(e).Int64()),
	}, nil
}
