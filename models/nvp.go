package models

import (
	"fmt"
	"net/url"
	"strings"
)

// NVP is an insertion ordered set of Classic API name-value pairs. Keys are
// unique; setting an existing key replaces its value in place.
type NVP struct {
	keys   []string
	values map[string]string
}

// NewNVP returns an empty NVP.
func NewNVP() *NVP {
	return &NVP{values: make(map[string]string)}
}

// Set stores value under key, keeping the position of an existing key.
func (n *NVP) Set(key, value string) {
	if _, ok := n.values[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.values[key] = value
}

// Append stores value under key and moves key to the end of the ordering.
func (n *NVP) Append(key, value string) {
	n.Del(key)
	n.Set(key, value)
}

// Get returns the value stored under key and whether it was present.
func (n *NVP) Get(key string) (string, bool) {
	v, ok := n.values[key]
	return v, ok
}

// Value returns the value stored under key or an empty string.
func (n *NVP) Value(key string) string {
	return n.values[key]
}

// Has reports whether key is present.
func (n *NVP) Has(key string) bool {
	_, ok := n.values[key]
	return ok
}

// Del removes key.
func (n *NVP) Del(key string) {
	if _, ok := n.values[key]; !ok {
		return
	}
	delete(n.values, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (n *NVP) Keys() []string {
	keys := make([]string, len(n.keys))
	copy(keys, n.keys)
	return keys
}

// Len returns the number of pairs.
func (n *NVP) Len() int {
	return len(n.keys)
}

// Map returns a copy of the pairs as a plain map.
func (n *NVP) Map() map[string]string {
	m := make(map[string]string, len(n.values))
	for k, v := range n.values {
		m[k] = v
	}
	return m
}

// Encode serializes the pairs as application/x-www-form-urlencoded in
// insertion order.
func (n *NVP) Encode() string {
	var sb strings.Builder
	for i, k := range n.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(n.values[k]))
	}
	return sb.String()
}

// ParseNVP decodes a URL encoded Classic API response body, keeping the
// order pairs appear in.
func ParseNVP(body string) (*NVP, error) {
	n := NewNVP()
	for _, pair := range strings.Split(strings.TrimSpace(body), "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("error decoding key [%s]: [%w]", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("error decoding value for [%s]: [%w]", key, err)
		}
		n.Set(key, value)
	}
	return n, nil
}
