package transport

import (
	"net/url"
	"strconv"
	"strings"
)

// Params is an ordered query string. Keys are encoded in insertion order so
// list calls always start with offset=..&limit=.. .
type Params struct {
	keys   []string
	values []string
}

// NewParams returns an empty parameter list.
func NewParams() *Params {
	return &Params{}
}

// Page starts a parameter list with offset and limit.
func Page(offset, limit int) *Params {
	return NewParams().SetInt("offset", offset).SetInt("limit", limit)
}

// Set always adds key, even when value is empty.
func (p *Params) Set(key, value string) *Params {
	for i, k := range p.keys {
		if k == key {
			p.values[i] = value
			return p
		}
	}
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return p
}

// SetInt adds an integer parameter.
func (p *Params) SetInt(key string, value int) *Params {
	return p.Set(key, strconv.Itoa(value))
}

// Opt adds key only when value is set. Unset filters never reach the wire.
func (p *Params) Opt(key, value string) *Params {
	if value == "" {
		return p
	}
	return p.Set(key, value)
}

// Get returns the value for key.
func (p *Params) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	for i, k := range p.keys {
		if k == key {
			return p.values[i], true
		}
	}
	return "", false
}

// Len is the number of parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Encode renders the query string without the leading "?".
func (p *Params) Encode() string {
	if p == nil || len(p.keys) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.values[i]))
	}
	return sb.String()
}
