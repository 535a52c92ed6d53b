package fixtures

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Buckets groups fixtures by day key. Keys keep their insertion order so the
// encoded object reads oldest to newest.
type Buckets struct {
	keys  []string
	items map[string][]Fixture
}

// NewBuckets returns buckets with every key present and empty.
func NewBuckets(keys ...string) Buckets {
	b := Buckets{items: make(map[string][]Fixture, len(keys))}
	for _, key := range keys {
		b.ensure(key)
	}
	return b
}

func (b *Buckets) ensure(key string) {
	if b.items == nil {
		b.items = make(map[string][]Fixture)
	}
	if _, ok := b.items[key]; !ok {
		b.keys = append(b.keys, key)
		b.items[key] = []Fixture{}
	}
}

// Add appends f to key, creating the bucket when needed.
func (b *Buckets) Add(key string, f Fixture) {
	b.ensure(key)
	b.items[key] = append(b.items[key], f)
}

// Set replaces the contents of key.
func (b *Buckets) Set(key string, list []Fixture) {
	b.ensure(key)
	if list == nil {
		list = []Fixture{}
	}
	b.items[key] = list
}

func (b Buckets) Keys() []string {
	return append([]string(nil), b.keys...)
}

func (b Buckets) Get(key string) []Fixture {
	return b.items[key]
}

func (b Buckets) Has(key string) bool {
	_, ok := b.items[key]
	return ok
}

// Total counts fixtures across all buckets.
func (b Buckets) Total() int {
	total := 0
	for _, list := range b.items {
		total += len(list)
	}
	return total
}

// Counts reports per-bucket sizes.
func (b Buckets) Counts() map[string]int {
	out := make(map[string]int, len(b.keys))
	for _, key := range b.keys {
		out[key] = len(b.items[key])
	}
	return out
}

func (b Buckets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		list, err := json.Marshal(b.items[key])
		if err != nil {
			return nil, fmt.Errorf("encode bucket %s: %w", key, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(list)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (b *Buckets) UnmarshalJSON(data []byte) error {
	*b = Buckets{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("buckets: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("buckets: expected key, got %v", tok)
		}
		var list []Fixture
		if err := dec.Decode(&list); err != nil {
			return fmt.Errorf("buckets: decode %s: %w", key, err)
		}
		b.Set(key, list)
	}
	_, err = dec.Token()
	return err
}

// Snapshot is the persisted categorised result plus its write time in epoch ms.
type Snapshot struct {
	Fixtures    Buckets `json:"fixtures"`
	LastUpdated int64   `json:"lastUpdated"`
}

// UpdatedAt converts LastUpdated to a UTC time.
func (s Snapshot) UpdatedAt() time.Time {
	return time.UnixMilli(s.LastUpdated).UTC()
}

// State describes how a refresh cycle ended.
type State string

const (
	StateRefreshed State = "refreshed"
	StateFresh     State = "fresh"
	StateCached    State = "cached"
)

const (
	MessageRefreshed = "Fixtures updated."
	MessageFresh     = "Data is still fresh."
	MessageCached    = "No fixtures returned upstream; using cached data."
)

// Summary is the outcome reported to the caller of a refresh cycle.
type Summary struct {
	Status      string         `json:"status"`
	State       State          `json:"state"`
	Message     string         `json:"message"`
	Total       int            `json:"total"`
	Fetched     int            `json:"fetched"`
	Counts      map[string]int `json:"counts,omitempty"`
	DateRange   string         `json:"dateRange,omitempty"`
	LastUpdated string         `json:"lastUpdated,omitempty"`
}
