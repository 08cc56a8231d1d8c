// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"fmt"
	"strconv"
	"time"
)

// GetString returns the scalar string stored under key. The boolean is
// false if key is absent.
func GetString(s SetStore, key string) (string, bool, error) {
	values, err := s.Members(key)
	if err != nil || len(values) == 0 {
		return "", false, err
	}
	return values[0], true, nil
}

// PutString stores v as the only value under key.
func PutString(s SetStore, key, v string) error {
	return s.Replace(key, []string{v})
}

// GetInt returns the scalar integer stored under key. The boolean is
// false if key is absent.
func GetInt(s SetStore, key string) (int, bool, error) {
	v, ok, err := GetString(s, key)
	if !ok || err != nil {
		return 0, false, err
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("asynchttp/store: %s is not an integer: %w", key, err)
	}
	return i, true, nil
}

// PutInt stores i as the only value under key.
func PutInt(s SetStore, key string, i int) error {
	return PutString(s, key, strconv.Itoa(i))
}

// GetDuration returns the scalar duration stored under key. The boolean
// is false if key is absent.
func GetDuration(s SetStore, key string) (time.Duration, bool, error) {
	v, ok, err := GetString(s, key)
	if !ok || err != nil {
		return 0, false, err
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false, fmt.Errorf("asynchttp/store: %s is not a duration: %w", key, err)
	}
	return d, true, nil
}

// PutDuration stores d as the only value under key.
func PutDuration(s SetStore, key string, d time.Duration) error {
	return PutString(s, key, d.String())
}
