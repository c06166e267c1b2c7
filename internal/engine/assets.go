/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package engine

import (
	"image"
	"sync"
)

// AssetStore holds decoded image pixels keyed by asset id. For each asset it
// keeps the original (ingestion-downsampled) pixels, which filters are always
// re-evaluated against, and the current filter-adjusted pixels handed to the
// renderer. It implements render.Assets.
type AssetStore struct {
	mu   sync.RWMutex
	orig map[string]image.Image
	cur  map[string]image.Image
}

func NewAssetStore() *AssetStore {
	return &AssetStore{
		orig: make(map[string]image.Image),
		cur:  make(map[string]image.Image),
	}
}

// Register stores an asset's original pixels. The current pixels start out
// identical.
func (s *AssetStore) Register(id string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orig[id] = img
	s.cur[id] = img
}

// Original returns the unadjusted source pixels.
func (s *AssetStore) Original(id string) (image.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.orig[id]
	return img, ok
}

// SetCurrent replaces the filter-adjusted pixels.
func (s *AssetStore) SetCurrent(id string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orig[id]; ok {
		s.cur[id] = img
	}
}

// Image returns the current pixels for rendering.
func (s *AssetStore) Image(id string) (image.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.cur[id]
	return img, ok
}

// Remove drops an asset.
func (s *AssetStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orig, id)
	delete(s.cur, id)
}

// IDs lists all registered asset ids.
func (s *AssetStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.orig))
	for id := range s.orig {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of registered assets.
func (s *AssetStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orig)
}
