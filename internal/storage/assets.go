/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// AssetPath returns the on-disk location of an asset's original pixels.
func AssetPath(ph *ProjectHandle, assetID string) string {
	return filepath.Join(ph.Root, AssetsDirName, assetID+".png")
}

// SaveAsset writes an asset's original pixels as PNG under the project's
// assets folder. Asset ids are generated identifiers, never user paths.
func SaveAsset(ph *ProjectHandle, assetID string, img image.Image) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	if strings.TrimSpace(assetID) == "" {
		return errors.New("asset id is required")
	}
	dir := filepath.Join(ph.Root, AssetsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure assets dir: %w", err)
	}
	path := AssetPath(ph, assetID)
	temp := path + ".tmp"
	f, err := os.OpenFile(temp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create asset: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(temp)
		return fmt.Errorf("encode asset: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close asset: %w", err)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace asset: %w", err)
	}
	return nil
}

// LoadAsset reads an asset's original pixels back from the project.
func LoadAsset(ph *ProjectHandle, assetID string) (image.Image, error) {
	if ph == nil {
		return nil, errors.New("nil ProjectHandle")
	}
	f, err := os.Open(AssetPath(ph, assetID))
	if err != nil {
		return nil, fmt.Errorf("open asset %s: %w", assetID, err)
	}
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", assetID, err)
	}
	return img, nil
}

// ListAssets returns the ids of all stored assets.
func ListAssets(ph *ProjectHandle) ([]string, error) {
	if ph == nil {
		return nil, errors.New("nil ProjectHandle")
	}
	ents, err := os.ReadDir(filepath.Join(ph.Root, AssetsDirName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read assets dir: %w", err)
	}
	var ids []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasSuffix(name, ".png") {
			ids = append(ids, strings.TrimSuffix(name, ".png"))
		}
	}
	return ids, nil
}
