// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kraklabs/seqdiag/pkg/sequence"
)

// JSON renders the aliased document as indented JSON.
type JSON struct {
	opts Options
}

// Extension implements Renderer.
func (r *JSON) Extension() string { return ".json" }

// Render implements Renderer.
func (r *JSON) Render(d *sequence.Diagram) ([]byte, error) {
	doc, err := layout(d, r.opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("JSON encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}
