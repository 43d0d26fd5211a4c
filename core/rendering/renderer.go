/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package rendering turns view models into complete HTML pages.
package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"io"

	"github.com/google/safehtml/template"

	"github.com/google/tabula/core/views"
)

//go:embed templates/*
var templateFS embed.FS

const (
	tablePage   = "table.html"
	landingPage = "landing.html"
)

// TableRenderer renders table and landing pages. It is safe for concurrent
// use once created.
type TableRenderer struct {
	pages map[string]*template.Template
}

// NewTableRenderer parses the embedded page templates.
func NewTableRenderer() (*TableRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	r := &TableRenderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{tablePage, landingPage} {
		tmpl, err := template.New(name).ParseFS(trustedFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render renders a TableViewModel to the provided writer
func (r *TableRenderer) Render(w io.Writer, vm views.TableViewModel) error {
	return r.execute(w, tablePage, vm)
}

// RenderLanding renders a LandingViewModel to the provided writer
func (r *TableRenderer) RenderLanding(w io.Writer, vm views.LandingViewModel) error {
	return r.execute(w, landingPage, vm)
}

// execute renders into a buffer first so a failing template never leaves a
// truncated page on w.
func (r *TableRenderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.pages[name].Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
