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

package views

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/google/safehtml/uncheckedconversions"

	"github.com/google/tabula/core/cells"
)

//go:embed templates/cells.html
var cellTemplateFS embed.FS

var cellTemplates = template.Must(template.New("cells.html").ParseFS(
	template.TrustedFSFromEmbed(cellTemplateFS), "templates/cells.html"))

// optionData is one entry of a choice control.
type optionData struct {
	Index    int
	Label    string
	Selected bool
}

// cellData is the template input of a single cell.
type cellData struct {
	ID       safehtml.Identifier
	Text     string
	Current  string
	Disabled bool
	Options  []optionData
	Src      string
	Chart    string
	HTML     safehtml.HTML
	Embed    safehtml.TrustedResourceURL
}

// RenderCell renders the inner markup of c according to its kind. A nil
// cell or an unknown kind renders the invalid marker.
func RenderCell(c *cells.Cell) (safehtml.HTML, error) {
	if c == nil {
		return renderTemplate("invalid", cellData{Text: cells.InvalidText})
	}
	data := cellData{
		ID:       cellIdentifier(c),
		Current:  c.Current(),
		Disabled: c.Disabled,
	}
	name := c.Kind.String()
	switch c.Kind {
	case cells.KindText:
		data.Text = c.Data
	case cells.KindInput, cells.KindInputEditable, cells.KindTextarea:
	case cells.KindSelect, cells.KindMultiSelect, cells.KindRadio, cells.KindCheckbox:
		data.Options = make([]optionData, len(c.Options))
		for i, label := range c.Options {
			data.Options[i] = optionData{Index: i, Label: label, Selected: c.IsSelected(i)}
		}
	case cells.KindImage, cells.KindVideo:
		data.Src = c.Data
	case cells.KindChart:
		chart, err := chartJSON(c.Chart)
		if err != nil {
			return safehtml.HTML{}, fmt.Errorf("%s: %w", c.ID(), err)
		}
		data.Chart = chart
	case cells.KindEmbeddedHTML:
		// Embedded markup is authored by the host that builds the table,
		// never by page visitors.
		data.HTML = uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(c.Data)
	case cells.KindYouTube:
		src, err := youTubeEmbedURL(c.Data)
		if err != nil {
			return safehtml.HTML{}, fmt.Errorf("%s: %w", c.ID(), err)
		}
		data.Embed = src
	default:
		name = "invalid"
		data.Text = cells.InvalidText
	}
	return renderTemplate(name, data)
}

// cellIdentifier spells c.ID() as an identifier usable in id and name
// attributes.
func cellIdentifier(c *cells.Cell) safehtml.Identifier {
	return safehtml.IdentifierFromConstantPrefix("cell", fmt.Sprintf("%d-%d", c.Row, c.Col))
}

func renderTemplate(name string, data cellData) (safehtml.HTML, error) {
	tmpl := cellTemplates.Lookup(name)
	if tmpl == nil {
		return safehtml.HTML{}, fmt.Errorf("no cell template %q", name)
	}
	return tmpl.ExecuteToHTML(data)
}

func chartJSON(spec *cells.ChartSpec) (string, error) {
	if spec == nil {
		spec = &cells.ChartSpec{Type: "bar"}
	}
	b, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("failed to encode chart: %w", err)
	}
	return string(b), nil
}

// youTubeEmbedURL accepts a bare video ID or a watch/share URL.
func youTubeEmbedURL(data string) (safehtml.TrustedResourceURL, error) {
	id := youTubeID(data)
	if id == "" {
		return safehtml.TrustedResourceURL{}, fmt.Errorf("empty youtube video id")
	}
	return safehtml.TrustedResourceURLFormatFromConstant(
		"https://www.youtube.com/embed/%{id}", map[string]string{"id": id})
}

func youTubeID(data string) string {
	s := strings.TrimSpace(data)
	for _, prefix := range []string{"https://www.youtube.com/watch?v=", "https://youtu.be/", "https://www.youtube.com/embed/"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			s = rest
			break
		}
	}
	if i := strings.IndexAny(s, "?&#/"); i >= 0 {
		s = s[:i]
	}
	return s
}
