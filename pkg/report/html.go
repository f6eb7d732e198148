package report

import (
	"encoding/base64"
	"html/template"
	"os"
	"time"

	"github.com/devicelab-dev/flowshot/pkg/core"
)

// htmlTemplate is the single-file gallery. Images are inlined as data
// URIs so the report stays viewable after the store is cleaned.
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; background: #f6f7f9; color: #1c1e21; }
  h1 { font-size: 1.4rem; }
  .meta { color: #666; margin-bottom: 1.5rem; }
  .entry { background: #fff; border: 1px solid #ddd; border-radius: 8px; padding: 1rem; margin-bottom: 1rem; }
  .entry h2 { font-size: 1rem; margin: 0 0 .5rem 0; }
  .badge { display: inline-block; padding: .15rem .5rem; border-radius: 4px; font-size: .75rem; color: #fff; margin-left: .5rem; }
  .badge.matched { background: #2da44e; }
  .badge.new-reference { background: #0969da; }
  .badge.mismatch { background: #cf222e; }
  .badge.skipped { background: #6e7781; }
  .badge.unavailable { background: #bf8700; }
  .images { display: flex; gap: 1rem; flex-wrap: wrap; }
  .images figure { margin: 0; }
  .images figcaption { font-size: .75rem; color: #666; text-align: center; }
  .images img { max-width: 240px; border: 1px solid #ccc; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">{{.Generated}} &middot; {{len .Entries}} snapshots</div>
{{range .Entries}}
<div class="entry">
  <h2>{{.Name}}<span class="badge {{.Status}}">{{.Status}}</span></h2>
  <div class="images">
    {{if .Reference}}<figure><img src="{{.Reference}}" alt="reference"><figcaption>reference</figcaption></figure>{{end}}
    {{if .Actual}}<figure><img src="{{.Actual}}" alt="actual"><figcaption>actual</figcaption></figure>{{end}}
    {{if .Diff}}<figure><img src="{{.Diff}}" alt="diff"><figcaption>diff</figcaption></figure>{{end}}
  </div>
</div>
{{end}}
</body>
</html>
`

type htmlEntry struct {
	Name      string
	Status    core.SnapshotStatus
	Reference template.URL
	Actual    template.URL
	Diff      template.URL
}

type htmlPage struct {
	Title     string
	Generated string
	Entries   []htmlEntry
}

// WriteHTML renders the gallery for entries into path.
func WriteHTML(path, title string, entries []Entry) error {
	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return err
	}

	page := htmlPage{
		Title:     title,
		Generated: time.Now().Format(time.RFC1123),
	}
	for _, e := range entries {
		page.Entries = append(page.Entries, htmlEntry{
			Name:      e.Name,
			Status:    e.Status,
			Reference: inlineImage(e.Reference),
			Actual:    inlineImage(e.Actual),
			Diff:      inlineImage(e.Diff),
		})
	}

	f, err := os.Create(path) //#nosec G304 -- caller-chosen output path
	if err != nil {
		return err
	}
	defer f.Close()
	return tmpl.Execute(f, page)
}

// inlineImage reads a PNG and returns it as a data URI, or an empty URL
// when the file is missing or unreadable.
func inlineImage(path string) template.URL {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path) //#nosec G304 -- store-derived path
	if err != nil {
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
}
