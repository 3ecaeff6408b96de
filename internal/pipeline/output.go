package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/ppiankov/absa/internal/export"
)

// Outputs lists the files written for one result
type Outputs struct {
	CSV      string
	JSON     string
	Markdown string
	LLM      string
}

// Paths returns the written files in write order
func (o Outputs) Paths() []string {
	var out []string
	for _, p := range []string{o.CSV, o.JSON, o.Markdown, o.LLM} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RenderReport writes the CSV export plus the report artifacts enabled in
// the output config. All files share the export base name.
func (p *Pipeline) RenderReport(result *Result, dir string) (Outputs, error) {
	var out Outputs

	csvPath, err := p.Export(result, dir)
	if err != nil {
		return out, err
	}
	out.CSV = csvPath

	base := filepath.Join(dir, export.BaseName(result.Report.Label))

	if p.config.Output.JSON {
		out.JSON = base + ".json"
		if err := p.renderer.RenderJSON(result.Report, out.JSON); err != nil {
			return out, fmt.Errorf("render JSON: %w", err)
		}
	}

	if p.config.Output.Markdown {
		out.Markdown = base + ".md"
		if err := p.renderer.RenderMarkdown(result.Report, out.Markdown); err != nil {
			return out, fmt.Errorf("render Markdown: %w", err)
		}
	}

	if result.Report.LLM != nil && result.Report.LLM.Enabled {
		out.LLM = base + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(result.Report, out.LLM); err != nil {
			return out, fmt.Errorf("render LLM summary: %w", err)
		}
	}

	p.log.Debug().Strs("files", out.Paths()).Msg("report written")

	return out, nil
}
