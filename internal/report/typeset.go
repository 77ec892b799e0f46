package report

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Extensions of the intermediate and final documents.
const (
	IntermediateExt = ".rst"
	DocumentExt     = ".pdf"
)

// Typesetter converts an intermediate reStructuredText file into the final
// document in the given directory. It is an external collaborator; tests
// substitute a fake.
type Typesetter interface {
	Typeset(ctx context.Context, rstPath, outDir string) error
}

// PDFPipeline typesets through the docutils/LaTeX toolchain: rst2latex
// produces a .tex next to the source, pdflatex produces the .pdf in the
// output directory. Both leave aux/log byproducts that the generator's
// cleanup removes after the batch.
type PDFPipeline struct {
	RST2LaTeX string
	PDFLaTeX  string
}

const latexPreamble = `\usepackage[letterpaper, margin=1in]{geometry}`

func (p *PDFPipeline) rst2latex() string {
	if p.RST2LaTeX != "" {
		return p.RST2LaTeX
	}
	return "rst2latex.py"
}

func (p *PDFPipeline) pdflatex() string {
	if p.PDFLaTeX != "" {
		return p.PDFLaTeX
	}
	return "pdflatex"
}

func (p *PDFPipeline) Typeset(ctx context.Context, rstPath, outDir string) error {
	texPath := strings.TrimSuffix(rstPath, IntermediateExt) + ".tex"

	cmd := exec.CommandContext(ctx, p.rst2latex(), "--latex-preamble="+latexPreamble, rstPath, texPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("rst2latex %s: %w: %s", rstPath, err, strings.TrimSpace(string(out)))
	}

	cmd = exec.CommandContext(ctx, p.pdflatex(), "-interaction=nonstopmode", "-output-directory", outDir, texPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pdflatex %s: %w: %s", texPath, err, strings.TrimSpace(string(out)))
	}
	return nil
}
