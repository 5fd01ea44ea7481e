package publish

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskpad/internal/model"
)

type WriteOptions struct {
	HTML      bool
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteProject writes pv to <toDir>/<project-id>.md (or .html).
func WriteProject(pv model.ProjectView, toDir string, opt WriteOptions) (WriteResult, error) {
	if strings.TrimSpace(pv.Info.ID) == "" {
		return WriteResult{}, errors.New("missing project id")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	body := RenderProjectMarkdown(pv)
	ext := ".md"
	if opt.HTML {
		body = string(RenderHTML(body))
		ext = ".html"
	}
	outPath := filepath.Join(toDir, pv.Info.ID+ext)
	if err := writeFile(outPath, []byte(body), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("refusing to overwrite %s (use --overwrite)", path)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
