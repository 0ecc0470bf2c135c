package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/cli/config"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
	"github.com/m-mizutani/releasegpt/pkg/render"
	"github.com/m-mizutani/releasegpt/pkg/usecase"
	"github.com/tidwall/jsonc"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func cmdRender() *cli.Command {
	var (
		storageCfg   config.Storage
		templateFile string
		templateID   string
		contextFile  string
		outputFile   string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "template",
			Aliases:     []string{"t"},
			Usage:       "Template file containing {{TOKEN}} markers",
			Destination: &templateFile,
		},
		&cli.StringFlag{
			Name:        "template-id",
			Usage:       "ID of a stored or built-in template (e.g. classic, concise)",
			Destination: &templateID,
		},
		&cli.StringFlag{
			Name:        "context",
			Aliases:     []string{"c"},
			Usage:       "Release context file (JSON, JSONC or YAML)",
			Required:    true,
			Destination: &contextFile,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write the rendered note to a file instead of stdout",
			Destination: &outputFile,
		},
	}
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Name:    "render",
		Aliases: []string{"r"},
		Usage:   "Render a release note template against a context file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if (templateFile == "") == (templateID == "") {
				return goerr.New("exactly one of --template or --template-id is required")
			}

			tpl, err := loadTemplate(ctx, &storageCfg, templateFile, templateID)
			if err != nil {
				return err
			}

			rc, err := loadContext(contextFile)
			if err != nil {
				return err
			}

			ctxlog.From(ctx).Debug("Rendering template",
				"template", tpl.ID,
				"tokens", render.UsedTokens(tpl.Content),
			)
			out := render.Render(tpl, rc)

			if outputFile != "" {
				if err := os.WriteFile(outputFile, []byte(out), 0600); err != nil {
					return goerr.Wrap(err, "failed to write output", goerr.V("path", outputFile))
				}
				return nil
			}

			return writeRendered(os.Stdout, out, !color.NoColor)
		},
	}
}

func loadTemplate(ctx context.Context, storageCfg *config.Storage, path, id string) (*model.Template, error) {
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read template", goerr.V("path", path))
		}
		return &model.Template{ID: filepath.Base(path), Name: filepath.Base(path), Content: string(raw)}, nil
	}

	repo, err := storageCfg.New()
	if err != nil {
		return nil, err
	}
	templates, err := usecase.NewTemplate(repo, nil)
	if err != nil {
		return nil, err
	}
	return templates.GetTemplate(ctx, id)
}

// noteDocument is a generated note with its project given under "project"
type noteDocument struct {
	model.GeneratedNote `yaml:",inline"`
	Project             *model.Project `json:"project" yaml:"project"`
}

// loadContext reads a ReleaseContext from JSON, JSONC or YAML. A generated
// note (an object with "sections") is accepted too.
func loadContext(path string) (*model.ReleaseContext, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read context", goerr.V("path", path))
	}

	var (
		isNote bool
		decode func(v any) error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		// YAML scalars such as dates and version numbers are decoded as
		// their source text into string fields
		var doc yaml.Node
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, goerr.Wrap(err, "failed to parse YAML context", goerr.V("path", path))
		}
		if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
			return nil, goerr.New("context must be an object", goerr.V("path", path))
		}
		root := doc.Content[0]
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "sections" {
				isNote = true
			}
		}
		decode = root.Decode

	default:
		data := jsonc.ToJSON(raw)
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(data, &keys); err != nil {
			return nil, goerr.Wrap(err, "context must be an object", goerr.V("path", path))
		}
		_, isNote = keys["sections"]
		decode = func(v any) error { return json.Unmarshal(data, v) }
	}

	if isNote {
		var doc noteDocument
		if err := decode(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode generated note", goerr.V("path", path))
		}
		return render.ContextFromNote(&doc.GeneratedNote, doc.Project), nil
	}

	var rc model.ReleaseContext
	if err := decode(&rc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode release context", goerr.V("path", path))
	}
	return &rc, nil
}

// writeRendered prints the note, highlighting Markdown headings when colored
func writeRendered(w io.Writer, text string, colored bool) error {
	if !colored {
		_, err := io.WriteString(w, text)
		return err
	}

	heading := color.New(color.FgCyan, color.Bold)
	heading.EnableColor()

	bw := bufio.NewWriter(w)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			_, _ = heading.Fprint(bw, line)
		} else {
			_, _ = bw.WriteString(line)
		}
		if i < len(lines)-1 {
			_ = bw.WriteByte('\n')
		}
	}
	if err := bw.Flush(); err != nil {
		return goerr.Wrap(err, "failed to write rendered note")
	}
	return nil
}
