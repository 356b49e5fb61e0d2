package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agroclimatic/bulletins/pkg/bulletin"
	"github.com/agroclimatic/bulletins/pkg/logger"
)

const modePages = "pages"

type renderOptions struct {
	input             string
	cards             string
	data              string
	out               string
	mode              string
	locale            string
	section           int
	page              int
	forceGlobalHeader bool
}

func newRenderCmd(log logger.Logger) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a bulletin document to HTML",
		Long: `Render a bulletin document (JSON or YAML) to a standalone HTML page.

Modes carousel, scroll and grid render the editor views; pages renders every
page one after the other, as handed to the screenshot pipeline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, cmd.OutOrStdout(), log)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "document file, .json or .yaml (required)")
	cmd.Flags().StringVar(&opts.cards, "cards", "", "cards file, a list of cards in JSON or YAML")
	cmd.Flags().StringVar(&opts.data, "data", "", "liquid data file applied to text values")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", string(bulletin.ViewCarousel), "carousel, scroll, grid or pages")
	cmd.Flags().StringVar(&opts.locale, "locale", bulletin.DefaultLocale, "locale for dates")
	cmd.Flags().IntVar(&opts.section, "section", 0, "section index for carousel mode")
	cmd.Flags().IntVar(&opts.page, "page", 0, "page index for carousel mode")
	cmd.Flags().BoolVar(&opts.forceGlobalHeader, "force-global-header", false, "always use the template header and footer")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runRender(opts *renderOptions, stdout io.Writer, log logger.Logger) error {
	raw, err := readStructured(opts.input)
	if err != nil {
		return err
	}
	doc, err := bulletin.ParseDocument(raw)
	if err != nil {
		return fmt.Errorf("invalid document %s: %w", opts.input, err)
	}

	var cards []bulletin.Card
	if opts.cards != "" {
		if err := readInto(opts.cards, &cards); err != nil {
			return err
		}
	}

	var data map[string]interface{}
	if opts.data != "" {
		if err := readInto(opts.data, &data); err != nil {
			return err
		}
	}

	renderer := bulletin.NewRenderer(bulletin.Options{
		ForceGlobalHeader: opts.forceGlobalHeader,
		Cards:             bulletin.NewCardSet(cards),
		Locale:            opts.locale,
		TemplateData:      data,
	})

	title := doc.Master.TemplateName
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(opts.input), filepath.Ext(opts.input))
	}

	var pages []*bulletin.Node
	if opts.mode == modePages {
		pages = renderer.RenderAllPages(doc)
	} else {
		mode, err := bulletin.ParseViewMode(opts.mode)
		if err != nil {
			return err
		}
		nav := bulletin.Navigator{SectionIndex: opts.section, PageIndex: opts.page}.Clamp(doc)
		pages = []*bulletin.Node{renderer.RenderView(doc, mode, nav)}
	}

	html := bulletin.HTMLDocument(title, pages...)

	if opts.out == "" {
		_, err = io.WriteString(stdout, html)
		return err
	}
	if err := os.WriteFile(opts.out, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.out, err)
	}

	log.WithFields(map[string]interface{}{
		"out":      opts.out,
		"mode":     opts.mode,
		"sections": bulletin.SectionCount(doc),
	}).Info("Bulletin rendered")
	return nil
}

// readStructured returns the file as JSON, converting YAML files
func readStructured(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		converted, err := yamlToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return converted, nil
	}
	return raw, nil
}

func readInto(path string, v interface{}) error {
	raw, err := readStructured(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid %s: %w", path, err)
	}
	return nil
}
