package docxhtml

import (
	"strings"
	"sync"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

var (
	mdOnce      sync.Once
	mdConverter *converter.Converter
)

func markdownConverter() *converter.Converter {
	mdOnce.Do(func() {
		mdConverter = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		)
	})
	return mdConverter
}

// toMarkdown converts a rendered fragment to Markdown.
func toMarkdown(fragment string) (string, error) {
	md, err := markdownConverter().ConvertString(fragment)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
