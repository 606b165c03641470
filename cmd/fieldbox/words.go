package main

import (
	"github.com/spf13/cobra"

	"github.com/gardar/fieldbox/pkg/tokens"
)

func newWordsCmd(a *app) *cobra.Command {
	var (
		src    source
		output string
		text   bool
	)

	cmd := &cobra.Command{
		Use:   "words",
		Short: "Dump the word tokens of a document as JSON",
		Long: `Prints the pages in the same JSON layout resolve --words reads, so
an extraction can be inspected, edited and fed back in.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := loadPages(src, a.cfg.PDF)
			if err != nil {
				return err
			}
			a.log.Info("fieldbox.words.loaded", "pages", len(pages), "words_per_page", tokens.WordsPerPage(pages))

			if text {
				_, err := cmd.OutOrStdout().Write([]byte(tokens.DocumentText(pages) + "\n"))
				return err
			}
			if pages == nil {
				pages = []tokens.Page{}
			}
			return writeJSON(cmd.OutOrStdout(), output, pages)
		},
	}

	f := cmd.Flags()
	f.StringVar(&src.words, "words", "", "JSON word dump to normalize")
	f.StringVar(&src.hocr, "hocr", "", "hOCR file to read words from")
	f.StringVar(&src.pdf, "pdf", "", "Text-based PDF to read words from")
	f.StringVarP(&output, "output", "o", "", "Write JSON here instead of stdout")
	f.BoolVar(&text, "text", false, "Print the document text instead of tokens")
	cmd.MarkFlagsMutuallyExclusive("words", "hocr", "pdf")

	return cmd
}
