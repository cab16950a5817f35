package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BerylCAtieno/persona-generator/internal/exporter"
	"github.com/BerylCAtieno/persona-generator/internal/generator"
	"github.com/BerylCAtieno/persona-generator/internal/questionnaire"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the "persona-gen" command: parse a questionnaire
// CSV, generate personas with Gemini, write the persona CSV.
func NewRootCmd() *cobra.Command {
	var (
		output      string
		apiKey      string
		model       string
		sectionCol  string
		questionCol string
		answerCol   string
	)

	root := &cobra.Command{
		Use:          "persona-gen <questionnaire.csv>",
		Short:        "Generate user personas from a questionnaire CSV using Gemini",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("input file not found: %s", input)
			}
			if output == "" {
				output = defaultOutputPath(input, time.Now())
			}
			if apiKey == "" {
				apiKey = os.Getenv("GEMINI_API_KEY")
			}
			if model == "" {
				model = os.Getenv("GEMINI_MODEL")
			}

			parser := &questionnaire.Parser{
				SectionCol:  sectionCol,
				QuestionCol: questionCol,
				AnswerCol:   answerCol,
			}
			return run(cmd.Context(), parser, input, output, apiKey, model)
		},
	}

	root.Flags().StringVarP(&output, "output", "o", "", "output CSV path (default: personas_<input>_<timestamp>.csv next to the input)")
	root.Flags().StringVar(&apiKey, "api-key", "", "Gemini API key (default: GEMINI_API_KEY env)")
	root.Flags().StringVar(&model, "model", "", "Gemini model name (default: GEMINI_MODEL env or "+generator.DefaultModel+")")
	root.Flags().StringVar(&sectionCol, "section-col", "", "name of the section column (default: Section)")
	root.Flags().StringVar(&questionCol, "question-col", "", "name of the question column (default: Question)")
	root.Flags().StringVar(&answerCol, "answer-col", "", "name of the answer column (default: Answer)")

	return root
}

func run(ctx context.Context, parser *questionnaire.Parser, input, output, apiKey, model string) error {
	log.Printf("parsing questionnaire: %s", input)
	ds, err := parser.ParseFile(input)
	if err != nil {
		return err
	}
	log.Printf("found %d Q&A pairs (%d persona-related)", len(ds.AllQA), len(ds.PersonaQA))

	client, err := generator.New(ctx, apiKey, model)
	if err != nil {
		return err
	}
	defer client.Close()

	log.Printf("generating personas...")
	personas, err := client.GeneratePersonas(ctx, ds)
	if err != nil {
		log.Printf("%s", generator.Hint(err))
		return fmt.Errorf("generating personas: %w", err)
	}
	if len(personas) == 0 {
		return fmt.Errorf("no personas could be extracted from the model response; try again")
	}
	log.Printf("generated %d persona(s)", len(personas))

	if err := exporter.ExportFile(output, personas, ds.ClientInfo); err != nil {
		return err
	}

	fmt.Printf("Personas saved to %s\n", output)
	return nil
}

// defaultOutputPath derives personas_<stem>_<timestamp>.csv in the input
// file's directory.
func defaultOutputPath(input string, now time.Time) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name := fmt.Sprintf("personas_%s_%s.csv", stem, now.Format("20060102_150405"))
	return filepath.Join(filepath.Dir(input), name)
}
