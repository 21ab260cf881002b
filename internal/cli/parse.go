package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bormex/bormex/internal/model"
)

var parseOut string

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a single bulletin entry",
	Long: `Parse reads one raw entry (from a file, stdin with "-", or stdin when
no argument is given) and prints the structured result as JSON.

The input is either plain entry text or a JSON object with "id", "text",
"date" and optional "parsed_details" fields.

Example:
  bormex parse entry.txt
  echo "Ceses/Dimisiones. Adm. Solid.: PEREZ GARCIA JUAN." | bormex parse`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseOut, "output", "o", "", "output path (default: stdout)")
}

// entryInput is the accepted JSON input shape.
type entryInput struct {
	ID            string            `json:"id"`
	Date          string            `json:"date"`
	Text          string            `json:"text"`
	ParsedDetails map[string]string `json:"parsed_details"`
}

func runParse(cmd *cobra.Command, args []string) error {
	var (
		raw    []byte
		source string
		err    error
	)
	if len(args) == 0 || args[0] == "-" {
		source = "stdin"
		raw, err = io.ReadAll(os.Stdin)
	} else {
		source = args[0]
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	entry := entryFromInput(raw, source)
	cfg := loadConfig()
	parser, err := buildParser(cfg)
	if err != nil {
		return err
	}

	result := parser.Parse(entry)
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if parseOut != "" {
		if err := os.WriteFile(parseOut, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Infof("wrote %s", parseOut)
		return nil
	}
	fmt.Println(string(out))
	return nil
}

// entryFromInput accepts either a JSON entry object or plain text.
func entryFromInput(raw []byte, source string) model.Entry {
	trimmed := strings.TrimSpace(string(raw))

	if strings.HasPrefix(trimmed, "{") {
		var in entryInput
		if err := json.Unmarshal([]byte(trimmed), &in); err == nil && in.Text != "" {
			e := model.Entry{
				ID:            in.ID,
				Source:        source,
				Text:          in.Text,
				ParsedDetails: in.ParsedDetails,
			}
			if e.ID == "" {
				e.ID = source
			}
			if in.Date != "" {
				for _, layout := range []string{"2006-01-02", "2.1.2006"} {
					if ts, err := time.Parse(layout, in.Date); err == nil {
						e.Date = ts
						break
					}
				}
			}
			return e
		}
	}

	return model.Entry{ID: source, Source: source, Text: trimmed}
}
