package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bormex/bormex/internal/borme"
	"github.com/bormex/bormex/internal/classify"
	"github.com/bormex/bormex/internal/identity"
	"github.com/bormex/bormex/internal/model"
	"github.com/bormex/bormex/internal/pipeline"
)

var (
	officerCompany string
	officerTimeout time.Duration
)

var officerCmd = &cobra.Command{
	Use:   "officer <name>",
	Short: "Resolve a person's positions at a company",
	Long: `Officer looks a person up within a company's bulletin history: spelling
variants are grouped into one identity and dated events are folded into
current and historical positions.

Without --company it only searches the registry's person index and
lists the matches.

Example:
  bormex officer "PEREZ GARCIA JUAN" --company "ACME SL"
  bormex officer "GOSLIN BRUCE"`,
	Args: cobra.ExactArgs(1),
	RunE: runOfficer,
}

func init() {
	rootCmd.AddCommand(officerCmd)
	officerCmd.Flags().StringVar(&officerCompany, "company", "", "company to resolve positions in")
	officerCmd.Flags().DurationVar(&officerTimeout, "timeout", 2*time.Minute, "overall timeout")
}

func runOfficer(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), officerTimeout)
	defer cancel()

	cfg := loadConfig()
	client := borme.New(cfg.API, log)

	if officerCompany == "" {
		if classify.LooksLikeCompanyName(name) {
			log.Infof("%q could also be a company name; see 'bormex company'", name)
		}
		results, err := client.SearchPersons(ctx, name)
		if err != nil {
			return fmt.Errorf("search persons: %w", err)
		}
		if len(results) == 0 {
			return fmt.Errorf("no person matches %q", name)
		}
		return printJSON(results)
	}

	parser, err := buildParser(cfg)
	if err != nil {
		return err
	}

	entries, canonical, err := companyEntries(ctx, cfg, nil, officerCompany)
	if err != nil {
		return err
	}
	rec := pipeline.BuildCompany(parser.Vocab(), canonical, entries)

	var matched []model.OfficerRecord
	for _, or := range rec.OfficerRecords {
		if identity.SamePerson(name, or.CanonicalName) {
			matched = append(matched, or)
		}
	}
	if len(matched) == 0 {
		return fmt.Errorf("no officer matching %q at %s", name, canonical)
	}
	return printJSON(struct {
		Company  string                `json:"company"`
		Officers []model.OfficerRecord `json:"officers"`
	}{Company: canonical, Officers: matched})
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
