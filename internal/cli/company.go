package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bormex/bormex/internal/borme"
	"github.com/bormex/bormex/internal/llm"
	"github.com/bormex/bormex/internal/model"
	"github.com/bormex/bormex/internal/pipeline"
	"github.com/bormex/bormex/internal/store"
)

var (
	companyTimeout   time.Duration
	companySave      bool
	companyOffline   bool
	companySummarize bool
	companyLLMModel  string
)

var companyCmd = &cobra.Command{
	Use:   "company <name>",
	Short: "Build the aggregated record for a company",
	Long: `Company searches the registry for a company, fetches all its bulletin
entries, parses them and prints the aggregated record: officers with
resolved temporal state, corporate events and derived status.

Example:
  bormex company "ACME SL"
  bormex company "ACME SL" --save
  bormex company "ACME SL" --offline
  bormex company "ACME SL" --summarize`,
	Args: cobra.ExactArgs(1),
	RunE: runCompany,
}

func init() {
	rootCmd.AddCommand(companyCmd)
	companyCmd.Flags().DurationVar(&companyTimeout, "timeout", 2*time.Minute, "overall timeout")
	companyCmd.Flags().BoolVar(&companySave, "save", false, "persist entries and the snapshot to the local store")
	companyCmd.Flags().BoolVar(&companyOffline, "offline", false, "use only locally stored entries, no network")
	companyCmd.Flags().BoolVar(&companySummarize, "summarize", false, "append an LLM prose summary (requires llm config)")
	companyCmd.Flags().StringVar(&companyLLMModel, "llm-model", "", "override the configured llm model")
}

func runCompany(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), companyTimeout)
	defer cancel()

	cfg := loadConfig()
	parser, err := buildParser(cfg)
	if err != nil {
		return err
	}

	var st *store.Store
	if companySave || companyOffline || cfg.Store.Enabled {
		path, err := storePath(cfg)
		if err != nil {
			return err
		}
		st, err = store.Open(path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
	}

	entries, canonical, err := companyEntries(ctx, cfg, st, name)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no entries found for %q", name)
	}
	log.Infof("aggregating %d entries for %s", len(entries), canonical)

	rec := pipeline.BuildCompany(parser.Vocab(), canonical, entries)

	if st != nil && companySave {
		if err := st.SaveEntries(ctx, canonical, entries); err != nil {
			return fmt.Errorf("save entries: %w", err)
		}
		if err := st.SaveSnapshot(ctx, &rec); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		log.Infof("saved snapshot for %s", canonical)
	}

	out := struct {
		Record  *model.CompanyRecord `json:"record"`
		Summary string               `json:"summary,omitempty"`
	}{Record: &rec}

	if companySummarize {
		summary, err := summarizeRecord(ctx, cfg, &rec)
		if err != nil {
			log.Warnf("summary skipped: %v", err)
		} else {
			out.Summary = summary
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// companyEntries resolves the entry list, remote or from the store.
func companyEntries(ctx context.Context, cfg *model.Config, st *store.Store, name string) ([]model.Entry, string, error) {
	if companyOffline {
		if st == nil {
			return nil, "", fmt.Errorf("offline mode requires the store")
		}
		entries, err := st.Entries(ctx, name)
		return entries, name, err
	}

	client := borme.New(cfg.API, log)
	results, err := client.SearchCompanies(ctx, name)
	if err != nil {
		return nil, "", fmt.Errorf("search: %w", err)
	}
	if len(results) == 0 {
		return nil, "", fmt.Errorf("no company matches %q", name)
	}

	hit := results[0]
	for _, r := range results {
		if strings.EqualFold(r.Name, name) {
			hit = r
			break
		}
	}
	if len(results) > 1 {
		log.Infof("%d matches, using %s", len(results), hit.Name)
	}

	entries, err := client.FetchCompanyEntries(ctx, hit.Slug)
	if err != nil {
		return nil, "", fmt.Errorf("fetch entries: %w", err)
	}
	return entries, hit.Name, nil
}

func summarizeRecord(ctx context.Context, cfg *model.Config, rec *model.CompanyRecord) (string, error) {
	llmCfg := cfg.LLM
	if llmCfg.Provider == "" {
		llmCfg.Provider = "openai"
	}
	if companyLLMModel != "" {
		llmCfg.Model = companyLLMModel
	}

	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		return "", err
	}
	if provider == nil {
		return "", fmt.Errorf("no llm provider configured")
	}

	resp, err := provider.Summarize(ctx, llm.SummarizeRequest{Record: rec})
	if err != nil {
		return "", err
	}
	fmt.Fprintf(os.Stderr, "summary generated by %s (%d tokens)\n", resp.Model, resp.TokensUsed)
	return resp.Summary, nil
}
