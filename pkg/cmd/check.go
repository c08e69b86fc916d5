package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"phishguard/pkg/classifier"
)

var (
	checkJSON    bool
	checkTimeout time.Duration
)

var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Classify a single URL and print the verdict",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
		defer cancel()

		result, err := classify.Classify(ctx, args[0])
		if err != nil {
			return err
		}

		if checkJSON {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		verdictColor := color.New(color.FgGreen, color.Bold)
		if result.Verdict == classifier.VerdictPhishing {
			verdictColor = color.New(color.FgRed, color.Bold)
		}

		fmt.Printf("URL:     %s\n", result.URL)
		fmt.Printf("Verdict: %s\n", verdictColor.Sprint(result.Verdict))
		if result.UsedFallback {
			fmt.Printf("         %s\n", color.YellowString("(no model loaded, length fallback used)"))
		}

		fmt.Printf("Domain:  %s (subdomains=%d, digit/letter=%.2f)\n",
			result.Lexical.Domain, result.Lexical.SubdomainCount, result.Lexical.DigitLetterRatio)
		if result.Lexical.SensitiveWords {
			fmt.Printf("         %s\n", color.YellowString("URL contains sensitive bait words"))
		}
		if result.Lexical.HomographTrick {
			fmt.Printf("         %s\n", color.YellowString("domain mixes Latin and non-Latin letters"))
		}
		if result.DNS != nil {
			fmt.Printf("DNS:     record=%v spf=%v dmarc=%v\n", result.DNS.HasRecord, result.DNS.HasSPF, result.DNS.HasDMARC)
		}
		if result.Cert != nil {
			fmt.Printf("TLS:     valid=%v issuer=%q age=%dd\n", result.Cert.Valid, result.Cert.IssuerOrg, result.Cert.AgeDays)
		}
		for _, e := range result.CollectionErrors {
			fmt.Printf("         %s %s\n", color.YellowString("degraded:"), e)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the full result as JSON")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 30*time.Second, "overall deadline for the check")
}
