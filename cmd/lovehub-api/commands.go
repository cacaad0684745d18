package main

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
	"github.com/MarcoPoloResearchLab/lovehub/internal/messages"
	"github.com/spf13/cobra"
)

var errMissingNames = errors.New("--your-name and --partner-name are required")

func newGenerateCommand() *cobra.Command {
	var (
		yourName     string
		partnerName  string
		relationship string
		tone         string
		language     string
		all          bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a generated love message",
		RunE: func(cmd *cobra.Command, args []string) error {
			yourName = strings.TrimSpace(yourName)
			partnerName = strings.TrimSpace(partnerName)
			if yourName == "" || partnerName == "" {
				return errMissingNames
			}
			parsedTone, err := catalog.ParseTone(tone)
			if err != nil {
				return err
			}
			parsedLanguage, err := catalog.ParseLanguage(language)
			if err != nil {
				return err
			}
			parsedRelationship, err := catalog.ParseRelationshipType(relationship)
			if err != nil {
				return err
			}

			if all {
				for _, candidate := range messages.Candidates(parsedTone, parsedLanguage, yourName, partnerName) {
					printf(cmd, "%s\n\n", candidate)
				}
				return nil
			}

			generator := messages.NewGenerator(messages.DefaultRandomSource())
			printf(cmd, "%s\n", generator.Generate(messages.Request{
				YourName:         yourName,
				PartnerName:      partnerName,
				RelationshipType: parsedRelationship,
				Tone:             parsedTone,
				Language:         parsedLanguage,
			}))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&yourName, "your-name", "", "Name of the person proposing")
	flags.StringVar(&partnerName, "partner-name", "", "Name of the partner")
	flags.StringVar(&relationship, "relationship", string(catalog.RelationshipGirlfriend), "Relationship type")
	flags.StringVar(&tone, "tone", string(catalog.ToneCute), "Message tone")
	flags.StringVar(&language, "language", string(catalog.LanguageEnglish), "Message language (english, hinglish)")
	flags.BoolVar(&all, "all", false, "Print every candidate for the tone and language")
	return cmd
}

type planRow struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Price    int64          `json:"price"`
	Currency string         `json:"currency"`
	Popular  bool           `json:"popular"`
	Features []string       `json:"features"`
	Limits   catalog.Limits `json:"limits"`
}

func newPlansCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "Print the plan table as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([]planRow, 0, len(catalog.Plans()))
			for _, plan := range catalog.Plans() {
				rows = append(rows, planRow{
					ID:       string(plan),
					Name:     plan.Name(),
					Price:    plan.Price(),
					Currency: catalog.CurrencyINR,
					Popular:  plan.Popular(),
					Features: plan.Features(),
					Limits:   plan.Limits(),
				})
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(rows)
		},
	}
}
