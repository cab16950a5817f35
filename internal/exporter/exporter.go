// Package exporter flattens generated personas into a single-level CSV.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/BerylCAtieno/persona-generator/internal/persona"
	"github.com/BerylCAtieno/persona-generator/internal/questionnaire"
)

// Columns is the fixed output schema, in order. List-valued persona
// fields are joined with "; ".
var Columns = []string{
	"Client Name",
	"Product Name",
	"Persona Name",
	"Persona Type",
	"Age Range",
	"Gender",
	"Location",
	"Income Level",
	"Net Worth",
	"Education",
	"Occupation",
	"Family Status",
	"Values",
	"Motivations",
	"Lifestyle",
	"Interests",
	"Goals",
	"Challenges",
	"Needs",
	"Pain Points",
	"Research Style",
	"Decision Making",
	"Communication Preferences",
	"Online Behavior",
	"Quote",
	"Key Characteristics",
}

// Export writes the persona CSV to w: one header row, one row per
// persona. An empty persona list logs and writes nothing.
func Export(w io.Writer, personas []persona.Persona, info questionnaire.ClientInfo) error {
	if len(personas) == 0 {
		log.Printf("no personas to export")
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, p := range personas {
		if err := cw.Write(row(p, info)); err != nil {
			return fmt.Errorf("writing persona row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes the persona CSV to a new file at path.
func ExportFile(path string, personas []persona.Persona, info questionnaire.ClientInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := Export(f, personas, info); err != nil {
		return err
	}
	log.Printf("exported %d persona(s) to %s", len(personas), path)
	return nil
}

func row(p persona.Persona, info questionnaire.ClientInfo) []string {
	return []string{
		info.Get("Client Name"),
		info.Get("Product Name"),
		p.Name,
		p.Type,
		p.Demographics.AgeRange,
		p.Demographics.Gender,
		p.Demographics.Location,
		p.Demographics.IncomeLevel,
		p.Demographics.NetWorth,
		p.Demographics.Education,
		p.Demographics.Occupation,
		p.Demographics.FamilyStatus,
		p.Psychographics.Values.Join(),
		p.Psychographics.Motivations.Join(),
		p.Psychographics.Lifestyle,
		p.Psychographics.Interests.Join(),
		p.Goals.Join(),
		p.Challenges.Join(),
		p.Needs.Join(),
		p.PainPoints.Join(),
		p.Behavior.ResearchStyle,
		p.Behavior.DecisionMaking,
		p.Behavior.CommunicationPreferences,
		p.Behavior.OnlineBehavior,
		p.Quote,
		p.KeyCharacteristics.Join(),
	}
}
